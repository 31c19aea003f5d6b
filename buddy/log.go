/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package buddy

import (
	"io"

	"golang.org/x/exp/slog"
)

// logger is used by arenas whose Config carries no Logger. It discards
// everything until SetLogger is called.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger replaces the package logger. Arenas capture the logger when they
// are initialized, so it must be set before NewArena to take effect. A nil l
// restores the discarding logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}

// fatal logs err and panics with it. The arena cannot be used once its
// backing region is lost or was never established.
func fatal(l *slog.Logger, err error) {
	l.Error("buddy: fatal", "error", err)
	panic(err)
}
