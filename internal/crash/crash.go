/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a logged error, a crash report file and a
// non-zero exit.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "gosketch/internal/log"
	"gosketch/internal/version"
)

// exitFn is swapped in tests.
var exitFn = os.Exit

// Info adds context to a crash report. A nil *Info is valid.
type Info struct {
	Dir     string        // report directory; os.TempDir() when empty
	Session string        // interaction session id
	State   func() string // optional canvas state summary
}

// Recover captures a panic, logs it with the stack, writes a report and exits
// with code 2.
//
// Usage: defer crash.Recover(info)
func Recover(info *Info) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	path, err := writeReport(info, r, stack)
	if err != nil {
		l.Error("write crash report", slog.Any("err", err), slog.String("path", path))
	}
	_, _ = fmt.Fprintf(os.Stderr, "gosketch crashed. Report: %s\nVersion: %s %s/%s\n",
		path, version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func writeReport(info *Info, panicVal any, stack []byte) (string, error) {
	dir := os.TempDir()
	if info != nil && info.Dir != "" {
		dir = info.Dir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report dir: %w", err)
		}
	}
	path := filepath.Join(dir, fmt.Sprintf("gosketch-crash-%s.log", time.Now().Format("20060102-150405.000")))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "gosketch crash report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s (%s)\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
	if info != nil {
		if info.Session != "" {
			fmt.Fprintf(&buf, "Session: %s\n", info.Session)
		}
		if info.State != nil {
			fmt.Fprintf(&buf, "State: %s\n", safeState(info.State))
		}
	}
	fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	fmt.Fprintf(&buf, "Stack:\n%s\n", stack)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, fmt.Errorf("write crash report: %w", err)
	}
	return path, nil
}

// safeState calls fn, which may itself panic on a corrupted session.
func safeState(fn func() string) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<unavailable: %v>", r)
		}
	}()
	return fn()
}
