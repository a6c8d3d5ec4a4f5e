/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interaction

import "strings"

// KeyEvent is a key press with its modifier flags.
type KeyEvent struct {
	Key   string // key identifier, e.g. "z"
	Ctrl  bool
	Meta  bool
	Shift bool
}

// ShortcutBinder is implemented by the input layer. AddKeyListener registers
// fn for every key press and returns a function that removes it.
type ShortcutBinder interface {
	AddKeyListener(fn func(KeyEvent) bool) (remove func())
}

// HandleKey applies the undo/redo shortcuts: Ctrl/Cmd+Z undoes and
// Ctrl/Cmd+Shift+Z redoes. It reports whether the event was consumed.
func (s *Session) HandleKey(ev KeyEvent) bool {
	if !(ev.Ctrl || ev.Meta) || !strings.EqualFold(ev.Key, "z") {
		return false
	}
	if ev.Shift {
		s.Redo()
	} else {
		s.Undo()
	}
	return true
}

// BindShortcuts attaches HandleKey to b for the lifetime of a canvas view.
// Call the returned function on teardown.
func (s *Session) BindShortcuts(b ShortcutBinder) (unbind func()) {
	if b == nil {
		return func() {}
	}
	return b.AddKeyListener(s.HandleKey)
}
