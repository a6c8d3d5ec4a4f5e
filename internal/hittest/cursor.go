/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package hittest

import "gosketch/internal/element"

// Cursor is a pointer-shape hint for the UI.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorMove
	CursorNWSEResize
	CursorNESWResize
	CursorCrosshair
)

func (c Cursor) String() string {
	switch c {
	case CursorMove:
		return "move"
	case CursorNWSEResize:
		return "nwse-resize"
	case CursorNESWResize:
		return "nesw-resize"
	case CursorCrosshair:
		return "crosshair"
	}
	return "default"
}

// CursorFor maps a handle to the cursor shown while hovering it.
func CursorFor(h element.Handle) Cursor {
	switch h {
	case element.TopLeft, element.BottomRight, element.Start, element.End:
		return CursorNWSEResize
	case element.TopRight, element.BottomLeft:
		return CursorNESWResize
	case element.Inside:
		return CursorMove
	}
	return CursorDefault
}
