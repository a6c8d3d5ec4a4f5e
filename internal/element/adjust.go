/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"fmt"

	"gosketch/internal/geom"
)

// Handle names the part of an element a pointer is on.
type Handle uint8

const (
	HandleNone Handle = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	Start
	End
	Inside
)

var handleNames = [...]string{"none", "tl", "tr", "bl", "br", "start", "end", "inside"}

func (h Handle) String() string {
	if int(h) < len(handleNames) {
		return handleNames[h]
	}
	return fmt.Sprintf("handle(%d)", uint8(h))
}

// IsResize reports whether h is a corner or endpoint handle.
func (h Handle) IsResize() bool {
	switch h {
	case TopLeft, TopRight, BottomLeft, BottomRight, Start, End:
		return true
	}
	return false
}

// Adjust normalizes the corners of a finished element: rectangles get
// x1<=x2 and y1<=y2, lines store the lexicographically smaller endpoint first,
// freehand strokes take their bounding box. The renderable is left stale.
func Adjust(e Element) Element {
	switch e.Kind {
	case Rectangle:
		e.X1, e.Y1, e.X2, e.Y2 = geom.Normalize(e.X1, e.Y1, e.X2, e.Y2)
	case Line:
		e.X1, e.Y1, e.X2, e.Y2 = geom.OrderPoints(e.X1, e.Y1, e.X2, e.Y2)
	case Freehand:
		if len(e.Points) > 0 {
			e.X1, e.Y1, e.X2, e.Y2 = geom.Bounds(e.Points)
		}
	}
	return e
}

// ResizedCoordinates moves the corner grabbed by h to (x,y).
// ok is false for handles that do not resize; such a handle never comes out of
// hit-testing, so debug builds treat it as a broken invariant.
func ResizedCoordinates(x, y float64, h Handle, c Coords) (Coords, bool) {
	switch h {
	case TopLeft, Start:
		return Coords{X1: x, Y1: y, X2: c.X2, Y2: c.Y2}, true
	case TopRight:
		return Coords{X1: c.X1, Y1: y, X2: x, Y2: c.Y2}, true
	case BottomLeft:
		return Coords{X1: x, Y1: c.Y1, X2: c.X2, Y2: y}, true
	case BottomRight, End:
		return Coords{X1: c.X1, Y1: c.Y1, X2: x, Y2: y}, true
	}
	assertf("element: resize with non-resize handle %v", h)
	return c, false
}
