/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package element defines the drawable shape records of a sketch and the factory
// that pairs their coordinates with renderables from a rendering backend.
package element

import (
	"fmt"
	"slices"

	"gosketch/internal/geom"
)

// Kind is the closed set of element shapes.
type Kind uint8

const (
	Line Kind = iota
	Rectangle
	Freehand
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Rectangle:
		return "rectangle"
	case Freehand:
		return "freehand"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "line":
		return Line, nil
	case "rectangle", "rect":
		return Rectangle, nil
	case "freehand", "pencil":
		return Freehand, nil
	}
	return 0, fmt.Errorf("unknown element kind %q", s)
}

// Style is the stroke look captured from the session when an element is created.
type Style struct {
	Color string  // hex, e.g. "#000000"
	Width float64 // stroke width in canvas units
}

// Renderable is an opaque handle produced by a Generator. It is never inspected
// or mutated by the element code.
type Renderable any

// Generator turns element geometry into renderables.
// Rectangle extents may be negative while a shape is being dragged out.
type Generator interface {
	Line(x1, y1, x2, y2 float64, st Style) Renderable
	Rectangle(x, y, w, h float64, st Style) Renderable
	Path(pts []geom.Pt, st Style) Renderable
}

// Element is one drawable shape. ID equals its index in the owning Set.
type Element struct {
	ID             int
	Kind           Kind
	X1, Y1, X2, Y2 float64
	// Points holds freehand samples; nil for lines and rectangles.
	Points     []geom.Pt
	Style      Style
	Renderable Renderable
}

// Coords are the two defining corners of an element.
type Coords struct{ X1, Y1, X2, Y2 float64 }

func (e Element) Coords() Coords { return Coords{e.X1, e.Y1, e.X2, e.Y2} }

// Width and Height are signed extents between the defining corners.
func (e Element) Width() float64  { return e.X2 - e.X1 }
func (e Element) Height() float64 { return e.Y2 - e.Y1 }

// Set is an ordered list of elements where Set[i].ID == i.
type Set []Element

// Clone returns a shallow copy; element point slices are shared but never mutated.
func (s Set) Clone() Set { return slices.Clone(s) }

// Append returns a copy of s with e appended at the next id.
func (s Set) Append(e Element) Set {
	out := make(Set, len(s), len(s)+1)
	copy(out, s)
	e.ID = len(s)
	return append(out, e)
}

// Replace returns a copy of s with the entry at e.ID replaced by e.
// An out-of-range id leaves the copy unchanged.
func (s Set) Replace(e Element) Set {
	out := s.Clone()
	if e.ID >= 0 && e.ID < len(out) {
		out[e.ID] = e
	}
	return out
}

// Last returns the most recently created element.
func (s Set) Last() (Element, bool) {
	if len(s) == 0 {
		return Element{}, false
	}
	return s[len(s)-1], true
}
