/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"slices"

	"gosketch/internal/geom"
)

// Factory builds elements and requests their renderables from a Generator.
// A nil Generator yields elements without renderables (headless use).
type Factory struct {
	gen Generator
}

func NewFactory(g Generator) *Factory { return &Factory{gen: g} }

// Create builds an element from two corners. A freehand element created this
// way starts a stroke at (x1,y1), extended to (x2,y2) when it differs.
func (f *Factory) Create(id int, x1, y1, x2, y2 float64, kind Kind, st Style) Element {
	e := Element{ID: id, Kind: kind, X1: x1, Y1: y1, X2: x2, Y2: y2, Style: st}
	if kind == Freehand {
		e.Points = []geom.Pt{{X: x1, Y: y1}}
		if x2 != x1 || y2 != y1 {
			e.Points = append(e.Points, geom.Pt{X: x2, Y: y2})
		}
	}
	e.Renderable = f.renderable(e)
	return e
}

// CreatePath builds a freehand element from samples. The corners are the
// first and last sample; Adjust replaces them with the bounding box.
func (f *Factory) CreatePath(id int, pts []geom.Pt, st Style) Element {
	e := Element{ID: id, Kind: Freehand, Points: slices.Clone(pts), Style: st}
	if n := len(pts); n > 0 {
		e.X1, e.Y1 = pts[0].X, pts[0].Y
		e.X2, e.Y2 = pts[n-1].X, pts[n-1].Y
	}
	e.Renderable = f.renderable(e)
	return e
}

// Update recomputes a full element with new corners, keeping id, kind and style.
// Freehand points are translated by the movement of the first corner.
func (f *Factory) Update(e Element, x1, y1, x2, y2 float64) Element {
	if e.Kind == Freehand {
		moved := Translate(e, x1-e.X1, y1-e.Y1)
		moved.X2, moved.Y2 = x2, y2
		moved.Renderable = f.renderable(moved)
		return moved
	}
	return f.Create(e.ID, x1, y1, x2, y2, e.Kind, e.Style)
}

// Extend appends a freehand sample and returns the rebuilt element.
func (f *Factory) Extend(e Element, p geom.Pt) Element {
	pts := make([]geom.Pt, len(e.Points), len(e.Points)+1)
	copy(pts, e.Points)
	pts = append(pts, p)
	out := f.CreatePath(e.ID, pts, e.Style)
	out.X1, out.Y1 = e.X1, e.Y1
	return out
}

// Rebuild regenerates the renderable of e from its current geometry.
func (f *Factory) Rebuild(e Element) Element {
	e.Renderable = f.renderable(e)
	return e
}

func (f *Factory) renderable(e Element) Renderable {
	if f == nil || f.gen == nil {
		return nil
	}
	switch e.Kind {
	case Line:
		return f.gen.Line(e.X1, e.Y1, e.X2, e.Y2, e.Style)
	case Rectangle:
		return f.gen.Rectangle(e.X1, e.Y1, e.X2-e.X1, e.Y2-e.Y1, e.Style)
	case Freehand:
		return f.gen.Path(e.Points, e.Style)
	}
	return nil
}

// Translate moves all geometry of e by (dx,dy). The renderable is left stale.
func Translate(e Element, dx, dy float64) Element {
	e.X1, e.Y1 = e.X1+dx, e.Y1+dy
	e.X2, e.Y2 = e.X2+dx, e.Y2+dy
	if e.Points != nil {
		pts := make([]geom.Pt, len(e.Points))
		for i, p := range e.Points {
			pts[i] = p.Add(dx, dy)
		}
		e.Points = pts
	}
	return e
}
