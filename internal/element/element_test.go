/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import (
	"testing"

	"gosketch/internal/geom"
)

type call struct {
	op         string
	a, b, c, d float64
	n          int
}

// recGen records generator requests and returns them as renderables.
type recGen struct{ calls []call }

func (g *recGen) Line(x1, y1, x2, y2 float64, _ Style) Renderable {
	c := call{op: "line", a: x1, b: y1, c: x2, d: y2}
	g.calls = append(g.calls, c)
	return c
}

func (g *recGen) Rectangle(x, y, w, h float64, _ Style) Renderable {
	c := call{op: "rect", a: x, b: y, c: w, d: h}
	g.calls = append(g.calls, c)
	return c
}

func (g *recGen) Path(pts []geom.Pt, _ Style) Renderable {
	c := call{op: "path", n: len(pts)}
	g.calls = append(g.calls, c)
	return c
}

func TestCreateRequestsMatchingRenderable(t *testing.T) {
	g := &recGen{}
	f := NewFactory(g)
	e := f.Create(0, 10, 10, 100, 80, Rectangle, Style{})
	if e.ID != 0 || e.Kind != Rectangle || e.X2 != 100 || e.Y2 != 80 {
		t.Fatalf("unexpected element: %+v", e)
	}
	if got := e.Renderable.(call); got.op != "rect" || got.c != 90 || got.d != 70 {
		t.Fatalf("unexpected rectangle renderable: %+v", got)
	}
	// negative extents pass through untouched while dragging
	e = f.Create(1, 50, 50, 20, 10, Rectangle, Style{})
	if got := e.Renderable.(call); got.c != -30 || got.d != -40 {
		t.Fatalf("expected negative extents, got %+v", got)
	}
	e = f.Create(2, 0, 0, 50, 50, Line, Style{})
	if got := e.Renderable.(call); got.op != "line" || got.c != 50 {
		t.Fatalf("unexpected line renderable: %+v", got)
	}
}

func TestFreehandCreateExtendTranslate(t *testing.T) {
	f := NewFactory(&recGen{})
	e := f.Create(0, 5, 5, 5, 5, Freehand, Style{Color: "#ff0000", Width: 5})
	if len(e.Points) != 1 {
		t.Fatalf("zero-size freehand should start with one point, got %d", len(e.Points))
	}
	e2 := f.Extend(e, geom.P(10, 20))
	if len(e.Points) != 1 || len(e2.Points) != 2 {
		t.Fatalf("extend must not mutate the source: %d %d", len(e.Points), len(e2.Points))
	}
	if e2.X1 != 5 || e2.Y1 != 5 || e2.X2 != 10 || e2.Y2 != 20 {
		t.Fatalf("unexpected corners after extend: %+v", e2.Coords())
	}
	if e2.Style.Color != "#ff0000" {
		t.Fatalf("style lost on extend")
	}
	moved := f.Update(e2, 15, 15, 20, 30)
	if moved.Points[0] != geom.P(15, 15) || moved.Points[1] != geom.P(20, 30) {
		t.Fatalf("unexpected translated points: %+v", moved.Points)
	}
	if e2.Points[0] != geom.P(5, 5) {
		t.Fatalf("update must not mutate the source points")
	}
}

func TestAdjust(t *testing.T) {
	r := Adjust(Element{Kind: Rectangle, X1: 100, Y1: 80, X2: 10, Y2: 10})
	if r.X1 != 10 || r.Y1 != 10 || r.X2 != 100 || r.Y2 != 80 {
		t.Fatalf("rectangle not normalized: %+v", r.Coords())
	}
	l := Adjust(Element{Kind: Line, X1: 50, Y1: 50, X2: 0, Y2: 0})
	if l.X1 != 0 || l.Y1 != 0 || l.X2 != 50 || l.Y2 != 50 {
		t.Fatalf("line not ordered: %+v", l.Coords())
	}
	l = Adjust(Element{Kind: Line, X1: 3, Y1: 9, X2: 3, Y2: 2})
	if l.Y1 != 2 || l.Y2 != 9 {
		t.Fatalf("vertical line not ordered by y: %+v", l.Coords())
	}
	fh := Adjust(Element{Kind: Freehand, Points: []geom.Pt{{X: 4, Y: 8}, {X: 1, Y: 9}, {X: 7, Y: 2}}})
	if fh.X1 != 1 || fh.Y1 != 2 || fh.X2 != 7 || fh.Y2 != 9 {
		t.Fatalf("freehand bounds wrong: %+v", fh.Coords())
	}
}

func TestResizedCoordinates(t *testing.T) {
	c := Coords{X1: 10, Y1: 10, X2: 100, Y2: 80}
	cases := []struct {
		h    Handle
		want Coords
	}{
		{TopLeft, Coords{20, 30, 100, 80}},
		{Start, Coords{20, 30, 100, 80}},
		{TopRight, Coords{10, 30, 20, 80}},
		{BottomLeft, Coords{20, 10, 100, 30}},
		{BottomRight, Coords{10, 10, 20, 30}},
		{End, Coords{10, 10, 20, 30}},
	}
	for _, tc := range cases {
		got, ok := ResizedCoordinates(20, 30, tc.h, c)
		if !ok || got != tc.want {
			t.Fatalf("%v: got %+v ok=%v, want %+v", tc.h, got, ok, tc.want)
		}
	}
}

func TestSetCopyOnWrite(t *testing.T) {
	f := NewFactory(nil)
	var s Set
	s = s.Append(f.Create(99, 0, 0, 1, 1, Line, Style{}))
	s2 := s.Append(f.Create(0, 2, 2, 3, 3, Rectangle, Style{}))
	if len(s) != 1 || len(s2) != 2 {
		t.Fatalf("append must copy: %d %d", len(s), len(s2))
	}
	for i, e := range s2 {
		if e.ID != i {
			t.Fatalf("id %d at index %d", e.ID, i)
		}
	}
	upd := f.Update(s2[1], 5, 5, 6, 6)
	s3 := s2.Replace(upd)
	if s2[1].X1 != 2 || s3[1].X1 != 5 {
		t.Fatalf("replace must copy: %v %v", s2[1].X1, s3[1].X1)
	}
	if e, ok := s3.Last(); !ok || e.ID != 1 {
		t.Fatalf("unexpected last: %+v %v", e, ok)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Line, Rectangle, Freehand} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("round trip %v: %v %v", k, got, err)
		}
	}
	if _, err := ParseKind("ellipse"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
