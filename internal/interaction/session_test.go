/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interaction

import (
	"errors"
	"testing"

	"gosketch/internal/element"
	"gosketch/internal/geom"
	"gosketch/internal/hittest"
	applog "gosketch/internal/log"
)

type shape struct {
	kind element.Kind
	pts  []geom.Pt
}

type fakeGen struct{}

func (fakeGen) Line(x1, y1, x2, y2 float64, _ element.Style) element.Renderable {
	return shape{element.Line, []geom.Pt{{X: x1, Y: y1}, {X: x2, Y: y2}}}
}
func (fakeGen) Rectangle(x, y, w, h float64, _ element.Style) element.Renderable {
	return shape{element.Rectangle, []geom.Pt{{X: x, Y: y}, {X: x + w, Y: y + h}}}
}
func (fakeGen) Path(pts []geom.Pt, _ element.Style) element.Renderable {
	return shape{element.Freehand, pts}
}

type fakeCanvas struct {
	bg      string
	drawn   []element.Renderable
	w, h    int
	failOn  int
	resized int
}

func (c *fakeCanvas) Clear(bg string) { c.bg, c.drawn = bg, nil }
func (c *fakeCanvas) Draw(r element.Renderable) error {
	if c.failOn > 0 && len(c.drawn)+1 == c.failOn {
		return errors.New("draw failed")
	}
	c.drawn = append(c.drawn, r)
	return nil
}
func (c *fakeCanvas) Resize(w, h int) error {
	c.w, c.h = w, h
	c.resized++
	return nil
}

func newSession(tool Tool) *Session {
	return New(Options{Generator: fakeGen{}, Tool: tool, Logger: applog.Discard()})
}

func drag(s *Session, x1, y1, x2, y2 float64) {
	s.PointerDown(x1, y1)
	s.PointerMove((x1+x2)/2, (y1+y2)/2)
	s.PointerMove(x2, y2)
	s.PointerUp()
}

func only(t *testing.T, s *Session) element.Element {
	t.Helper()
	els := s.Elements()
	if len(els) != 1 {
		t.Fatalf("expected 1 element, got %d", len(els))
	}
	return els[0]
}

func TestRectangleDrawResizeUndo(t *testing.T) {
	s := newSession(ToolRectangle)
	drag(s, 10, 10, 100, 80)
	e := only(t, s)
	if e.Kind != element.Rectangle || e.X1 != 10 || e.Y1 != 10 || e.X2 != 100 || e.Y2 != 80 {
		t.Fatalf("unexpected rectangle: %+v", e)
	}

	s.SetTool(ToolSelection)
	s.PointerDown(10, 10)
	if s.Action() != ActionResizing {
		t.Fatalf("grabbing a corner should resize, got %v", s.Action())
	}
	s.PointerMove(20, 30)
	s.PointerUp()
	e = only(t, s)
	if e.X1 != 20 || e.Y1 != 30 || e.X2 != 100 || e.Y2 != 80 {
		t.Fatalf("unexpected resize: %+v", e)
	}

	s.Undo()
	e = only(t, s)
	if e.X1 != 10 || e.Y1 != 10 || e.X2 != 100 || e.Y2 != 80 {
		t.Fatalf("undo should restore pre-resize state: %+v", e)
	}
	s.Undo()
	if n := len(s.Elements()); n != 0 {
		t.Fatalf("second undo should empty the canvas, got %d", n)
	}
}

func TestPointerUpNormalizes(t *testing.T) {
	s := newSession(ToolRectangle)
	drag(s, 100, 80, 10, 10)
	e := only(t, s)
	if e.X1 > e.X2 || e.Y1 > e.Y2 {
		t.Fatalf("rectangle not normalized: %+v", e)
	}
	if r := e.Renderable.(shape); r.pts[0] != geom.P(10, 10) {
		t.Fatalf("renderable should be rebuilt from normalized corners: %+v", r)
	}

	s.SetTool(ToolLine)
	drag(s, 50, 50, 0, 0)
	l := s.Elements()[1]
	if l.X1 != 0 || l.Y1 != 0 || l.X2 != 50 || l.Y2 != 50 || l.ID != 1 {
		t.Fatalf("line not ordered: %+v", l)
	}
}

func TestMoveKeepsSizeWithoutNormalizing(t *testing.T) {
	s := newSession(ToolRectangle)
	drag(s, 10, 10, 100, 80)
	s.SetTool(ToolSelection)
	s.PointerDown(50, 50)
	if s.Action() != ActionMoving {
		t.Fatalf("grabbing inside should move, got %v", s.Action())
	}
	sel, ok := s.Selected()
	if !ok || sel.OffsetX != 40 || sel.OffsetY != 40 || sel.Position != element.Inside {
		t.Fatalf("unexpected grab: %+v", sel)
	}
	s.PointerMove(60, 45)
	s.PointerMove(70, 40)
	s.PointerUp()
	e := only(t, s)
	if e.X1 != 30 || e.Y1 != 0 || e.Width() != 90 || e.Height() != 70 {
		t.Fatalf("unexpected move: %+v", e)
	}
	if _, ok := s.Selected(); ok || s.Action() != ActionNone {
		t.Fatalf("pointer up must clear the gesture")
	}
	s.Undo()
	if e := only(t, s); e.X1 != 10 || e.Y1 != 10 {
		t.Fatalf("undo should restore pre-move position: %+v", e)
	}
}

func TestSelectionMissIsNoop(t *testing.T) {
	s := newSession(ToolLine)
	drag(s, 0, 0, 50, 50)
	entries := s.history.Len()
	s.SetTool(ToolSelection)
	s.PointerDown(200, 200)
	if s.Action() != ActionNone || s.history.Len() != entries {
		t.Fatalf("a miss must not change state")
	}
	s.PointerMove(210, 210)
	s.PointerUp()
	if e := only(t, s); e.X2 != 50 {
		t.Fatalf("element changed: %+v", e)
	}
}

func TestPointerUpWithoutGesture(t *testing.T) {
	s := newSession(ToolSelection)
	s.PointerUp()
	if s.Action() != ActionNone || len(s.Elements()) != 0 {
		t.Fatalf("pointer up without a gesture must be a no-op")
	}
}

func TestFreehandStrokeUndoAndHit(t *testing.T) {
	s := newSession(ToolFreehand)
	s.PointerDown(10, 10)
	s.PointerMove(20, 15)
	s.PointerMove(30, 30)
	s.PointerUp()
	e := only(t, s)
	if e.Kind != element.Freehand || len(e.Points) != 3 {
		t.Fatalf("unexpected stroke: %+v", e)
	}
	if e.X1 != 10 || e.Y1 != 10 || e.X2 != 30 || e.Y2 != 30 {
		t.Fatalf("stroke should take its bounding box: %+v", e)
	}

	s.SetTool(ToolSelection)
	if c := s.PointerMove(20, 15); c != hittest.CursorMove {
		t.Fatalf("hovering a stroke should show the move cursor, got %v", c)
	}
	s.PointerDown(20, 15)
	s.PointerMove(25, 25)
	s.PointerUp()
	if e := only(t, s); e.Points[0] != geom.P(15, 20) || e.Points[2] != geom.P(35, 40) {
		t.Fatalf("stroke points should move with the element: %+v", e.Points)
	}

	s.Undo()
	s.Undo()
	if n := len(s.Elements()); n != 0 {
		t.Fatalf("stroke should be undoable, got %d elements", n)
	}
	s.Redo()
	if e := only(t, s); e.Points[0] != geom.P(10, 10) {
		t.Fatalf("redo should restore the stroke: %+v", e)
	}
}

func TestUndoRedoKeysAndRedoDiscard(t *testing.T) {
	s := newSession(ToolLine)
	drag(s, 0, 0, 10, 10)
	drag(s, 20, 20, 30, 30)
	if !s.HandleKey(KeyEvent{Key: "z", Ctrl: true}) {
		t.Fatalf("ctrl+z should be consumed")
	}
	if n := len(s.Elements()); n != 1 {
		t.Fatalf("expected 1 element after undo, got %d", n)
	}
	s.HandleKey(KeyEvent{Key: "Z", Meta: true, Shift: true})
	if n := len(s.Elements()); n != 2 {
		t.Fatalf("expected 2 elements after redo, got %d", n)
	}
	if s.HandleKey(KeyEvent{Key: "z"}) || s.HandleKey(KeyEvent{Key: "y", Ctrl: true}) {
		t.Fatalf("only ctrl/cmd+z combinations are shortcuts")
	}

	s.Undo()
	drag(s, 40, 40, 50, 50)
	if s.CanRedo() {
		t.Fatalf("new drawing must discard redo")
	}
	if els := s.Elements(); len(els) != 2 || els[1].X1 != 40 {
		t.Fatalf("unexpected elements: %+v", els)
	}
}

type fakeBinder struct {
	fn      func(KeyEvent) bool
	removed bool
}

func (b *fakeBinder) AddKeyListener(fn func(KeyEvent) bool) func() {
	b.fn = fn
	return func() { b.fn, b.removed = nil, true }
}

func TestBindShortcuts(t *testing.T) {
	s := newSession(ToolRectangle)
	drag(s, 0, 0, 10, 10)
	b := &fakeBinder{}
	unbind := s.BindShortcuts(b)
	if b.fn == nil || !b.fn(KeyEvent{Key: "z", Ctrl: true}) {
		t.Fatalf("listener not attached")
	}
	if len(s.Elements()) != 0 {
		t.Fatalf("bound listener should undo")
	}
	unbind()
	if !b.removed {
		t.Fatalf("unbind should detach the listener")
	}
}

func TestRenderAndChangeNotification(t *testing.T) {
	s := newSession(ToolLine)
	c := &fakeCanvas{}
	changes := 0
	s.SetOnChange(func() {
		changes++
		if err := s.Render(c); err != nil {
			t.Errorf("render: %v", err)
		}
	})
	drag(s, 0, 0, 10, 10)
	if changes == 0 || len(c.drawn) != 1 || c.bg != "#ffffff" {
		t.Fatalf("expected a redraw with one element, got changes=%d drawn=%d bg=%s", changes, len(c.drawn), c.bg)
	}
	s.SetTheme(ThemeDark)
	if c.bg != "#162447" {
		t.Fatalf("theme change should redraw with the dark background, got %s", c.bg)
	}
	c.failOn = 1
	if err := s.Render(c); err == nil {
		t.Fatalf("expected draw error")
	}
}

func TestResizeOnlyTouchesSurface(t *testing.T) {
	s := newSession(ToolRectangle)
	drag(s, 10, 10, 20, 20)
	before := s.Elements()
	sf := &fakeCanvas{}
	if err := s.Attach(sf); err != nil {
		t.Fatal(err)
	}
	if err := s.Resize(800, 600); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if sf.w != 800 || sf.h != 600 {
		t.Fatalf("surface not resized: %dx%d", sf.w, sf.h)
	}
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Fatalf("size not recorded: %dx%d", w, h)
	}
	if after := s.Elements(); after[0].Coords() != before[0].Coords() {
		t.Fatalf("resize must not mutate elements")
	}
	if s.history.Len() != 2 {
		t.Fatalf("resize must not commit history")
	}
	if err := s.Resize(0, 10); err == nil {
		t.Fatalf("expected error for empty size")
	}
}

func TestStyleCapturedAtCreation(t *testing.T) {
	s := newSession(ToolLine)
	s.SetColor("#ff0000")
	if err := s.SetStrokeWidth(5); err != nil {
		t.Fatal(err)
	}
	drag(s, 0, 0, 10, 10)
	s.SetColor("#00ff00")
	e := only(t, s)
	if e.Style.Color != "#ff0000" || e.Style.Width != 5 {
		t.Fatalf("style not captured: %+v", e.Style)
	}
	if err := s.SetStrokeWidth(0); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestTopmostHitOrder(t *testing.T) {
	s := New(Options{Generator: fakeGen{}, Tool: ToolRectangle, HitOrder: hittest.Topmost, Logger: applog.Discard()})
	drag(s, 0, 0, 100, 100)
	drag(s, 20, 20, 60, 60)
	s.SetTool(ToolSelection)
	s.PointerDown(40, 40)
	sel, ok := s.Selected()
	if !ok || sel.Element.ID != 1 {
		t.Fatalf("topmost order should grab the newest element, got %+v", sel)
	}
}

func TestParseToolAndTheme(t *testing.T) {
	for in, want := range map[string]Tool{"selection": ToolSelection, "rect": ToolRectangle, "pencil": ToolFreehand, "line": ToolLine} {
		got, err := ParseTool(in)
		if err != nil || got != want {
			t.Fatalf("ParseTool(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTool("eraser"); err == nil {
		t.Fatalf("expected error for unknown tool")
	}
	if th, err := ParseTheme("dark"); err != nil || th != ThemeDark {
		t.Fatalf("ParseTheme(dark) = %v, %v", th, err)
	}
}
