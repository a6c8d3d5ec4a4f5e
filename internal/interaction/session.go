/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package interaction is the pointer state machine of the canvas. A Session
// turns pointer and key events into element edits recorded in a history store,
// and redraws the current snapshot on demand.
package interaction

import (
	"fmt"
	"log/slog"
	"sync"

	"gosketch/internal/element"
	"gosketch/internal/geom"
	"gosketch/internal/history"
	"gosketch/internal/hittest"
	applog "gosketch/internal/log"
)

// Canvas is the target of a render pass.
type Canvas interface {
	Clear(background string)
	Draw(r element.Renderable) error
}

// Surface is a Canvas the session owns and resizes.
type Surface interface {
	Canvas
	Resize(w, h int) error
}

// Options configures a new Session. The zero value is a headless session with
// the selection tool, a black 2px stroke and unlimited history.
type Options struct {
	Generator    element.Generator
	Tool         Tool
	Style        element.Style
	Theme        Theme
	HitOrder     hittest.Order
	HistoryLimit int
	Width        int
	Height       int
	Logger       *slog.Logger
}

// Session holds the canvas state of one view. Methods are safe for concurrent
// use; events are applied in call order.
type Session struct {
	mu       sync.Mutex
	id       string
	log      *slog.Logger
	factory  *element.Factory
	history  *history.Store[element.Set]
	hitOrder hittest.Order

	tool     Tool
	action   Action
	selected *Selected
	style    element.Style
	theme    Theme
	width    int
	height   int
	surface  Surface

	dirty    bool
	onChange func()
}

func New(opts Options) *Session {
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("interaction")
	}
	l, id := applog.WithSession(l)
	st := opts.Style
	if st.Color == "" {
		st.Color = "#000000"
	}
	if st.Width <= 0 {
		st.Width = 2
	}
	return &Session{
		id:       id,
		log:      l,
		factory:  element.NewFactory(opts.Generator),
		history:  history.New(element.Set{}, history.Config{MaxEntries: opts.HistoryLimit}),
		hitOrder: opts.HitOrder,
		tool:     opts.Tool,
		style:    st,
		theme:    opts.Theme,
		width:    opts.Width,
		height:   opts.Height,
	}
}

// ID is the session id attached to every log record.
func (s *Session) ID() string { return s.id }

// SetOnChange registers fn to run after the visible state changes. fn is
// called without the session lock held, so it may call Render.
func (s *Session) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.Lock()
	fn, dirty := s.onChange, s.dirty
	s.dirty = false
	s.mu.Unlock()
	if dirty && fn != nil {
		fn()
	}
}

// PointerDown starts a gesture at (x,y).
func (s *Session) PointerDown(x, y float64) {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.history.Current()
	kind, drawing := s.tool.kind()
	if !drawing {
		hit, ok := hittest.AtPosition(x, y, cur, s.hitOrder)
		if !ok {
			return
		}
		e := hit.Element
		s.selected = &Selected{Element: e, OffsetX: x - e.X1, OffsetY: y - e.Y1, Position: hit.Position}
		if hit.Position == element.Inside {
			s.action = ActionMoving
		} else {
			s.action = ActionResizing
		}
		// the grab gets its own entry so the drag can be undone on its own
		s.history.Commit(cur, false)
		s.log.Debug("grab", slog.Int("id", e.ID), slog.String("position", hit.Position.String()), slog.String("action", s.action.String()))
		return
	}

	e := s.factory.Create(len(cur), x, y, x, y, kind, s.style)
	next := cur.Append(e)
	s.history.Commit(next, false)
	s.selected = &Selected{Element: next[e.ID]}
	s.action = ActionDrawing
	s.dirty = true
	s.log.Debug("draw start", slog.Int("id", e.ID), slog.String("kind", kind.String()))
}

// PointerMove advances the current gesture. The returned cursor is the hover
// hint for the selection tool when no gesture is active.
func (s *Session) PointerMove(x, y float64) hittest.Cursor {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()

	cursor := hittest.CursorDefault
	cur := s.history.Current()
	if s.tool == ToolSelection && s.action == ActionNone {
		if hit, ok := hittest.AtPosition(x, y, cur, s.hitOrder); ok {
			cursor = hittest.CursorFor(hit.Position)
		}
	} else if s.tool != ToolSelection {
		cursor = hittest.CursorCrosshair
	}

	switch s.action {
	case ActionDrawing:
		last, ok := cur.Last()
		if !ok || s.selected == nil || last.ID != s.selected.Element.ID {
			// history moved under the gesture, e.g. an undo mid-drag
			return cursor
		}
		var next element.Element
		if last.Kind == element.Freehand {
			next = s.factory.Extend(last, geom.P(x, y))
		} else {
			next = s.factory.Update(last, last.X1, last.Y1, x, y)
		}
		s.replace(cur, next)
	case ActionMoving:
		sel := s.selected.Element
		if !s.inRange(cur, sel.ID) {
			return cursor
		}
		w, h := sel.Width(), sel.Height()
		nx, ny := x-s.selected.OffsetX, y-s.selected.OffsetY
		s.replace(cur, s.factory.Update(sel, nx, ny, nx+w, ny+h))
	case ActionResizing:
		sel := s.selected.Element
		if !s.inRange(cur, sel.ID) {
			return cursor
		}
		c, ok := element.ResizedCoordinates(x, y, s.selected.Position, sel.Coords())
		if !ok {
			return cursor
		}
		s.replace(cur, s.factory.Update(sel, c.X1, c.Y1, c.X2, c.Y2))
	}
	return cursor
}

// PointerUp ends the gesture. Drawn and resized elements are normalized;
// moved ones keep their coordinates.
func (s *Session) PointerUp() {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected != nil {
		cur := s.history.Current()
		id := s.selected.Element.ID
		if (s.action == ActionDrawing || s.action == ActionResizing) && s.inRange(cur, id) {
			s.replace(cur, s.factory.Rebuild(element.Adjust(cur[id])))
		}
		s.log.Debug("gesture end", slog.Int("id", id), slog.String("action", s.action.String()))
	}
	s.action = ActionNone
	s.selected = nil
}

func (s *Session) inRange(cur element.Set, id int) bool { return id >= 0 && id < len(cur) }

// replace commits cur with e swapped in, as an overwrite.
func (s *Session) replace(cur element.Set, e element.Element) {
	s.history.Commit(cur.Replace(e), true)
	s.dirty = true
}

func (s *Session) Undo() {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history.Undo() {
		s.dirty = true
		s.log.Debug("undo", slog.Int("index", s.history.Index()))
	}
}

func (s *Session) Redo() {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history.Redo() {
		s.dirty = true
		s.log.Debug("redo", slog.Int("index", s.history.Index()))
	}
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Elements returns a copy of the current snapshot.
func (s *Session) Elements() element.Set {
	return s.history.Current().Clone()
}

// HistoryStats reports history entries, current index and pruned entries.
func (s *Session) HistoryStats() (entries, index, pruned int) { return s.history.Stats() }

func (s *Session) Tool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

func (s *Session) Action() Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.action
}

// Selected returns a copy of the grabbed element, if a gesture is active.
func (s *Session) Selected() (Selected, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return Selected{}, false
	}
	return *s.selected, true
}

// SetTool changes the tool. A gesture in progress keeps running on its action.
func (s *Session) SetTool(t Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tool = t
}

// SetColor sets the stroke color of elements created from now on.
func (s *Session) SetColor(hex string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style.Color = hex
}

// SetStrokeWidth sets the stroke width of elements created from now on.
func (s *Session) SetStrokeWidth(w float64) error {
	if w <= 0 {
		return fmt.Errorf("stroke width %v must be positive", w)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style.Width = w
	return nil
}

func (s *Session) Style() element.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

func (s *Session) SetTheme(t Theme) {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme != t {
		s.theme = t
		s.dirty = true
	}
}

func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Attach makes sf the surface resized by Resize. A positive recorded size is
// applied to it right away.
func (s *Session) Attach(sf Surface) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = sf
	if sf != nil && s.width > 0 && s.height > 0 {
		if err := sf.Resize(s.width, s.height); err != nil {
			return fmt.Errorf("resize surface: %w", err)
		}
	}
	return nil
}

// Resize records the drawable size and resizes the attached surface.
// Elements are never touched.
func (s *Session) Resize(w, h int) error {
	defer s.notify()
	s.mu.Lock()
	defer s.mu.Unlock()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("surface size %dx%d must be positive", w, h)
	}
	s.width, s.height = w, h
	if s.surface != nil {
		if err := s.surface.Resize(w, h); err != nil {
			return fmt.Errorf("resize surface: %w", err)
		}
	}
	s.dirty = true
	return nil
}

// Size returns the last recorded drawable size.
func (s *Session) Size() (w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Render clears c with the theme background and draws the current snapshot
// in creation order.
func (s *Session) Render(c Canvas) error {
	s.mu.Lock()
	bg := s.theme.Background()
	s.mu.Unlock()
	elems := s.history.Current()

	c.Clear(bg)
	for _, e := range elems {
		if e.Renderable == nil {
			continue
		}
		if err := c.Draw(e.Renderable); err != nil {
			return fmt.Errorf("draw element %d: %w", e.ID, err)
		}
	}
	return nil
}

// Summary is a one-line description of the session for diagnostics.
func (s *Session) Summary() string {
	n, idx, _ := s.history.Stats()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("elements=%d history=%d/%d tool=%s action=%s", len(s.history.Current()), idx, n, s.tool, s.action)
}
