/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"context"
	"fmt"
	"log/slog"

	"gosketch/internal/hittest"
	"gosketch/internal/interaction"
	applog "gosketch/internal/log"
)

// Target receives replayed events. *interaction.Session implements it.
type Target interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64) hittest.Cursor
	PointerUp()
	HandleKey(ev interaction.KeyEvent) bool
	SetTool(t interaction.Tool)
	SetColor(hex string)
	SetStrokeWidth(w float64) error
	SetTheme(t interaction.Theme)
	Resize(w, h int) error
	Undo()
	Redo()
}

var _ Target = (*interaction.Session)(nil)

// Replay applies the events of s to t in order. It stops at the first event
// that cannot be applied or when ctx is done, returning the number of events
// applied.
func Replay(ctx context.Context, t Target, s *Script) (int, error) {
	l := applog.WithOperation(applog.WithComponent("script"), "replay")
	if s.Canvas.Width > 0 && s.Canvas.Height > 0 {
		if err := t.Resize(s.Canvas.Width, s.Canvas.Height); err != nil {
			return 0, fmt.Errorf("canvas: %w", err)
		}
	}
	if s.Canvas.Theme != "" {
		th, err := interaction.ParseTheme(s.Canvas.Theme)
		if err != nil {
			return 0, fmt.Errorf("%w: canvas: %w", ErrInvalidScript, err)
		}
		t.SetTheme(th)
	}
	for i, ev := range s.Events {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := apply(t, ev); err != nil {
			return i, fmt.Errorf("event %d (line %d, %s): %w", i, ev.Line, ev, err)
		}
	}
	l.Debug("replayed", slog.Int("events", len(s.Events)))
	return len(s.Events), nil
}

func apply(t Target, ev Event) error {
	switch ev.Op {
	case OpDown:
		t.PointerDown(ev.X, ev.Y)
	case OpMove:
		t.PointerMove(ev.X, ev.Y)
	case OpUp:
		t.PointerUp()
	case OpKey:
		t.HandleKey(interaction.KeyEvent{Key: ev.Key, Ctrl: ev.Ctrl, Meta: ev.Meta, Shift: ev.Shift})
	case OpUndo:
		t.Undo()
	case OpRedo:
		t.Redo()
	case OpResize:
		return t.Resize(ev.W, ev.H)
	case OpTool:
		tool, err := interaction.ParseTool(stringValue(ev.Value))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScript, err)
		}
		t.SetTool(tool)
	case OpTheme:
		th, err := interaction.ParseTheme(stringValue(ev.Value))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScript, err)
		}
		t.SetTheme(th)
	case OpColor:
		t.SetColor(stringValue(ev.Value))
	case OpWidth:
		w, ok := numberValue(ev.Value)
		if !ok {
			return fmt.Errorf("%w: width %v is not a number", ErrInvalidScript, ev.Value)
		}
		return t.SetStrokeWidth(w)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidScript, ev.Op)
	}
	return nil
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
