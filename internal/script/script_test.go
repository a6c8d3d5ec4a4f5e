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
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gosketch/internal/element"
	"gosketch/internal/interaction"
	applog "gosketch/internal/log"
	"gosketch/internal/render"
)

func TestLoadValidScript(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "rectangle.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Version != 1 || s.Canvas.Width != 320 || s.Canvas.Theme != "dark" {
		t.Fatalf("unexpected header: %+v", s)
	}
	if len(s.Events) != 12 {
		t.Fatalf("expected 12 events, got %d", len(s.Events))
	}
	if ev := s.Events[3]; ev.Op != OpDown || ev.X != 10 || ev.Line != 13 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if got := s.Events[11].String(); got != "key(ctrl+z)" {
		t.Fatalf("unexpected event string %q", got)
	}
}

func TestParseRejectsUnknownOp(t *testing.T) {
	_, err := Parse([]byte("events:\n  - op: down\n    x: 1\n    y: 2\n  - op: erase\n"))
	if !errors.Is(err, ErrInvalidScript) {
		t.Fatalf("expected ErrInvalidScript, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Errors) == 0 {
		t.Fatalf("expected validation details, got %v", err)
	}
	found := false
	for _, e := range ve.Errors {
		if e.Line == 5 && strings.HasPrefix(e.Field, "events.1") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an error on line 5 for events.1: %+v", ve.Errors)
	}
}

func TestParseRequiresOpFields(t *testing.T) {
	cases := map[string]string{
		"down without y":   "events:\n  - {op: down, x: 1}\n",
		"zero width":       "events:\n  - {op: width, value: 0}\n",
		"resize without h": "events:\n  - {op: resize, w: 10}\n",
		"stray field":      "events:\n  - {op: up, z: 1}\n",
		"no events":        "version: 1\n",
		"not yaml":         "events: [\n",
		"empty":            "",
	}
	for name, src := range cases {
		if _, err := Parse([]byte(src)); !errors.Is(err, ErrInvalidScript) {
			t.Fatalf("%s: expected ErrInvalidScript, got %v", name, err)
		}
	}
}

func TestReplayRectangleScenario(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "rectangle.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	sess := interaction.New(interaction.Options{Logger: applog.Discard()})
	n, err := Replay(context.Background(), sess, s)
	if err != nil || n != len(s.Events) {
		t.Fatalf("Replay() = %d, %v", n, err)
	}
	els := sess.Elements()
	if len(els) != 1 {
		t.Fatalf("expected 1 element, got %d", len(els))
	}
	e := els[0]
	// the resize was undone by the final ctrl+z
	if e.Kind != element.Rectangle || e.X1 != 10 || e.Y1 != 10 || e.X2 != 100 || e.Y2 != 80 {
		t.Fatalf("unexpected element: %+v", e)
	}
	if e.Style.Color != "#e43f5a" || e.Style.Width != 3 {
		t.Fatalf("unexpected style: %+v", e.Style)
	}
	if sess.Theme() != interaction.ThemeDark {
		t.Fatalf("canvas theme not applied")
	}
	if w, h := sess.Size(); w != 320 || h != 200 {
		t.Fatalf("canvas size not applied: %dx%d", w, h)
	}
}

func TestReplayRendersPNGOfCanvasSize(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "rectangle.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	sf, err := render.NewSurface(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	sess := interaction.New(interaction.Options{Generator: render.Generator{}, Logger: applog.Discard()})
	if err := sess.Attach(sf); err != nil {
		t.Fatal(err)
	}
	if _, err := Replay(context.Background(), sess, s); err != nil {
		t.Fatal(err)
	}
	if err := sess.Render(sf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if b := sf.Image().Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Fatalf("unexpected image bounds %v", b)
	}
}

func TestReplayStopsOnCancel(t *testing.T) {
	s := &Script{Events: []Event{{Op: OpUndo}, {Op: OpRedo}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := Replay(ctx, interaction.New(interaction.Options{Logger: applog.Discard()}), s)
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Fatalf("expected cancel before the first event, got %d, %v", n, err)
	}
}

func TestReplayReportsBadValues(t *testing.T) {
	s := &Script{Events: []Event{{Op: OpTool, Value: "eraser", Line: 4}}}
	_, err := Replay(context.Background(), interaction.New(interaction.Options{Logger: applog.Discard()}), s)
	if !errors.Is(err, ErrInvalidScript) || !strings.Contains(err.Error(), "line 4") {
		t.Fatalf("expected an invalid script error with position, got %v", err)
	}
}
