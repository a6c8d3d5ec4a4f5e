//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"gosketch/internal/hittest"
	"gosketch/internal/interaction"
	"gosketch/internal/render"
)

// SketchCanvas shows a session and forwards pointer input to it. Canvas
// coordinates are fyne units relative to the widget origin.
type SketchCanvas struct {
	widget.BaseWidget

	sess    *interaction.Session
	surface *render.Surface
	log     *slog.Logger
	raster  *canvas.Raster
	cursor  hittest.Cursor
	// OnStatus receives a short summary after every change.
	OnStatus func(string)
}

var (
	_ desktop.Mouseable  = (*SketchCanvas)(nil)
	_ desktop.Hoverable  = (*SketchCanvas)(nil)
	_ desktop.Cursorable = (*SketchCanvas)(nil)
	_ fyne.Draggable     = (*SketchCanvas)(nil)
)

func NewSketchCanvas(sess *interaction.Session, sf *render.Surface, l *slog.Logger) *SketchCanvas {
	c := &SketchCanvas{sess: sess, surface: sf, log: l}
	c.raster = canvas.NewRaster(c.draw)
	sess.SetOnChange(func() {
		c.raster.Refresh()
		if c.OnStatus != nil {
			c.OnStatus(sess.Summary())
		}
	})
	c.ExtendBaseWidget(c)
	return c
}

// draw renders the session at widget size; fyne scales the image to the raster.
func (c *SketchCanvas) draw(_, _ int) image.Image {
	sz := c.Size()
	w, h := max(1, int(sz.Width)), max(1, int(sz.Height))
	if sw, sh := c.surface.Size(); sw != w || sh != h {
		// Resize also redraws through OnChange; render now to avoid a blank frame
		if err := c.sess.Resize(w, h); err != nil {
			c.log.Warn("resize surface", slog.Any("err", err))
		}
	}
	if err := c.sess.Render(c.surface); err != nil {
		c.log.Error("render", slog.Any("err", err))
	}
	return c.surface.Image()
}

func (c *SketchCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

func (c *SketchCanvas) MinSize() fyne.Size { return fyne.NewSize(320, 240) }

func (c *SketchCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.sess.PointerDown(float64(e.Position.X), float64(e.Position.Y))
}

func (c *SketchCanvas) MouseUp(*desktop.MouseEvent) { c.sess.PointerUp() }

func (c *SketchCanvas) Dragged(e *fyne.DragEvent) {
	c.cursor = c.sess.PointerMove(float64(e.Position.X), float64(e.Position.Y))
}

// DragEnd may follow MouseUp; a second PointerUp is a no-op.
func (c *SketchCanvas) DragEnd() { c.sess.PointerUp() }

func (c *SketchCanvas) MouseIn(e *desktop.MouseEvent) { c.MouseMoved(e) }

func (c *SketchCanvas) MouseMoved(e *desktop.MouseEvent) {
	c.cursor = c.sess.PointerMove(float64(e.Position.X), float64(e.Position.Y))
}

func (c *SketchCanvas) MouseOut() { c.cursor = hittest.CursorDefault }

// Cursor maps the hover hint onto fyne's cursor set, which has no diagonal
// resize shapes.
func (c *SketchCanvas) Cursor() desktop.Cursor {
	switch c.cursor {
	case hittest.CursorMove:
		return desktop.PointerCursor
	case hittest.CursorNWSEResize, hittest.CursorNESWResize, hittest.CursorCrosshair:
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

// windowShortcuts registers the undo/redo combinations on a window canvas.
type windowShortcuts struct{ c fyne.Canvas }

func (w windowShortcuts) AddKeyListener(fn func(interaction.KeyEvent) bool) func() {
	mods := []fyne.KeyModifier{
		fyne.KeyModifierControl,
		fyne.KeyModifierSuper,
		fyne.KeyModifierControl | fyne.KeyModifierShift,
		fyne.KeyModifierSuper | fyne.KeyModifierShift,
	}
	added := make([]fyne.Shortcut, 0, len(mods))
	for _, m := range mods {
		ev := interaction.KeyEvent{
			Key:   "z",
			Ctrl:  m&fyne.KeyModifierControl != 0,
			Meta:  m&fyne.KeyModifierSuper != 0,
			Shift: m&fyne.KeyModifierShift != 0,
		}
		sc := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: m}
		w.c.AddShortcut(sc, func(fyne.Shortcut) { fn(ev) })
		added = append(added, sc)
	}
	return func() {
		for _, sc := range added {
			w.c.RemoveShortcut(sc)
		}
	}
}
