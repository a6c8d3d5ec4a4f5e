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
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"gosketch/internal/crash"
	"gosketch/internal/interaction"
	applog "gosketch/internal/log"
	"gosketch/internal/render"
	"gosketch/internal/script"
)

// Run opens the sketch window and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	render.SetLogger(applog.WithComponent("gg"))

	so, err := SessionOptions(opts.Config)
	if err != nil {
		return fmt.Errorf("session options: %w", err)
	}
	so.Logger = l
	sess := interaction.New(so)
	defer crash.Recover(&crash.Info{Session: sess.ID(), State: sess.Summary})

	sf, err := render.NewSurface(opts.Config.Canvas.Width, opts.Config.Canvas.Height)
	if err != nil {
		return err
	}
	defer func() { _ = sf.Close() }()
	if err := sess.Attach(sf); err != nil {
		return err
	}
	if opts.Script != "" {
		sc, err := script.Load(opts.Script)
		if err != nil {
			return err
		}
		if _, err := script.Replay(context.Background(), sess, sc); err != nil {
			return fmt.Errorf("replay %s: %w", opts.Script, err)
		}
	}
	l.Info("starting UI", slog.String("session", sess.ID()))

	a := app.NewWithID("gosketch")
	w := a.NewWindow("gosketch")
	w.Resize(fyne.NewSize(float32(opts.Config.Canvas.Width), float32(opts.Config.Canvas.Height)+48))

	status := widget.NewLabel("Ready")
	sketch := NewSketchCanvas(sess, sf, l)
	sketch.OnStatus = status.SetText

	w.SetContent(container.NewBorder(newToolbar(sess), status, nil, nil, sketch))

	unbind := sess.BindShortcuts(windowShortcuts{c: w.Canvas()})
	w.SetOnClosed(func() {
		unbind()
		l.Info("window closed", slog.String("summary", sess.Summary()))
	})
	w.ShowAndRun()
	return nil
}

func newToolbar(sess *interaction.Session) fyne.CanvasObject {
	tools := widget.NewSelect(ToolNames, func(s string) {
		if t, err := interaction.ParseTool(s); err == nil {
			sess.SetTool(t)
		}
	})
	tools.SetSelected(sess.Tool().String())

	names := make([]string, len(Palette))
	for i, s := range Palette {
		names[i] = s.Name
	}
	colors := widget.NewSelect(names, func(name string) {
		if hex, ok := swatchByName(name); ok {
			sess.SetColor(hex)
		}
	})
	colors.PlaceHolder = sess.Style().Color

	themes := widget.NewSelect([]string{"light", "dark"}, func(s string) {
		if th, err := interaction.ParseTheme(s); err == nil {
			sess.SetTheme(th)
		}
	})
	themes.SetSelected(sess.Theme().String())

	width := widget.NewSlider(1, 20)
	width.Step = 1
	width.SetValue(sess.Style().Width)
	width.OnChanged = func(v float64) { _ = sess.SetStrokeWidth(v) }

	undo := widget.NewButtonWithIcon("", theme.ContentUndoIcon(), sess.Undo)
	redo := widget.NewButtonWithIcon("", theme.ContentRedoIcon(), sess.Redo)

	return container.NewHBox(
		widget.NewLabel("Tool"), tools,
		widget.NewLabel("Color"), colors,
		widget.NewLabel("Theme"), themes,
		widget.NewLabel("Width"), container.NewGridWrap(fyne.NewSize(120, width.MinSize().Height), width),
		undo, redo,
	)
}
