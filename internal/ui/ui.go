/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui is the desktop front end of the sketch canvas. The fyne
// implementation is compiled with -tags fyne and needs cgo; other builds get a
// stub Run that explains how to enable it.
package ui

import (
	"gosketch/internal/config"
	"gosketch/internal/element"
	"gosketch/internal/hittest"
	"gosketch/internal/interaction"
	"gosketch/internal/render"
)

// Options configures Run.
type Options struct {
	Config config.AppConfig
	// Script, when set, is replayed into the session before the window opens.
	Script string
}

// Swatch is a named stroke color offered by the toolbar.
type Swatch struct {
	Name string
	Hex  string
}

// Palette lists the toolbar colors, default first.
var Palette = []Swatch{
	{"Black", "#000000"},
	{"Red", "#e43f5a"},
	{"Blue", "#1f4068"},
	{"Green", "#2e8b57"},
	{"Orange", "#f08a24"},
	{"White", "#ffffff"},
}

// ToolNames is the toolbar tool order.
var ToolNames = []string{
	interaction.ToolSelection.String(),
	interaction.ToolLine.String(),
	interaction.ToolRectangle.String(),
	interaction.ToolFreehand.String(),
}

// swatchByName returns the hex value of a palette entry, or name itself when
// it already is a hex color.
func swatchByName(name string) (string, bool) {
	for _, s := range Palette {
		if s.Name == name {
			return s.Hex, true
		}
	}
	if len(name) > 1 && name[0] == '#' {
		return name, true
	}
	return "", false
}

// SessionOptions maps the config onto session options with a gg-backed
// generator. The caller sets the logger.
func SessionOptions(cfg config.AppConfig) (interaction.Options, error) {
	tool, err := interaction.ParseTool(cfg.Canvas.Tool)
	if err != nil {
		return interaction.Options{}, err
	}
	th, err := interaction.ParseTheme(cfg.Canvas.Theme)
	if err != nil {
		return interaction.Options{}, err
	}
	return interaction.Options{
		Generator:    render.Generator{Roughness: cfg.Stroke.Roughness},
		Tool:         tool,
		Theme:        th,
		Style:        element.Style{Color: cfg.Stroke.Color, Width: cfg.Stroke.Width},
		HitOrder:     hittest.ParseOrder(cfg.Interaction.HitOrder),
		HistoryLimit: cfg.Interaction.HistoryLimit,
		Width:        cfg.Canvas.Width,
		Height:       cfg.Canvas.Height,
	}, nil
}
