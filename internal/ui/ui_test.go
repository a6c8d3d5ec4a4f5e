/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"testing"

	"gosketch/internal/config"
	"gosketch/internal/hittest"
	"gosketch/internal/interaction"
)

func TestSessionOptionsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Canvas.Tool = "freehand"
	cfg.Canvas.Theme = "dark"
	cfg.Interaction.HitOrder = "topmost"
	cfg.Stroke.Width = 5
	opts, err := SessionOptions(cfg)
	if err != nil {
		t.Fatalf("SessionOptions() error: %v", err)
	}
	if opts.Tool != interaction.ToolFreehand || opts.Theme != interaction.ThemeDark || opts.HitOrder != hittest.Topmost {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.Style.Width != 5 || opts.Width != cfg.Canvas.Width || opts.Generator == nil {
		t.Fatalf("unexpected options: %+v", opts)
	}
	cfg.Canvas.Tool = "eraser"
	if _, err := SessionOptions(cfg); err == nil {
		t.Fatalf("expected error for unknown tool")
	}
}

func TestSwatchByName(t *testing.T) {
	if hex, ok := swatchByName("Red"); !ok || hex != "#e43f5a" {
		t.Fatalf("swatchByName(Red) = %q, %v", hex, ok)
	}
	if hex, ok := swatchByName("#123456"); !ok || hex != "#123456" {
		t.Fatalf("hex passthrough failed: %q", hex)
	}
	if _, ok := swatchByName("Mauve"); ok {
		t.Fatalf("unknown swatch must not resolve")
	}
	if len(ToolNames) != 4 || ToolNames[0] != "selection" {
		t.Fatalf("unexpected tool names %v", ToolNames)
	}
}
