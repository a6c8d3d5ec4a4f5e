/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package script loads gesture scripts: YAML recordings of pointer, key and
// toolbar events that can be replayed against an interaction session.
// Scripts are input recordings, not a drawing file format.
package script

import (
	"fmt"
	"strings"
)

// Op names an event type.
type Op string

const (
	OpTool   Op = "tool"
	OpDown   Op = "down"
	OpMove   Op = "move"
	OpUp     Op = "up"
	OpKey    Op = "key"
	OpResize Op = "resize"
	OpColor  Op = "color"
	OpWidth  Op = "width"
	OpTheme  Op = "theme"
	OpUndo   Op = "undo"
	OpRedo   Op = "redo"
)

// Script is a parsed gesture script.
type Script struct {
	Version int     `yaml:"version"`
	Canvas  Canvas  `yaml:"canvas"`
	Events  []Event `yaml:"events"`
}

// Canvas optionally fixes the surface the script was recorded on.
type Canvas struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Theme  string `yaml:"theme"`
}

// Event is one recorded input. Only the fields of its Op are meaningful:
// down/move use X,Y; resize W,H; key Key and the modifiers; tool, color,
// theme and width use Value.
type Event struct {
	Op    Op      `yaml:"op"`
	X     float64 `yaml:"x,omitempty"`
	Y     float64 `yaml:"y,omitempty"`
	W     int     `yaml:"w,omitempty"`
	H     int     `yaml:"h,omitempty"`
	Value any     `yaml:"value,omitempty"`
	Key   string  `yaml:"key,omitempty"`
	Ctrl  bool    `yaml:"ctrl,omitempty"`
	Meta  bool    `yaml:"meta,omitempty"`
	Shift bool    `yaml:"shift,omitempty"`

	// Line is the 1-based source line, filled in by Parse.
	Line int `yaml:"-"`
}

func (e Event) String() string {
	switch e.Op {
	case OpDown, OpMove:
		return fmt.Sprintf("%s(%g,%g)", e.Op, e.X, e.Y)
	case OpResize:
		return fmt.Sprintf("resize(%dx%d)", e.W, e.H)
	case OpKey:
		var mods []string
		if e.Ctrl {
			mods = append(mods, "ctrl")
		}
		if e.Meta {
			mods = append(mods, "meta")
		}
		if e.Shift {
			mods = append(mods, "shift")
		}
		return fmt.Sprintf("key(%s)", strings.Join(append(mods, e.Key), "+"))
	case OpTool, OpColor, OpTheme, OpWidth:
		return fmt.Sprintf("%s(%v)", e.Op, e.Value)
	}
	return string(e.Op)
}

// Error is a validation problem with position context.
type Error struct {
	Line    int    // 1-based source line, 0 when unknown
	Field   string // dotted path, e.g. "events.3.x"
	Message string
}

func (e Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
