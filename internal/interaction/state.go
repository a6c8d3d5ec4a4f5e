/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interaction

import (
	"fmt"
	"strings"

	"gosketch/internal/element"
)

// Tool is the user-selected drawing mode.
type Tool uint8

const (
	ToolSelection Tool = iota
	ToolLine
	ToolRectangle
	ToolFreehand
)

func (t Tool) String() string {
	switch t {
	case ToolSelection:
		return "selection"
	case ToolLine:
		return "line"
	case ToolRectangle:
		return "rectangle"
	case ToolFreehand:
		return "freehand"
	}
	return fmt.Sprintf("tool(%d)", uint8(t))
}

// ParseTool accepts tool names and the element kind aliases.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "selection" || s == "select" {
		return ToolSelection, nil
	}
	k, err := element.ParseKind(s)
	if err != nil {
		return ToolSelection, fmt.Errorf("unknown tool %q", s)
	}
	return toolFor(k), nil
}

// kind returns the element kind a drawing tool creates.
func (t Tool) kind() (element.Kind, bool) {
	switch t {
	case ToolLine:
		return element.Line, true
	case ToolRectangle:
		return element.Rectangle, true
	case ToolFreehand:
		return element.Freehand, true
	}
	return 0, false
}

func toolFor(k element.Kind) Tool {
	switch k {
	case element.Line:
		return ToolLine
	case element.Rectangle:
		return ToolRectangle
	case element.Freehand:
		return ToolFreehand
	}
	return ToolSelection
}

// Action is the phase of the current pointer gesture.
type Action uint8

const (
	ActionNone Action = iota
	ActionDrawing
	ActionMoving
	ActionResizing
)

func (a Action) String() string {
	switch a {
	case ActionDrawing:
		return "drawing"
	case ActionMoving:
		return "moving"
	case ActionResizing:
		return "resizing"
	}
	return "none"
}

// Theme selects the canvas background.
type Theme uint8

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Background is the hex fill used when clearing the canvas.
func (t Theme) Background() string {
	if t == ThemeDark {
		return "#162447"
	}
	return "#ffffff"
}

func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "white":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeLight, fmt.Errorf("unknown theme %q", s)
}

// Selected is the element grabbed by the current gesture.
type Selected struct {
	Element element.Element
	// Offset from the element origin to the pointer at grab time.
	OffsetX, OffsetY float64
	Position         element.Handle
}
