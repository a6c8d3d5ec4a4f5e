/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package hittest resolves which element, and which part of it, lies under a
// pointer position.
package hittest

import (
	"gosketch/internal/element"
	"gosketch/internal/geom"
)

// Order selects which element wins when several overlap the pointer.
type Order uint8

const (
	// FirstDrawn returns the earliest-created match (lowest id).
	FirstDrawn Order = iota
	// Topmost returns the most recently created match.
	Topmost
)

// ParseOrder maps "first" and "topmost" to an Order; anything else is FirstDrawn.
func ParseOrder(s string) Order {
	if s == "topmost" || s == "last" {
		return Topmost
	}
	return FirstDrawn
}

// Hit is an element annotated with the handle the pointer is on.
type Hit struct {
	Element  element.Element
	Position element.Handle
}

// PositionWithin classifies (x,y) against e. Corner and endpoint handles take
// precedence over the body.
func PositionWithin(x, y float64, e element.Element) element.Handle {
	switch e.Kind {
	case element.Rectangle:
		switch {
		case geom.NearPoint(x, y, e.X1, e.Y1):
			return element.TopLeft
		case geom.NearPoint(x, y, e.X2, e.Y1):
			return element.TopRight
		case geom.NearPoint(x, y, e.X1, e.Y2):
			return element.BottomLeft
		case geom.NearPoint(x, y, e.X2, e.Y2):
			return element.BottomRight
		case x >= e.X1 && x <= e.X2 && y >= e.Y1 && y <= e.Y2:
			return element.Inside
		}
	case element.Line:
		switch {
		case geom.NearPoint(x, y, e.X1, e.Y1):
			return element.Start
		case geom.NearPoint(x, y, e.X2, e.Y2):
			return element.End
		case geom.OnSegment(geom.P(x, y), geom.P(e.X1, e.Y1), geom.P(e.X2, e.Y2), geom.SegmentTolerance):
			return element.Inside
		}
	case element.Freehand:
		if onStroke(geom.P(x, y), e.Points) {
			return element.Inside
		}
	}
	return element.HandleNone
}

// freehand strokes have no handles; they are grabbed anywhere along the samples
func onStroke(p geom.Pt, pts []geom.Pt) bool {
	for i, q := range pts {
		if geom.NearPoint(p.X, p.Y, q.X, q.Y) {
			return true
		}
		if i > 0 && geom.OnSegment(p, pts[i-1], q, geom.SegmentTolerance) {
			return true
		}
	}
	return false
}

// AtPosition returns the element under (x,y). An empty set never matches.
func AtPosition(x, y float64, elements element.Set, order Order) (Hit, bool) {
	if order == Topmost {
		for i := len(elements) - 1; i >= 0; i-- {
			if pos := PositionWithin(x, y, elements[i]); pos != element.HandleNone {
				return Hit{Element: elements[i], Position: pos}, true
			}
		}
		return Hit{}, false
	}
	for _, e := range elements {
		if pos := PositionWithin(x, y, e); pos != element.HandleNone {
			return Hit{Element: e, Position: pos}, true
		}
	}
	return Hit{}, false
}
