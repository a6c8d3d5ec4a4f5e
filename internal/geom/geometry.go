/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Basic 2D geometry for canvas coordinates.
// Values use float64 to match pointer coordinates and the raster backend.

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// HandleTolerance is the per-axis distance within which a pointer grabs a handle.
	HandleTolerance = 5.0
	// SegmentTolerance is the slack allowed by the on-segment test.
	SegmentTolerance = 1.0
)

// Pt is a 2D point in canvas space.
type Pt struct{ X, Y float64 }

func P(x, y float64) Pt { return Pt{X: x, Y: y} }

func (p Pt) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Add returns p translated by (dx, dy).
func (p Pt) Add(dx, dy float64) Pt { return Pt{X: p.X + dx, Y: p.Y + dy} }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

// Contains reports whether p lies in r, edges included.
func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Pt) float64 {
	return r2.Norm(r2.Sub(a.vec(), b.vec()))
}

// NearPoint reports whether (x,y) is within HandleTolerance of (x1,y1) on both axes.
func NearPoint(x, y, x1, y1 float64) bool {
	return math.Abs(x-x1) < HandleTolerance && math.Abs(y-y1) < HandleTolerance
}

// OnSegment reports whether p lies on the segment a-b. The sum of distances from p
// to both endpoints equals the segment length only between the endpoints.
func OnSegment(p, a, b Pt, tol float64) bool {
	offset := Distance(a, b) - (Distance(a, p) + Distance(b, p))
	return math.Abs(offset) < tol
}

// Normalize orders two corners so the first is the min corner.
func Normalize(x1, y1, x2, y2 float64) (float64, float64, float64, float64) {
	return math.Min(x1, x2), math.Min(y1, y2), math.Max(x1, x2), math.Max(y1, y2)
}

// OrderPoints returns the endpoints with the smaller x (then smaller y) first.
func OrderPoints(x1, y1, x2, y2 float64) (float64, float64, float64, float64) {
	if x1 < x2 || (x1 == x2 && y1 <= y2) {
		return x1, y1, x2, y2
	}
	return x2, y2, x1, y1
}

// Bounds returns the min/max corners of pts. An empty slice yields the zero box.
func Bounds(pts []Pt) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// RectFromCorners builds a Rect from two arbitrary corners.
func RectFromCorners(x1, y1, x2, y2 float64) Rect {
	minX, minY, maxX, maxY := Normalize(x1, y1, x2, y2)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
