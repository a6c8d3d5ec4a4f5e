/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render draws sketch elements onto a raster surface backed by
// github.com/gogpu/gg.
package render

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"gosketch/internal/element"
	"gosketch/internal/geom"
)

// Shape is the renderable produced by Generator: one or more open polylines
// stroked with a single style.
type Shape struct {
	Kind    element.Kind
	Strokes [][]geom.Pt
	Style   element.Style
}

// Generator implements element.Generator. With Roughness > 0 lines and
// rectangle edges are drawn twice with small offsets, giving a hand-drawn look.
// The jitter is seeded by the geometry, so the same element always looks the same.
type Generator struct {
	Roughness float64
}

var _ element.Generator = Generator{}

func (g Generator) Line(x1, y1, x2, y2 float64, st element.Style) element.Renderable {
	a, b := geom.P(x1, y1), geom.P(x2, y2)
	return &Shape{Kind: element.Line, Strokes: g.edge(a, b), Style: st}
}

// Rectangle accepts negative extents while a shape is being dragged out.
func (g Generator) Rectangle(x, y, w, h float64, st element.Style) element.Renderable {
	c := [4]geom.Pt{geom.P(x, y), geom.P(x+w, y), geom.P(x+w, y+h), geom.P(x, y+h)}
	if g.Roughness <= 0 {
		return &Shape{Kind: element.Rectangle, Strokes: [][]geom.Pt{{c[0], c[1], c[2], c[3], c[0]}}, Style: st}
	}
	var strokes [][]geom.Pt
	for i := range c {
		strokes = append(strokes, g.edge(c[i], c[(i+1)%4])...)
	}
	return &Shape{Kind: element.Rectangle, Strokes: strokes, Style: st}
}

// Path draws the samples as-is; a single sample becomes a dot.
func (g Generator) Path(pts []geom.Pt, st element.Style) element.Renderable {
	p := make([]geom.Pt, len(pts))
	copy(p, pts)
	if len(p) == 1 {
		p = append(p, p[0])
	}
	return &Shape{Kind: element.Freehand, Strokes: [][]geom.Pt{p}, Style: st}
}

func (g Generator) edge(a, b geom.Pt) [][]geom.Pt {
	if g.Roughness <= 0 {
		return [][]geom.Pt{{a, b}}
	}
	rng := seeded(a, b)
	// offsets scale with length, capped so long edges stay readable
	off := g.Roughness * math.Min(geom.Distance(a, b)/10, 2)
	jit := func() float64 { return (rng.Float64()*2 - 1) * off }
	out := make([][]geom.Pt, 2)
	for i := range out {
		mx, my := a.X+(b.X-a.X)*(0.4+0.2*rng.Float64()), a.Y+(b.Y-a.Y)*(0.4+0.2*rng.Float64())
		out[i] = []geom.Pt{a.Add(jit(), jit()), geom.P(mx+jit(), my+jit()), b.Add(jit(), jit())}
	}
	return out
}

func seeded(pts ...geom.Pt) *rand.Rand {
	h := fnv.New64a()
	var buf [8]byte
	for _, p := range pts {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p.X))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p.Y))
		_, _ = h.Write(buf[:])
	}
	s := h.Sum64()
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
