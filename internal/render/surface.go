/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"gosketch/internal/element"
)

// ErrForeignRenderable is returned by Draw for renderables not made by Generator.
var ErrForeignRenderable = errors.New("render: renderable was not produced by render.Generator")

// SetLogger routes gg diagnostics to l.
func SetLogger(l *slog.Logger) { gg.SetLogger(l) }

// Surface is a raster canvas. It satisfies interaction.Surface.
type Surface struct {
	mu  sync.Mutex
	ctx *gg.Context
}

// NewSurface allocates a w x h surface.
func NewSurface(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("surface size %dx%d must be positive", w, h)
	}
	return &Surface{ctx: gg.NewContext(w, h)}, nil
}

// Clear fills the whole surface with a hex color.
func (s *Surface) Clear(background string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.ClearWithColor(gg.Hex(background))
}

// Draw strokes a *Shape.
func (s *Surface) Draw(r element.Renderable) error {
	sh, ok := r.(*Shape)
	if !ok || sh == nil {
		return fmt.Errorf("%w: %T", ErrForeignRenderable, r)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.ctx
	c.SetHexColor(sh.Style.Color)
	c.SetLineWidth(sh.Style.Width)
	c.SetLineCap(gg.LineCapRound)
	c.SetLineJoin(gg.LineJoinRound)
	for _, pl := range sh.Strokes {
		if len(pl) == 0 {
			continue
		}
		c.MoveTo(pl[0].X, pl[0].Y)
		for _, p := range pl[1:] {
			c.LineTo(p.X, p.Y)
		}
	}
	if err := c.Stroke(); err != nil {
		return fmt.Errorf("stroke %s: %w", sh.Kind, err)
	}
	return nil
}

// Resize reallocates the pixels; content is discarded.
func (s *Surface) Resize(w, h int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Resize(w, h)
}

func (s *Surface) Size() (w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Width(), s.ctx.Height()
}

func (s *Surface) Image() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Image()
}

func (s *Surface) EncodePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.EncodePNG(w)
}

func (s *Surface) SavePNG(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Thumbnail scales the current image to fit within maxW x maxH, keeping the
// aspect ratio.
func (s *Surface) Thumbnail(maxW, maxH int) (*image.RGBA, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, fmt.Errorf("thumbnail bounds %dx%d must be positive", maxW, maxH)
	}
	src := s.Image()
	b := src.Bounds()
	scale := min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w, h := max(1, int(float64(b.Dx())*scale)), max(1, int(float64(b.Dy())*scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst, nil
}

func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Close()
}
