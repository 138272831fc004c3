// Package render provides the drawing surface the algorithm modules
// paint on: a gg-backed raster canvas, plus gonum/plot charts for the
// numeric diagnostics.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/YuminosukeSato/mlboard/core/algorithm"
	"github.com/YuminosukeSato/mlboard/geom"
)

// labelFace renders the stat labels and equations. gg draws no text at
// all without a font face, so the canvas loads the embedded Go font
// once at package init.
var labelFace = mustFace(13)

func mustFace(size float64) text.Face {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded font: %v", err))
	}
	return source.Face(size)
}

// Canvas is a stateless drawing surface in canvas-pixel coordinates.
// It holds no algorithm state; algorithms paint onto it through the
// algorithm.Surface interface.
type Canvas struct {
	dc     *gg.Context
	width  int
	height int
}

var _ algorithm.Surface = (*Canvas)(nil)

// NewCanvas creates a white canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		dc:     gg.NewContext(width, height),
		width:  width,
		height: height,
	}
	c.dc.SetFont(labelFace)
	c.Clear()
	return c
}

// Clear repaints the canvas white.
func (c *Canvas) Clear() {
	c.dc.ClearWithColor(gg.White)
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// DrawPoint fills a dot of the given radius.
func (c *Canvas) DrawPoint(x, y, radius float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(x, y, radius)
	_ = c.dc.Fill()
}

// DrawLine strokes a segment.
func (c *Canvas) DrawLine(x1, y1, x2, y2, width float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x1, y1, x2, y2)
	_ = c.dc.Stroke()
}

// DrawRect fills or outlines a rectangle.
func (c *Canvas) DrawRect(r geom.Rect, col color.Color, fill bool) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(r.MinX, r.MinY, r.Width(), r.Height())
	if fill {
		_ = c.dc.Fill()
	} else {
		c.dc.SetLineWidth(1)
		_ = c.dc.Stroke()
	}
}

// DrawText draws s with its left edge at x, vertically centered on y.
func (c *Canvas) DrawText(s string, x, y float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, x, y, 0, 0.5)
}

// DrawCentroid draws the ringed marker K-means uses for its centers,
// labeled with the centroid index.
func (c *Canvas) DrawCentroid(x, y float64, index int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(x, y, 9)
	_ = c.dc.Fill()

	c.dc.SetRGB(1, 1, 1)
	c.dc.DrawCircle(x, y, 4)
	_ = c.dc.Fill()

	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(fmt.Sprintf("C%d", index), x, y-16, 0.5, 0.5)
}

// DrawPulse draws the cosmetic ring around a freshly added point.
// phase runs from 0 (tight, opaque) to 1 (wide, transparent).
func (c *Canvas) DrawPulse(x, y, phase float64) {
	alpha := 0.6 * (1 - phase)
	c.dc.SetRGBA(0.12, 0.53, 0.90, alpha)
	c.dc.SetLineWidth(2)
	c.dc.DrawCircle(x, y, 6+10*phase)
	_ = c.dc.Stroke()
}

// Image returns the rendered frame.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the rendered frame to path.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}
