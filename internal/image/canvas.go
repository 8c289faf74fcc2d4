package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Canvas is the pixel buffer of one render. A Canvas has a single owner: every
// primitive takes it explicitly and none of them retains it. It is not safe for
// concurrent use.
type Canvas struct {
	img *image.NRGBA
	ras vector.Rasterizer
}

// NewCanvas allocates a w×h canvas filled with bg.
func NewCanvas(w, h int, bg color.Color) *Canvas {
	return &Canvas{img: imaging.New(w, h, bg)}
}

// Image exposes the underlying buffer. Callers must not draw on it while the
// canvas is still being composed.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// FillRect paints r with col, replacing what is underneath.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// Overlay composites img over the canvas at pt using img's alpha.
func (c *Canvas) Overlay(img image.Image, pt image.Point) {
	b := img.Bounds()
	draw.Draw(c.img, image.Rectangle{Min: pt, Max: pt.Add(b.Size())}, img, b.Min, draw.Over)
}

// Point is a position in canvas space, in pixels.
type Point struct {
	X, Y float64
}

// fillPolygons fills the union of closed polygons with col, anti-aliased.
// Polygons must share one winding direction to add up; a reversed polygon
// cuts a hole.
func (c *Canvas) fillPolygons(col color.Color, polys ...[]Point) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	bb := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	if bb.Empty() || !bb.Overlaps(c.img.Bounds()) {
		return
	}

	ox, oy := float64(bb.Min.X), float64(bb.Min.Y)
	c.ras.Reset(bb.Dx(), bb.Dy())
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		c.ras.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			c.ras.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		c.ras.ClosePath()
	}
	c.ras.Draw(c.img, bb, image.NewUniform(col), image.Point{})
}
