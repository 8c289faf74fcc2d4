package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Resize scales img to exactly w×h with a Lanczos filter. The source is never
// modified, so cached bitmaps can be resized by concurrent renders.
func Resize(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// CircularMask scales img to diameter×diameter and clears everything outside
// the inscribed circle. The edge is anti-aliased.
func CircularMask(img image.Image, diameter int) *image.NRGBA {
	src := Resize(img, diameter, diameter)
	out := image.NewNRGBA(image.Rect(0, 0, diameter, diameter))
	draw.DrawMask(out, out.Bounds(), src, image.Point{}, discMask(diameter), image.Point{}, draw.Src)
	return out
}

// discMask is an alpha mask holding a filled disc of the given diameter.
func discMask(diameter int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, diameter, diameter))
	r := float64(diameter) / 2
	pts := circlePoints(Point{X: r, Y: r}, r, true)

	var z vector.Rasterizer
	z.Reset(diameter, diameter)
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.NewUniform(color.Opaque), image.Point{})
	return mask
}
