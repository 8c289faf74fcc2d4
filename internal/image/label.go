package imagepkg

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// labelFace is the embedded bitmap face used for small counters. It ships with
// the binary, so output does not depend on installed fonts.
var labelFace = basicfont.Face7x13

// labelInset is the distance of a corner label from the box edges.
const labelInset = 2

// DrawCornerLabel writes n in the bottom-right corner of box.
func DrawCornerLabel(c *Canvas, box image.Rectangle, n int, col color.Color) {
	text := strconv.Itoa(n)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: labelFace,
	}
	width := d.MeasureString(text).Ceil()
	descent := labelFace.Metrics().Descent.Ceil()
	d.Dot = fixed.P(box.Max.X-width-labelInset, box.Max.Y-descent-labelInset)
	d.DrawString(text)
}
