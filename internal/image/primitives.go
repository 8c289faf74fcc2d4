package imagepkg

import (
	"image"
	"image/color"
	"math"
	"strconv"
)

// digitGrid is the side of the normalized grid digit strokes are defined on.
const digitGrid = 100.0

// digitStrokes holds the control points of every digit on a 100×100 grid.
// Consecutive points are joined by straight strokes.
var digitStrokes = map[rune][]Point{
	'0': {{30, 20}, {70, 20}, {70, 80}, {30, 80}, {30, 20}},
	'1': {{40, 20}, {60, 20}, {60, 80}, {40, 80}},
	'2': {{30, 20}, {70, 20}, {70, 50}, {30, 50}, {30, 80}, {70, 80}},
	'3': {{30, 20}, {70, 20}, {70, 80}, {30, 80}, {70, 50}, {30, 50}},
	'4': {{30, 20}, {30, 50}, {70, 50}, {70, 20}, {70, 80}},
	'5': {{70, 20}, {30, 20}, {30, 50}, {70, 50}, {70, 80}, {30, 80}},
	'6': {{70, 20}, {30, 20}, {30, 80}, {70, 80}, {70, 50}, {30, 50}},
	'7': {{30, 20}, {70, 20}, {70, 80}},
	'8': {{30, 20}, {70, 20}, {70, 80}, {30, 80}, {30, 20}, {30, 50}, {70, 50}},
	'9': {{70, 80}, {70, 20}, {30, 20}, {30, 50}, {70, 50}},
}

// DigitPath returns the control points of ch scaled to size and offset by
// origin. ok is false for anything but 0-9.
func DigitPath(ch rune, origin Point, size float64) (path []Point, ok bool) {
	pts, ok := digitStrokes[ch]
	if !ok {
		return nil, false
	}
	scale := size / digitGrid
	path = make([]Point, len(pts))
	for i, p := range pts {
		path[i] = Point{X: origin.X + p.X*scale, Y: origin.Y + p.Y*scale}
	}
	return path, true
}

// DrawDigit strokes ch inside the size×size cell at origin with a stroke width
// of size/10. Characters outside 0-9 draw nothing.
func DrawDigit(c *Canvas, ch rune, origin Point, size float64, col color.Color) {
	path, ok := DigitPath(ch, origin, size)
	if !ok {
		return
	}
	StrokePolyline(c, path, size/10, col)
}

// DrawNumber draws the decimal digits of n. Each digit advances by size/2 and
// the run is centered on the cell a single digit would occupy, so one-digit
// numbers land exactly where DrawDigit puts them.
func DrawNumber(c *Canvas, n int, origin Point, size float64, col color.Color) {
	s := strconv.Itoa(n)
	advance := size / 2
	x := origin.X - float64(len(s)-1)*advance/2
	for _, ch := range s {
		DrawDigit(c, ch, Point{X: x, Y: origin.Y}, size, col)
		x += advance
	}
}

// StrokePolyline joins consecutive points with straight strokes of the given
// width. Segment ends are squared off by half the width so corners close.
func StrokePolyline(c *Canvas, pts []Point, width float64, col color.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	h := width / 2
	quads := make([][]Point, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		p, q := pts[i-1], pts[i]
		dx, dy := q.X-p.X, q.Y-p.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		// d along the segment, n across it, both of length h.
		ux, uy := dx/l*h, dy/l*h
		nx, ny := -uy, ux
		quads = append(quads, []Point{
			{p.X - ux + nx, p.Y - uy + ny},
			{q.X + ux + nx, q.Y + uy + ny},
			{q.X + ux - nx, q.Y + uy - ny},
			{p.X - ux - nx, p.Y - uy - ny},
		})
	}
	c.fillPolygons(col, quads...)
}

// StarPoints returns the 10 vertices of a star centered on center: even
// vertices on radius size/2, odd ones on size/4, vertex 0 pointing up.
func StarPoints(center Point, size float64) []Point {
	outer, inner := size/2, size/4
	pts := make([]Point, 10)
	for i := range pts {
		angle := math.Pi/5*float64(i) - math.Pi/2
		r := outer
		if i%2 == 1 {
			r = inner
		}
		pts[i] = Point{X: center.X + r*math.Cos(angle), Y: center.Y + r*math.Sin(angle)}
	}
	return pts
}

// DrawStar fills a 10-point star.
func DrawStar(c *Canvas, center Point, size float64, col color.Color) {
	c.fillPolygons(col, StarPoints(center, size))
}

// starMargin is how much shorter stars are than their bar.
const starMargin = 4

// DrawStarBadge fills rect with the star bar color and spaces starCount white
// stars evenly inside it.
func DrawStarBadge(c *Canvas, rect image.Rectangle, starCount int) {
	c.FillRect(rect, StarBar)
	if starCount <= 0 {
		return
	}
	w, h := float64(rect.Dx()), float64(rect.Dy())
	size := h - starMargin
	spacing := (w - size*float64(starCount)) / float64(starCount+1)
	cy := float64(rect.Min.Y) + h/2
	for i := 0; i < starCount; i++ {
		cx := float64(rect.Min.X) + spacing*float64(i+1) + size*float64(i) + size/2
		DrawStar(c, Point{X: cx, Y: cy}, size, StarFill)
	}
}

// DrawBorderedRect fills rect with fill (nil leaves the inside untouched) and
// strokes borderWidth nested one-pixel outlines of borderColor inward from the
// edge.
func DrawBorderedRect(c *Canvas, rect image.Rectangle, borderColor, fill color.Color, borderWidth int) {
	if fill != nil {
		c.FillRect(rect, fill)
	}
	for i := 0; i < borderWidth; i++ {
		r := rect.Inset(i)
		if r.Empty() {
			return
		}
		c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), borderColor)
		c.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), borderColor)
		c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), borderColor)
		c.FillRect(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), borderColor)
	}
}

// circleSegments is the number of edges circles are approximated with.
const circleSegments = 96

// circlePoints approximates a circle. clockwise selects the winding so rings
// can be cut out of discs.
func circlePoints(center Point, radius float64, clockwise bool) []Point {
	pts := make([]Point, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		if !clockwise {
			a = -a
		}
		pts[i] = Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return pts
}

// DrawDisc fills the circle inscribed in rect.
func DrawDisc(c *Canvas, rect image.Rectangle, col color.Color) {
	center, radius := inscribed(rect)
	c.fillPolygons(col, circlePoints(center, radius, true))
}

// DrawRing strokes the outline of the circle inscribed in rect, width pixels
// thick, inward.
func DrawRing(c *Canvas, rect image.Rectangle, width float64, col color.Color) {
	center, radius := inscribed(rect)
	if width >= radius {
		c.fillPolygons(col, circlePoints(center, radius, true))
		return
	}
	c.fillPolygons(col, circlePoints(center, radius, true), circlePoints(center, radius-width, false))
}

func inscribed(rect image.Rectangle) (Point, float64) {
	w, h := float64(rect.Dx()), float64(rect.Dy())
	return Point{X: float64(rect.Min.X) + w/2, Y: float64(rect.Min.Y) + h/2}, math.Min(w, h) / 2
}
