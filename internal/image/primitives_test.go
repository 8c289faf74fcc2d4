package imagepkg

import (
	"image"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDigits(t *testing.T) {
	Convey("Given every digit drawn at size 60", t, func() {
		const size = 60.0
		origin := Point{X: 30, Y: 40}
		cell := image.Rect(30, 40, 90, 100)

		for _, ch := range "0123456789" {
			c := NewCanvas(160, 160, Black)
			DrawDigit(c, ch, origin, size, White)
			ink := inkBounds(c.Image(), Black)

			path, ok := DigitPath(ch, origin, size)
			So(ok, ShouldBeTrue)
			minX, minY := math.Inf(1), math.Inf(1)
			maxX, maxY := math.Inf(-1), math.Inf(-1)
			for _, p := range path {
				minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
				minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
			}
			half := size / 20
			ctrl := image.Rect(
				int(math.Floor(minX-half)), int(math.Floor(minY-half)),
				int(math.Ceil(maxX+half)), int(math.Ceil(maxY+half)),
			)

			Convey("Digit "+string(ch)+" stays inside its cell and matches its scaled stroke box", func() {
				So(ink.Empty(), ShouldBeFalse)
				So(ink.In(cell), ShouldBeTrue)
				So(math.Abs(float64(ink.Min.X-ctrl.Min.X)), ShouldBeLessThanOrEqualTo, 1)
				So(math.Abs(float64(ink.Min.Y-ctrl.Min.Y)), ShouldBeLessThanOrEqualTo, 1)
				So(math.Abs(float64(ink.Max.X-ctrl.Max.X)), ShouldBeLessThanOrEqualTo, 1)
				So(math.Abs(float64(ink.Max.Y-ctrl.Max.Y)), ShouldBeLessThanOrEqualTo, 1)
			})
		}

		Convey("Control points scale with size and offset with origin", func() {
			path, _ := DigitPath('7', Point{X: 10, Y: 5}, 50)
			So(path, ShouldResemble, []Point{{25, 15}, {45, 15}, {45, 45}})
		})

		Convey("Non-digits draw nothing", func() {
			_, ok := DigitPath('x', origin, size)
			So(ok, ShouldBeFalse)
			c := NewCanvas(20, 20, Black)
			DrawDigit(c, '-', Point{}, 20, White)
			So(inkBounds(c.Image(), Black).Empty(), ShouldBeTrue)
		})
	})

	Convey("Given numbers", t, func() {
		Convey("A single digit lands exactly where DrawDigit puts it", func() {
			a := NewCanvas(80, 80, Black)
			b := NewCanvas(80, 80, Black)
			DrawNumber(a, 7, Point{X: 10, Y: 10}, 40, White)
			DrawDigit(b, '7', Point{X: 10, Y: 10}, 40, White)
			So(a.Image().Pix, ShouldResemble, b.Image().Pix)
		})

		Convey("Two digits are centered on the single-digit cell", func() {
			c := NewCanvas(120, 80, Black)
			DrawNumber(c, 10, Point{X: 40, Y: 10}, 40, White)
			ink := inkBounds(c.Image(), Black)
			mid := float64(ink.Min.X+ink.Max.X) / 2
			So(math.Abs(mid-60), ShouldBeLessThanOrEqualTo, 3)
		})
	})
}

func TestStar(t *testing.T) {
	Convey("Given a star of size 40 centered at (50,50)", t, func() {
		center := Point{X: 50, Y: 50}
		pts := StarPoints(center, 40)

		Convey("Then it has exactly 10 vertices", func() {
			So(len(pts), ShouldEqual, 10)
		})

		Convey("Then vertex 0 points straight up at the outer radius", func() {
			So(pts[0].X, ShouldAlmostEqual, 50, 1e-9)
			So(pts[0].Y, ShouldAlmostEqual, 30, 1e-9)
		})

		Convey("Then radii alternate outer/inner at 36 degree steps", func() {
			for i, p := range pts {
				r := math.Hypot(p.X-center.X, p.Y-center.Y)
				want := 20.0
				if i%2 == 1 {
					want = 10
				}
				So(r, ShouldAlmostEqual, want, 1e-9)
				angle := math.Atan2(p.Y-center.Y, p.X-center.X) * 180 / math.Pi
				wantAngle := -90 + 36*float64(i)
				if wantAngle > 180 {
					wantAngle -= 360
				}
				So(angle, ShouldAlmostEqual, wantAngle, 1e-6)
			}
		})

		Convey("Then the filled star covers its center", func() {
			c := NewCanvas(100, 100, Black)
			DrawStar(c, center, 40, White)
			So(c.Image().NRGBAAt(50, 50), ShouldResemble, White)
			So(c.Image().NRGBAAt(5, 5), ShouldResemble, Black)
		})
	})
}

func TestStarBadge(t *testing.T) {
	Convey("Given a three star badge", t, func() {
		c := NewCanvas(60, 30, Black)
		rect := image.Rect(8, 5, 52, 22)
		DrawStarBadge(c, rect, 3)

		Convey("Then the bar is filled edge to edge", func() {
			So(c.Image().NRGBAAt(8, 5), ShouldResemble, StarBar)
			So(c.Image().NRGBAAt(51, 21), ShouldResemble, StarBar)
			So(c.Image().NRGBAAt(7, 5), ShouldResemble, Black)
		})

		Convey("Then three stars sit at the expected centers", func() {
			size := float64(rect.Dy() - starMargin)
			spacing := (float64(rect.Dx()) - size*3) / 4
			cy := int(float64(rect.Min.Y) + float64(rect.Dy())/2)
			for i := 0; i < 3; i++ {
				cx := int(float64(rect.Min.X) + spacing*float64(i+1) + size*float64(i) + size/2)
				So(near(c.Image().NRGBAAt(cx, cy), StarFill, 40), ShouldBeTrue)
			}
		})
	})
}

func TestBorderedRect(t *testing.T) {
	Convey("Given a rect with a 2px border and no fill", t, func() {
		c := NewCanvas(40, 40, Black)
		rect := image.Rect(5, 5, 35, 35)
		border := RarityColor(4)
		DrawBorderedRect(c, rect, border, nil, 2)

		Convey("Then both nested outlines are drawn", func() {
			So(c.Image().NRGBAAt(5, 5), ShouldResemble, border)
			So(c.Image().NRGBAAt(6, 20), ShouldResemble, border)
			So(c.Image().NRGBAAt(34, 34), ShouldResemble, border)
			So(c.Image().NRGBAAt(33, 10), ShouldResemble, border)
		})

		Convey("Then the inside and outside are untouched", func() {
			So(c.Image().NRGBAAt(7, 20), ShouldResemble, Black)
			So(c.Image().NRGBAAt(4, 4), ShouldResemble, Black)
		})
	})

	Convey("Given a filled rect", t, func() {
		c := NewCanvas(40, 40, Black)
		DrawBorderedRect(c, image.Rect(0, 0, 40, 40), White, StarBar, 1)
		So(c.Image().NRGBAAt(20, 20), ShouldResemble, StarBar)
		So(c.Image().NRGBAAt(0, 20), ShouldResemble, White)
	})
}

func TestDiscAndRing(t *testing.T) {
	Convey("Given a disc and a ring", t, func() {
		c := NewCanvas(50, 50, Black)
		DrawDisc(c, image.Rect(0, 0, 50, 50), StarBar)
		DrawRing(c, image.Rect(0, 0, 50, 50), 2, White)

		Convey("Then the center keeps the disc color and the corners stay clear", func() {
			So(c.Image().NRGBAAt(25, 25), ShouldResemble, StarBar)
			So(c.Image().NRGBAAt(1, 1), ShouldResemble, Black)
		})

		Convey("Then the rim carries the ring color", func() {
			So(near(c.Image().NRGBAAt(25, 1), White, 60), ShouldBeTrue)
		})
	})
}

func TestColors(t *testing.T) {
	Convey("Given the placement palette", t, func() {
		Convey("Then the badge fill halves every channel, rounding down", func() {
			for p := -1; p <= 10; p++ {
				c, f := PlacementColor(p), PlacementFill(p)
				So(f.R, ShouldEqual, c.R/2)
				So(f.G, ShouldEqual, c.G/2)
				So(f.B, ShouldEqual, c.B/2)
			}
			So(PlacementFill(1), ShouldResemble, Halve(PlacementColor(1)))
		})

		Convey("Then out-of-range placements are neutral gray", func() {
			So(PlacementColor(0), ShouldResemble, NeutralGray)
			So(PlacementColor(9), ShouldResemble, NeutralGray)
			So(PlacementColor(1), ShouldNotResemble, NeutralGray)
		})

		Convey("Then unknown rarities are white and unknown styles gray", func() {
			So(RarityColor(5), ShouldResemble, White)
			So(TraitColor(7), ShouldResemble, UnknownTrait)
		})

		Convey("Then hex parsing rejects garbage", func() {
			_, err := ParseHex("#12")
			So(err, ShouldNotBeNil)
			c, err := ParseHex("#FFD70080")
			So(err, ShouldBeNil)
			So(c.A, ShouldEqual, 0x80)
		})
	})
}
