package imagepkg

import (
	"image"

	"github.com/youruser/recapapp/internal/match"
)

// Fixed geometry of the recap image, in pixels.
const (
	CanvasHeight = 200
	LeftMargin   = 300
	RightMargin  = 20
	UnitWidth    = 100
	UnitSpacing  = 20

	BadgeX             = 20
	BadgeY             = CanvasHeight/4 - 30
	BadgeSize          = 100
	BadgeBorder        = 2
	PlacementDigitSize = 60

	IconGap        = 20
	IconSize       = 100
	LevelDigitSize = 30
	LevelBadgeSize = LevelDigitSize + 12
	LevelInset     = 2

	UnitY           = 20
	PortraitSize    = 80
	RarityBorder    = 2
	StarBadgeWidth  = 44
	StarBadgeHeight = 17
	StarBadgeGap    = 3
	ItemSize        = 25
	ItemStride      = 27
	ItemGap         = 4

	TraitY       = UnitY + 110
	TraitSize    = 32
	TraitSpacing = 4
)

// CanvasWidth is the canvas width for a board of unitCount units.
func CanvasWidth(unitCount int) int {
	return LeftMargin + unitCount*(UnitWidth+UnitSpacing) + RightMargin
}

// Layout is the position of every element of one recap image. It depends only
// on the participant's shape (unit and item counts), never on fetched assets.
type Layout struct {
	Width, Height int

	Badge          image.Rectangle
	PlacementDigit Point

	Icon       image.Rectangle
	LevelBadge image.Rectangle
	LevelDigit Point

	Units []UnitSlot

	// Traits are the slots trait icons fill left to right. Slots that would
	// cross the right edge of the canvas are not generated.
	Traits []image.Rectangle
}

// UnitSlot positions one unit column.
type UnitSlot struct {
	Portrait image.Rectangle
	Border   image.Rectangle
	Stars    image.Rectangle
	Items    []image.Rectangle
}

// ComputeLayout lays out the recap of p.
func ComputeLayout(p *match.Participant) Layout {
	l := Layout{
		Width:  CanvasWidth(len(p.Units)),
		Height: CanvasHeight,
	}

	l.Badge = square(BadgeX, BadgeY, BadgeSize)
	digitOffset := (BadgeSize - PlacementDigitSize) / 2
	l.PlacementDigit = Point{X: float64(BadgeX + digitOffset), Y: float64(BadgeY + digitOffset)}

	iconX := BadgeX + BadgeSize + IconGap
	l.Icon = square(iconX, BadgeY, IconSize)
	l.LevelBadge = square(
		l.Icon.Max.X-LevelBadgeSize-LevelInset,
		l.Icon.Max.Y-LevelBadgeSize-LevelInset,
		LevelBadgeSize,
	)
	levelOffset := (LevelBadgeSize - LevelDigitSize) / 2
	l.LevelDigit = Point{X: float64(l.LevelBadge.Min.X + levelOffset), Y: float64(l.LevelBadge.Min.Y + levelOffset)}

	l.Units = make([]UnitSlot, len(p.Units))
	for i, u := range p.Units {
		x := LeftMargin + (UnitWidth+UnitSpacing)*i
		slot := UnitSlot{
			Portrait: square(x, UnitY, PortraitSize),
			Border:   square(x-RarityBorder, UnitY-RarityBorder, PortraitSize+2*RarityBorder),
			Stars: image.Rect(
				x+(PortraitSize-StarBadgeWidth)/2, UnitY-StarBadgeHeight-StarBadgeGap,
				x+(PortraitSize-StarBadgeWidth)/2+StarBadgeWidth, UnitY-StarBadgeGap,
			),
		}
		itemX := x + floorDiv(PortraitSize-len(u.ItemNames)*ItemStride, 2)
		itemY := UnitY + PortraitSize + ItemGap
		for j := range u.ItemNames {
			slot.Items = append(slot.Items, square(itemX+j*ItemStride, itemY, ItemSize))
		}
		l.Units[i] = slot
	}

	for x := LeftMargin; x+TraitSize+TraitSpacing <= l.Width; x += TraitSize + TraitSpacing {
		l.Traits = append(l.Traits, square(x, TraitY, TraitSize))
	}
	return l
}

func square(x, y, size int) image.Rectangle {
	return image.Rect(x, y, x+size, y+size)
}

// floorDiv divides rounding toward negative infinity, so a row of items wider
// than its column shifts left by the full odd pixel.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
