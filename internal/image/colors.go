package imagepkg

import (
	"fmt"
	"image/color"
)

// Palette of the recap image. Values mirror the in-game color coding.
var (
	Background   = mustHex("#36393F")
	FallbackFill = mustHex("#2F3136")
	StarBar      = mustHex("#607D8B")
	StarFill     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	White        = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black        = color.NRGBA{A: 0xff}
	NeutralGray  = mustHex("#808080")
	UnknownTrait = mustHex("#5F5F5F")
)

// placementColors maps a final placement to its badge color.
var placementColors = map[int]color.NRGBA{
	1: mustHex("#FFD700"),
	2: mustHex("#C440DA"),
	3: mustHex("#207AC7"),
	4: mustHex("#00FF00"),
	5: NeutralGray,
	6: NeutralGray,
	7: NeutralGray,
	8: NeutralGray,
}

// rarityColors maps a unit rarity tier to its portrait border color.
var rarityColors = map[int]color.NRGBA{
	0: mustHex("#808080"),
	1: mustHex("#11B288"),
	2: mustHex("#207AC7"),
	3: mustHex("#C440DA"),
	4: mustHex("#FFB93B"),
	6: mustHex("#FF8C00"),
}

// traitColors maps a trait style to its badge background.
var traitColors = map[int]color.NRGBA{
	0: mustHex("#5F5F5F"),
	1: mustHex("#BF8F3F"),
	2: mustHex("#7E7E7E"),
	3: mustHex("#FFD700"),
	4: mustHex("#FF4DE1"),
}

// PlacementColor returns the badge color of a placement; anything outside 1-8
// is neutral gray.
func PlacementColor(placement int) color.NRGBA {
	if c, ok := placementColors[placement]; ok {
		return c
	}
	return NeutralGray
}

// PlacementFill is the badge background: every channel of the placement color
// halved, rounding down.
func PlacementFill(placement int) color.NRGBA {
	return Halve(PlacementColor(placement))
}

// RarityColor returns the border color of a rarity tier; unknown tiers are white.
func RarityColor(rarity int) color.NRGBA {
	if c, ok := rarityColors[rarity]; ok {
		return c
	}
	return White
}

// TraitColor returns the background of a trait style.
func TraitColor(style int) color.NRGBA {
	if c, ok := traitColors[style]; ok {
		return c
	}
	return UnknownTrait
}

// Halve divides the color channels by two. Alpha is kept.
func Halve(c color.NRGBA) color.NRGBA {
	return color.NRGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA".
func ParseHex(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("invalid hex color %q", s)
	}
	return c, err
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
