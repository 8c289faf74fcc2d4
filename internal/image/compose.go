package imagepkg

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/youruser/recapapp/internal/match"
)

// ErrEncode wraps a failure to serialize the finished canvas.
var ErrEncode = errors.New("encode recap image")

// Assets are the bitmaps gathered for one render. A nil image means the asset
// was unavailable and its fallback visual is drawn instead.
type Assets struct {
	Companion image.Image
	// Portraits has one entry per unit, in board order.
	Portraits []image.Image
	// Items has one slice per unit, one entry per item id.
	Items [][]image.Image
	// Traits are the drawable traits in display order.
	Traits []TraitAsset
}

// TraitAsset is an active trait with a known icon.
type TraitAsset struct {
	Trait match.Trait
	Icon  image.Image
}

// Stage is a step of the composition pipeline. Stages only move forward.
type Stage int

const (
	StageInit Stage = iota
	StagePlacementDrawn
	StageIconDrawn
	StageUnitsDrawn
	StageTraitsDrawn
	StageSerialized
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StagePlacementDrawn:
		return "placement"
	case StageIconDrawn:
		return "icon"
	case StageUnitsDrawn:
		return "units"
	case StageTraitsDrawn:
		return "traits"
	case StageSerialized:
		return "serialized"
	default:
		return "unknown"
	}
}

// composer paints one participant onto its own canvas.
type composer struct {
	p      *match.Participant
	layout Layout
	assets Assets
	canvas *Canvas
	stage  Stage
}

// Compose draws the recap of p from already gathered assets. It does no I/O
// and its output depends only on its arguments. p must have passed
// match.Validate.
func Compose(p *match.Participant, layout Layout, assets Assets) *Canvas {
	return compose(p, layout, assets).canvas
}

// ComposePNG composes the recap and encodes it as PNG. Nothing is returned
// unless every drawing stage completed.
func ComposePNG(p *match.Participant, layout Layout, assets Assets) ([]byte, error) {
	return compose(p, layout, assets).serialize()
}

func compose(p *match.Participant, layout Layout, assets Assets) *composer {
	c := &composer{
		p:      p,
		layout: layout,
		assets: assets,
		canvas: NewCanvas(layout.Width, layout.Height, Background),
	}
	c.drawPlacement()
	c.drawCompanion()
	c.drawUnits()
	c.drawTraits()
	return c
}

func (c *composer) serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, c.canvas.img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	c.advance(StageSerialized)
	return buf.Bytes(), nil
}

func (c *composer) advance(to Stage) {
	if to != c.stage+1 {
		panic("imagepkg: stage " + to.String() + " after " + c.stage.String())
	}
	c.stage = to
}

func (c *composer) drawPlacement() {
	border := PlacementColor(c.p.Placement)
	DrawBorderedRect(c.canvas, c.layout.Badge, border, PlacementFill(c.p.Placement), BadgeBorder)
	DrawNumber(c.canvas, c.p.Placement, c.layout.PlacementDigit, PlacementDigitSize, border)
	c.advance(StagePlacementDrawn)
}

func (c *composer) drawCompanion() {
	icon := c.layout.Icon
	if c.assets.Companion != nil {
		c.canvas.Overlay(CircularMask(c.assets.Companion, icon.Dx()), icon.Min)
	} else {
		DrawDisc(c.canvas, icon, FallbackFill)
	}
	DrawDisc(c.canvas, c.layout.LevelBadge, FallbackFill)
	DrawRing(c.canvas, c.layout.LevelBadge, 1, White)
	DrawNumber(c.canvas, c.p.Level, c.layout.LevelDigit, LevelDigitSize, White)
	c.advance(StageIconDrawn)
}

func (c *composer) drawUnits() {
	for i, u := range c.p.Units {
		slot := c.layout.Units[i]
		if u.Tier > 0 {
			DrawStarBadge(c.canvas, slot.Stars, u.Tier)
		}
		DrawBorderedRect(c.canvas, slot.Border, RarityColor(u.Rarity), nil, RarityBorder)
		// The slot is filled first so transparent portrait pixels stay opaque.
		c.canvas.FillRect(slot.Portrait, FallbackFill)
		if portrait := at(c.assets.Portraits, i); portrait != nil {
			c.canvas.Overlay(Resize(portrait, PortraitSize, PortraitSize), slot.Portrait.Min)
		}
		var items []image.Image
		if i < len(c.assets.Items) {
			items = c.assets.Items[i]
		}
		for j, rect := range slot.Items {
			if icon := at(items, j); icon != nil {
				c.canvas.Overlay(Resize(icon, ItemSize, ItemSize), rect.Min)
			} else {
				c.canvas.FillRect(rect, FallbackFill)
			}
		}
	}
	c.advance(StageUnitsDrawn)
}

func (c *composer) drawTraits() {
	for i, t := range c.assets.Traits {
		if i >= len(c.layout.Traits) {
			break
		}
		box := c.layout.Traits[i]
		c.canvas.FillRect(box, TraitColor(t.Trait.Style))
		if t.Icon != nil {
			c.canvas.Overlay(Resize(t.Icon, TraitSize, TraitSize), box.Min)
		}
		DrawCornerLabel(c.canvas, box, t.Trait.NumUnits, Black)
	}
	c.advance(StageTraitsDrawn)
}

func at(imgs []image.Image, i int) image.Image {
	if i < 0 || i >= len(imgs) {
		return nil
	}
	return imgs[i]
}
