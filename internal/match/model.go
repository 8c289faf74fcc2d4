// Package match models the match-result payload consumed by the recap renderer.
//
// Field names follow the match-v1 JSON document so a payload fetched by the bot can
// be decoded directly.
package match

import "strconv"

// Match is one finished match as delivered by the match API.
type Match struct {
	Metadata Metadata `json:"metadata"`
	Info     Info     `json:"info"`
}

type Metadata struct {
	MatchID string `json:"match_id"`
}

type Info struct {
	GameVersion  string        `json:"game_version,omitempty"`
	Participants []Participant `json:"participants"`
}

// Participant is one player's final board.
type Participant struct {
	PUUID     string    `json:"puuid"`
	Placement int       `json:"placement"`
	Level     int       `json:"level"`
	Companion Companion `json:"companion"`
	Units     []Unit    `json:"units"`
	Traits    []Trait   `json:"traits"`
}

// Companion identifies the player's tactician cosmetic.
type Companion struct {
	ItemID    int    `json:"item_ID"`
	ContentID string `json:"content_ID,omitempty"`
	SkinID    int    `json:"skin_ID,omitempty"`
	Species   string `json:"species,omitempty"`
	// Icon, when set, is an icon file name used as is.
	Icon string `json:"icon,omitempty"`
}

// IconRef returns the reference the asset layer resolves into an icon locator:
// the explicit icon file name if present, else the item id. Empty means unknown.
func (c Companion) IconRef() string {
	if c.Icon != "" {
		return c.Icon
	}
	if c.ItemID > 0 {
		return strconv.Itoa(c.ItemID)
	}
	return ""
}

type Unit struct {
	CharacterID string   `json:"character_id"`
	Tier        int      `json:"tier"`
	Rarity      int      `json:"rarity"`
	ItemNames   []string `json:"itemNames"`
}

type Trait struct {
	Name        string `json:"name"`
	Style       int    `json:"style"`
	TierCurrent int    `json:"tier_current"`
	NumUnits    int    `json:"num_units"`
}
