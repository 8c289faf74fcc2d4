package match

import (
	"strconv"
	"strings"
)

// Caption renders the one-line text the bot posts next to the recap image,
// e.g. "1st place · level 9 · 8 units · Bastion 4, Sniper 2".
func Caption(p *Participant) string {
	if p == nil {
		return ""
	}
	parts := []string{
		Ordinal(p.Placement) + " place",
		"level " + strconv.Itoa(p.Level),
		strconv.Itoa(len(p.Units)) + " units",
	}
	active := ActiveTraits(p.Traits)
	if len(active) > 0 {
		names := make([]string, 0, len(active))
		for _, t := range active {
			names = append(names, DisplayName(t.Name)+" "+strconv.Itoa(t.NumUnits))
		}
		parts = append(parts, strings.Join(names, ", "))
	}
	return strings.Join(parts, " · ")
}

// DisplayName drops the set token of an id: "TFT15_Bastion" -> "Bastion".
func DisplayName(id string) string {
	if i := strings.IndexByte(id, '_'); i >= 0 && strings.HasPrefix(strings.ToUpper(id), "TFT") {
		return id[i+1:]
	}
	return id
}

// Ordinal formats n as 1st, 2nd, 3rd, 4th, ...
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
