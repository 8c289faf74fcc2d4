package match

import "fmt"

// Placement bounds of an eight-player lobby.
const (
	MinPlacement = 1
	MaxPlacement = 8

	// MaxUnits bounds the board size, and with it the canvas width.
	MaxUnits = 13
)

// Validate checks the preconditions of a render. A nil participant, an empty
// or oversized board, or placement/level outside their ranges yield a *ValidationError.
func Validate(p *Participant) error {
	if p == nil {
		return &ValidationError{Field: "participant", Reason: "missing"}
	}
	if p.Placement < MinPlacement || p.Placement > MaxPlacement {
		return &ValidationError{Field: "placement", Reason: fmt.Sprintf("%d not in [%d,%d]", p.Placement, MinPlacement, MaxPlacement)}
	}
	if p.Level < 1 {
		return &ValidationError{Field: "level", Reason: fmt.Sprintf("%d below 1", p.Level)}
	}
	if len(p.Units) == 0 {
		return &ValidationError{Field: "units", Reason: "empty"}
	}
	if len(p.Units) > MaxUnits {
		return &ValidationError{Field: "units", Reason: fmt.Sprintf("more than %d", MaxUnits)}
	}
	for i, u := range p.Units {
		if u.CharacterID == "" {
			return &ValidationError{Field: fmt.Sprintf("units[%d].character_id", i), Reason: "empty"}
		}
		if u.Tier < 0 {
			return &ValidationError{Field: fmt.Sprintf("units[%d].tier", i), Reason: "negative"}
		}
	}
	for i, t := range p.Traits {
		if t.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("traits[%d].name", i), Reason: "empty"}
		}
	}
	return nil
}

// Participant returns the participant with the given puuid.
func (m *Match) Participant(puuid string) (*Participant, error) {
	if m == nil || puuid == "" {
		return nil, ErrPlayerNotInMatch
	}
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			return &m.Info.Participants[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotInMatch, puuid)
}
