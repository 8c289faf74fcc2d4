package assets

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TacticianIndex maps tactician item ids to icon file names, as published in
// the versioned tft-tactician.json document.
type TacticianIndex map[string]string

type tacticianDoc struct {
	Data map[string]struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Image struct {
			Full string `json:"full"`
		} `json:"image"`
	} `json:"data"`
}

// ParseTacticianIndex decodes a tactician document.
func ParseTacticianIndex(r io.Reader) (TacticianIndex, error) {
	var doc tacticianDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode tactician data: %w", err)
	}
	idx := make(TacticianIndex, len(doc.Data))
	for key, entry := range doc.Data {
		if entry.Image.Full == "" {
			continue
		}
		idx[key] = entry.Image.Full
	}
	return idx, nil
}

// IsIconFile reports whether a companion reference already names an icon file
// and needs no index lookup.
func IsIconFile(ref string) bool {
	return strings.HasSuffix(strings.ToLower(ref), ".png")
}
