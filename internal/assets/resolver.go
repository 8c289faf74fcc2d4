// Package assets maps game identifiers (champions, traits, items, tacticians) to
// remote bitmap locators.
package assets

import (
	"strconv"
	"strings"
)

// Templates are the URL templates of the asset endpoints. Placeholders:
// {version} game asset version, {set} set number, {name} lower-cased locator,
// {Name} locator as resolved, {file} file name.
type Templates struct {
	Champion      string
	Item          string
	Trait         string
	TacticianData string
	TacticianIcon string
}

// Resolver turns ids into locators and locators into URLs. It is safe for
// concurrent use; all of its state is read-only.
type Resolver struct {
	tables    *Tables
	templates Templates
	setNumber int
	setPrefix string // lower-cased "tft15_"
}

// NewResolver creates a resolver for the given set.
func NewResolver(tables *Tables, templates Templates, setNumber int) *Resolver {
	if tables == nil {
		tables = NewTables(nil, nil)
	}
	return &Resolver{
		tables:    tables,
		templates: templates,
		setNumber: setNumber,
		setPrefix: "tft" + strconv.Itoa(setNumber) + "_",
	}
}

// ResolveChampion strips the set prefix from a character id and applies the
// case-insensitive override table. Unknown ids come back stripped but otherwise
// unchanged.
func (r *Resolver) ResolveChampion(characterID string) string {
	name := characterID
	if strings.HasPrefix(strings.ToLower(name), r.setPrefix) {
		name = name[len(r.setPrefix):]
	}
	if canonical, ok := r.tables.championOverrides[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// ResolveTrait returns the icon file of a trait. ok is false for traits without
// an icon; callers skip those.
func (r *Resolver) ResolveTrait(traitID string) (file string, ok bool) {
	file, ok = r.tables.traitIcons[traitID]
	return file, ok
}

// ResolveItem strips the decorative prefixes of an item id and returns the icon
// file name.
func (r *Resolver) ResolveItem(itemID string) string {
	id := strings.ReplaceAll(itemID, "TFT_Item_", "")
	id = strings.ReplaceAll(id, "Artifact_", "")
	return "TFT_Item_" + id + ".png"
}

// ChampionURL is the portrait URL of a character id.
func (r *Resolver) ChampionURL(version, characterID string) string {
	return r.expand(r.templates.Champion, version, r.ResolveChampion(characterID), "")
}

// ItemURL is the icon URL of an item id.
func (r *Resolver) ItemURL(version, itemID string) string {
	return r.expand(r.templates.Item, version, "", r.ResolveItem(itemID))
}

// TraitURL is the icon URL of a trait id; ok mirrors ResolveTrait.
func (r *Resolver) TraitURL(version, traitID string) (string, bool) {
	file, ok := r.ResolveTrait(traitID)
	if !ok {
		return "", false
	}
	return r.expand(r.templates.Trait, version, "", file), true
}

// TacticianDataURL is the URL of the tactician index document.
func (r *Resolver) TacticianDataURL(version string) string {
	return r.expand(r.templates.TacticianData, version, "", "")
}

// TacticianIconURL is the URL of a tactician icon file.
func (r *Resolver) TacticianIconURL(version, file string) string {
	return r.expand(r.templates.TacticianIcon, version, "", file)
}

func (r *Resolver) expand(tmpl, version, name, file string) string {
	return strings.NewReplacer(
		"{version}", version,
		"{set}", strconv.Itoa(r.setNumber),
		"{name}", strings.ToLower(name),
		"{Name}", name,
		"{file}", file,
	).Replace(tmpl)
}
