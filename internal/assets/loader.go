package assets

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

//go:embed data/*.csv
var embedded embed.FS

// Table file names, both in the embedded data and in an override directory.
const (
	ChampionOverridesFile = "champion_overrides.csv"
	TraitsFile            = "traits.csv"
)

// Tables holds the static lookup data of the resolver. It is built once at
// startup and never mutated afterwards.
type Tables struct {
	// championOverrides maps a lower-cased, prefix-stripped champion id to its
	// canonical spelling.
	championOverrides map[string]string
	// traitIcons maps a trait id to its icon file name.
	traitIcons map[string]string
}

// NewTables builds tables from in-memory maps. Champion keys are lower-cased.
func NewTables(championOverrides, traitIcons map[string]string) *Tables {
	t := &Tables{
		championOverrides: make(map[string]string, len(championOverrides)),
		traitIcons:        make(map[string]string, len(traitIcons)),
	}
	for k, v := range championOverrides {
		t.championOverrides[strings.ToLower(k)] = v
	}
	for k, v := range traitIcons {
		t.traitIcons[k] = v
	}
	return t
}

// DefaultTables loads the tables shipped with the binary.
func DefaultTables() (*Tables, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadTables(sub)
}

// LoadTablesFromDir loads the tables from dataDir, falling back to the embedded
// copy for any file the directory does not provide.
func LoadTablesFromDir(dataDir string) (*Tables, error) {
	if dataDir == "" {
		return DefaultTables()
	}
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadTables(overlayFS{dir: os.DirFS(dataDir), base: sub})
}

// LoadTables reads both CSV tables from fsys.
func LoadTables(fsys fs.FS) (*Tables, error) {
	champs, err := loadPairs(fsys, ChampionOverridesFile, "id", "name")
	if err != nil {
		return nil, err
	}
	traits, err := loadPairs(fsys, TraitsFile, "trait_id", "icon")
	if err != nil {
		return nil, err
	}
	return NewTables(champs, traits), nil
}

// loadPairs reads a two-column keyed CSV. Columns are located by header name so
// extra columns are tolerated.
func loadPairs(fsys fs.FS, name, keyCol, valCol string) (map[string]string, error) {
	fp, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv %s has no header", name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	ki, ok := cols[keyCol]
	if !ok {
		return nil, fmt.Errorf("csv %s: missing column %q", name, keyCol)
	}
	vi, ok := cols[valCol]
	if !ok {
		return nil, fmt.Errorf("csv %s: missing column %q", name, valCol)
	}

	out := map[string]string{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
		if ki >= len(row) || vi >= len(row) {
			continue
		}
		k, v := strings.TrimSpace(row[ki]), strings.TrimSpace(row[vi])
		if k == "" || v == "" || strings.HasPrefix(k, "#") {
			continue
		}
		out[k] = v
	}
	return out, nil
}

// overlayFS serves files from dir when present and from base otherwise.
type overlayFS struct {
	dir  fs.FS
	base fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.dir.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return o.base.Open(name)
	}
	return f, err
}
