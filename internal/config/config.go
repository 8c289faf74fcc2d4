// Package config defines the service configuration and its loading.
package config

import (
	"fmt"
	"time"
)

// Default asset endpoints. {version}, {set}, {name} and {file} are substituted
// by the asset resolver.
const (
	DefaultChampionURL      = "https://raw.communitydragon.org/latest/plugins/rcp-be-lol-game-data/global/default/assets/characters/tft{set}_{name}/skins/base/images/tft{set}_{name}_mobile.tft_set{set}.png"
	DefaultItemURL          = "https://ddragon.leagueoflegends.com/cdn/{version}/img/tft-item/{file}"
	DefaultTraitURL         = "https://ddragon.leagueoflegends.com/cdn/{version}/img/tft-trait/{file}"
	DefaultTacticianDataURL = "https://ddragon.leagueoflegends.com/cdn/{version}/data/en_US/tft-tactician.json"
	DefaultTacticianIconURL = "https://ddragon.leagueoflegends.com/cdn/{version}/img/tft-tactician/{file}"
	DefaultMatchURL         = "https://lolchess.gg/match/{id}"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AssetVersion is the default game asset version used when a request omits one.
	AssetVersion string `koanf:"asset_version"`

	// SetNumber is the game set whose id prefix (TFT<n>_) is stripped from champion ids.
	SetNumber int `koanf:"set_number"`

	// FetchTimeoutMS bounds every single asset fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// FetchConcurrency caps in-flight asset fetches per render.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// CacheSize is the number of decoded bitmaps kept in memory; 0 disables the cache.
	CacheSize int `koanf:"cache_size"`

	// DataDir optionally holds champion_overrides.csv / traits.csv replacing the
	// embedded tables.
	DataDir string `koanf:"data_dir"`

	ChampionURL      string `koanf:"champion_url"`
	ItemURL          string `koanf:"item_url"`
	TraitURL         string `koanf:"trait_url"`
	TacticianDataURL string `koanf:"tactician_data_url"`
	TacticianIconURL string `koanf:"tactician_icon_url"`

	// MatchURL is the match page template encoded into share QR codes.
	MatchURL string `koanf:"match_url"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		AssetVersion:     "15.13.1",
		SetNumber:        15,
		FetchTimeoutMS:   15_000,
		FetchConcurrency: 16,
		CacheSize:        512,
		ChampionURL:      DefaultChampionURL,
		ItemURL:          DefaultItemURL,
		TraitURL:         DefaultTraitURL,
		TacticianDataURL: DefaultTacticianDataURL,
		TacticianIconURL: DefaultTacticianIconURL,
		MatchURL:         DefaultMatchURL,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SetNumber <= 0:
		return fmt.Errorf("%w: set_number must be positive", ErrInvalidConfig)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.FetchConcurrency <= 0:
		return fmt.Errorf("%w: fetch_concurrency must be positive", ErrInvalidConfig)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	case c.AssetVersion == "":
		return fmt.Errorf("%w: asset_version must not be empty", ErrInvalidConfig)
	}
	return nil
}
