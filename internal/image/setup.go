package imagepkg

import (
	"fmt"

	"github.com/youruser/recapapp/internal/assets"
	"github.com/youruser/recapapp/internal/config"
	"github.com/youruser/recapapp/internal/util"
	"github.com/youruser/recapapp/pkg/logger"
	"github.com/youruser/recapapp/pkg/metrics"
)

// NewRendererFromConfig wires tables, resolver, fetcher and cache as cfg
// describes.
func NewRendererFromConfig(cfg *config.Config, log logger.Logger, m *metrics.Manager) (*Renderer, error) {
	tables, err := assets.LoadTablesFromDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load asset tables: %w", err)
	}
	resolver := assets.NewResolver(tables, assets.Templates{
		Champion:      cfg.ChampionURL,
		Item:          cfg.ItemURL,
		Trait:         cfg.TraitURL,
		TacticianData: cfg.TacticianDataURL,
		TacticianIcon: cfg.TacticianIconURL,
	}, cfg.SetNumber)

	fetcher := NewFetcher(
		WithHTTPClient(util.NewClient(cfg.FetchTimeout(), cfg.FetchConcurrency)),
		WithFetchTimeout(cfg.FetchTimeout()),
		WithCache(NewBitmapCache(cfg.CacheSize)),
		WithFetcherLogger(log.Named("fetcher")),
		WithFetcherMetrics(m),
	)
	return NewRenderer(resolver, fetcher,
		WithConcurrency(cfg.FetchConcurrency),
		WithLogger(log.Named("renderer")),
		WithMetrics(m),
	), nil
}
