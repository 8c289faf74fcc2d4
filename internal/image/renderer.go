package imagepkg

import (
	"bytes"
	"context"
	"image"
	"sync"
	"time"

	"github.com/youruser/recapapp/internal/assets"
	"github.com/youruser/recapapp/internal/match"
	"github.com/youruser/recapapp/pkg/logger"
	"github.com/youruser/recapapp/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps in-flight fetches of one render.
const DefaultConcurrency = 16

// Renderer turns a participant into a recap PNG. It gathers every asset
// concurrently, then draws single-threaded on a canvas private to the call.
// A Renderer is safe for concurrent use; renders share only the fetcher (and
// its connection pool and cache) and the tactician index cache.
type Renderer struct {
	resolver    *assets.Resolver
	fetcher     *Fetcher
	concurrency int
	log         logger.Logger
	metrics     *metrics.Manager

	mu         sync.Mutex
	tacticians map[string]assets.TacticianIndex
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConcurrency caps in-flight fetches per render.
func WithConcurrency(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(r *Renderer) {
		if m != nil {
			r.metrics = m
		}
	}
}

// NewRenderer creates a renderer.
func NewRenderer(resolver *assets.Resolver, fetcher *Fetcher, opts ...Option) *Renderer {
	r := &Renderer{
		resolver:    resolver,
		fetcher:     fetcher,
		concurrency: DefaultConcurrency,
		log:         logger.Nop(),
		metrics:     metrics.Default(),
		tacticians:  map[string]assets.TacticianIndex{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderMatch renders the recap of the participant identified by puuid.
// match.ErrPlayerNotInMatch is returned before any I/O when puuid is absent.
func (r *Renderer) RenderMatch(ctx context.Context, m *match.Match, puuid, version string) ([]byte, error) {
	p, err := m.Participant(puuid)
	if err != nil {
		r.metrics.RecordRender(metrics.OutcomeInvalid, 0)
		return nil, err
	}
	return r.Render(ctx, p, version)
}

// Render renders the recap of p using assets of the given game version.
// Invalid payloads fail with match.ErrInvalidPayload before any allocation or
// I/O. Unavailable assets never fail a render. If ctx ends before drawing
// starts, ctx.Err() is returned and nothing is drawn.
func (r *Renderer) Render(ctx context.Context, p *match.Participant, version string) ([]byte, error) {
	start := time.Now()
	if err := match.Validate(p); err != nil {
		r.metrics.RecordRender(metrics.OutcomeInvalid, 0)
		return nil, err
	}
	if version == "" {
		r.metrics.RecordRender(metrics.OutcomeInvalid, 0)
		return nil, &match.ValidationError{Field: "asset_version", Reason: "empty"}
	}

	layout := ComputeLayout(p)
	gathered := r.gather(ctx, p, layout, version)
	if err := ctx.Err(); err != nil {
		r.metrics.RecordRender(metrics.OutcomeCanceled, 0)
		return nil, err
	}

	out, err := ComposePNG(p, layout, gathered)
	if err != nil {
		r.metrics.RecordRender(metrics.OutcomeError, 0)
		r.log.Error(ctx, "recap encode failed", logger.Error(err))
		return nil, err
	}
	elapsed := time.Since(start)
	r.metrics.RecordRender(metrics.OutcomeOK, elapsed.Seconds())
	r.log.Debug(ctx, "recap rendered",
		logger.Int("units", len(p.Units)),
		logger.Int("width", layout.Width),
		logger.Int("bytes", len(out)),
		logger.String("elapsed", elapsed.String()),
	)
	return out, nil
}

// fetchJob is one distinct URL of a render. Every job owns its result slot,
// so workers never write to shared memory.
type fetchJob struct {
	kind AssetKind
	url  string
	img  image.Image
}

type fetchPlan struct {
	jobs  []fetchJob
	index map[string]int
}

// add registers url and returns its job index; -1 for an empty url.
func (fp *fetchPlan) add(kind AssetKind, url string) int {
	if url == "" {
		return -1
	}
	if i, ok := fp.index[url]; ok {
		return i
	}
	fp.jobs = append(fp.jobs, fetchJob{kind: kind, url: url})
	fp.index[url] = len(fp.jobs) - 1
	return len(fp.jobs) - 1
}

func (fp *fetchPlan) result(i int) image.Image {
	if i < 0 {
		return nil
	}
	return fp.jobs[i].img
}

// gather resolves and fetches every asset of p. Fetches run concurrently,
// bounded by the renderer's concurrency; the call returns once all scheduled
// fetches finished or were abandoned because ctx ended.
func (r *Renderer) gather(ctx context.Context, p *match.Participant, layout Layout, version string) Assets {
	fp := &fetchPlan{index: map[string]int{}}

	portraits := make([]int, len(p.Units))
	items := make([][]int, len(p.Units))
	for i, u := range p.Units {
		portraits[i] = fp.add(KindChampion, r.resolver.ChampionURL(version, u.CharacterID))
		items[i] = make([]int, len(u.ItemNames))
		for j, name := range u.ItemNames {
			items[i][j] = fp.add(KindItem, r.resolver.ItemURL(version, name))
		}
	}

	var traits []match.Trait
	var traitJobs []int
	for _, t := range match.ActiveTraits(p.Traits) {
		if len(traits) == len(layout.Traits) {
			break
		}
		url, ok := r.resolver.TraitURL(version, t.Name)
		if !ok {
			continue
		}
		traits = append(traits, t)
		traitJobs = append(traitJobs, fp.add(KindTrait, url))
	}

	// Jobs never fail: an unavailable asset is a nil slot. The group only
	// bounds concurrency and stops scheduling once ctx ends.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	var companion image.Image
	g.Go(func() error {
		companion = r.fetchCompanion(gctx, version, p.Companion.IconRef())
		return nil
	})
	for i := range fp.jobs {
		if gctx.Err() != nil {
			break
		}
		job := &fp.jobs[i]
		g.Go(func() error {
			job.img, _ = r.fetcher.Fetch(gctx, job.kind, job.url)
			return nil
		})
	}
	_ = g.Wait()

	out := Assets{
		Companion: companion,
		Portraits: make([]image.Image, len(p.Units)),
		Items:     make([][]image.Image, len(p.Units)),
		Traits:    make([]TraitAsset, len(traits)),
	}
	for i := range p.Units {
		out.Portraits[i] = fp.result(portraits[i])
		out.Items[i] = make([]image.Image, len(items[i]))
		for j, k := range items[i] {
			out.Items[i][j] = fp.result(k)
		}
	}
	for i, t := range traits {
		out.Traits[i] = TraitAsset{Trait: t, Icon: fp.result(traitJobs[i])}
	}
	return out
}

// fetchCompanion resolves a companion reference to an icon and fetches it.
func (r *Renderer) fetchCompanion(ctx context.Context, version, ref string) image.Image {
	if ref == "" {
		return nil
	}
	file := ref
	if !assets.IsIconFile(ref) {
		var ok bool
		file, ok = r.tacticianIndex(ctx, version)[ref]
		if !ok {
			r.log.Warn(ctx, "unknown tactician", logger.String("item_id", ref), logger.String("version", version))
			return nil
		}
	}
	img, _ := r.fetcher.Fetch(ctx, KindCompanion, r.resolver.TacticianIconURL(version, file))
	return img
}

// tacticianIndex returns the tactician index of version, fetching it on first
// use. Failed fetches are not cached.
func (r *Renderer) tacticianIndex(ctx context.Context, version string) assets.TacticianIndex {
	r.mu.Lock()
	idx, ok := r.tacticians[version]
	r.mu.Unlock()
	if ok {
		return idx
	}

	url := r.resolver.TacticianDataURL(version)
	start := time.Now()
	body, err := r.fetcher.FetchBytes(ctx, url)
	if err == nil {
		idx, err = assets.ParseTacticianIndex(bytes.NewReader(body))
	}
	r.metrics.RecordAssetFetch(string(KindData), err == nil, time.Since(start).Seconds())
	if err != nil {
		r.log.Warn(ctx, "tactician data unavailable", logger.String("url", url), logger.Error(err))
		return nil
	}

	r.mu.Lock()
	r.tacticians[version] = idx
	r.mu.Unlock()
	return idx
}
