// Command recap renders the recap image of a participant or match JSON file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/youruser/recapapp/internal/config"
	imagepkg "github.com/youruser/recapapp/internal/image"
	"github.com/youruser/recapapp/internal/match"
	"github.com/youruser/recapapp/internal/util"
	"github.com/youruser/recapapp/pkg/logger"
	"github.com/youruser/recapapp/pkg/metrics"
)

func main() {
	in := flag.String("in", "", "participant or match JSON file")
	out := flag.String("out", "recap.png", "output PNG file")
	puuid := flag.String("puuid", "", "player to render when -in holds a whole match")
	version := flag.String("version", "", "asset version (defaults to the configured one)")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := start(*in, *out, *puuid, *version); err != nil {
		fmt.Fprintln(os.Stderr, "recap:", err)
		os.Exit(1)
	}
}

// start sets up the process and renders the file at in.
func start(in, out, puuid, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := logger.Init(); err != nil {
		return err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()
	return run(ctx, cfg, logger.Get(), f, out, puuid, version)
}

// run decodes a participant (or, with puuid set, a whole match) from in,
// renders it and writes the PNG to out.
func run(ctx context.Context, cfg *config.Config, log logger.Logger, in io.Reader, out, puuid, version string) error {
	if version == "" {
		version = cfg.AssetVersion
	}
	renderer, err := imagepkg.NewRendererFromConfig(cfg, log, metrics.Default())
	if err != nil {
		return err
	}

	dec := json.NewDecoder(in)
	var png []byte
	if puuid != "" {
		var m match.Match
		if err := dec.Decode(&m); err != nil {
			return fmt.Errorf("%w: %w", match.ErrInvalidPayload, err)
		}
		png, err = renderer.RenderMatch(ctx, &m, puuid, version)
	} else {
		var p match.Participant
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("%w: %w", match.ErrInvalidPayload, err)
		}
		png, err = renderer.Render(ctx, &p, version)
	}
	if err != nil {
		return err
	}
	if err := util.WriteFile(out, png); err != nil {
		return err
	}
	log.Info(ctx, "recap written", logger.String("path", out), logger.Int("bytes", len(png)))
	return nil
}
