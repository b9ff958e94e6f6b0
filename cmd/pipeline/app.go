package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/playlist-digest/internal/catalog"
	"github.com/nguyentantai21042004/playlist-digest/internal/chunker"
	"github.com/nguyentantai21042004/playlist-digest/internal/config"
	"github.com/nguyentantai21042004/playlist-digest/internal/history"
	"github.com/nguyentantai21042004/playlist-digest/internal/llm"
	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
	"github.com/nguyentantai21042004/playlist-digest/internal/summarizer"
	"github.com/nguyentantai21042004/playlist-digest/internal/youtube"
)

// app holds what every subcommand shares: flags, config and logger.
type app struct {
	configPath string
	envFile    string
	logLevel   string

	cfg *config.Config
	log logger.Logger
}

func (a *app) setup(ctx context.Context) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", a.envFile, err)
		}
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		if !logger.ValidLevel(a.logLevel) {
			return fmt.Errorf("unknown log level %q", a.logLevel)
		}
		cfg.Logging.Level = a.logLevel
	}

	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level)
	a.log.Debug(ctx, "Configuration loaded (model %s, chunk %d/%d)",
		cfg.Gemini.Model, cfg.Summary.ChunkSize, *cfg.Summary.ChunkOverlap)
	return nil
}

// export lists the playlist and writes the catalog.
func (a *app) export(ctx context.Context) error {
	if err := a.cfg.RequireYouTube(); err != nil {
		return err
	}

	api, err := youtube.NewDataAPI(ctx, a.cfg.YouTube.APIKey, a.cfg.YouTube.RequestsPerSecond, a.log)
	if err != nil {
		return err
	}

	items, err := youtube.NewExporter(api, a.log).Export(ctx, a.cfg.YouTube.PlaylistID)
	if err != nil {
		return err
	}

	if err := catalog.Write(a.cfg.Paths.Catalog, items); err != nil {
		return err
	}
	a.log.Info(ctx, "[OK] Catalog saved: %s (%d items)", a.cfg.Paths.Catalog, len(items))
	return nil
}

// fetch downloads a transcript for every catalog row.
func (a *app) fetch(ctx context.Context) error {
	items, err := catalog.Read(a.cfg.Paths.Catalog)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s not found, run export first", a.cfg.Paths.Catalog)
	}
	if err != nil {
		return err
	}

	client := youtube.NewTimedtextClient(youtube.DefaultTimedtextURL, a.cfg.YouTube.RequestsPerSecond)
	fetcher := youtube.NewFetcher(client, a.cfg.YouTube.TranscriptLang, a.log)

	_, err = fetcher.FetchAll(ctx, items, a.cfg.Paths.Subtitles)
	return err
}

// newSummarizer wires the Gemini generator, retry policy, chunker and the
// optional history store. cleanup releases the store.
func (a *app) newSummarizer(ctx context.Context) (s summarizer.Summarizer, cleanup func(), err error) {
	if err := a.cfg.RequireGemini(); err != nil {
		return nil, nil, err
	}

	gen, err := llm.NewGemini(ctx, a.cfg.Gemini.APIKeys, a.cfg.Gemini.Model, a.log)
	if err != nil {
		return nil, nil, err
	}
	gen = llm.NewRetrying(gen, a.cfg.Summary.Retry, a.cfg.Summary.RetryBaseDelay, a.log)

	chk, err := chunker.New(a.cfg.Summary.ChunkSize, *a.cfg.Summary.ChunkOverlap)
	if err != nil {
		return nil, nil, err
	}

	opts := []summarizer.Option{
		summarizer.WithThrottle(a.cfg.Summary.ThrottleDelay),
		summarizer.WithDocx(a.cfg.Summary.Docx),
	}

	cleanup = func() {}
	if a.cfg.Paths.History != "" {
		store, err := history.Open(a.cfg.Paths.History)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, summarizer.WithRecorder(store))
		cleanup = func() { store.Close() }
	}

	return summarizer.New(gen, chk, a.log, opts...), cleanup, nil
}

// summarize runs the batch over src and writes reports into dest.
func (a *app) summarize(ctx context.Context, src, dest string) error {
	s, closeStore, err := a.newSummarizer(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	_, err = s.SummarizeAll(ctx, src, dest)
	return err
}
