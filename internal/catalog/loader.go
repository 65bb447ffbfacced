package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"biblioteca/internal"
	"biblioteca/internal/config"
	"biblioteca/internal/logger"
	"biblioteca/internal/pipeline"
)

// Loader builds catalogs from configured sources.
type Loader struct {
	cfg   config.Config
	log   *logger.Logger
	files Fetcher
	web   Fetcher
	opts  pipeline.Options
}

func NewLoader(cfg config.Config, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	l := &Loader{cfg: cfg, log: log, files: FileFetcher{}, web: NewClient(cfg)}

	// config.Load rejects unknown strategies; a hand-built Config with a bad
	// list falls back to the defaults.
	strategies, err := pipeline.ParseHeaderStrategies(cfg.HeaderStrategies)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring header strategies")
		strategies = nil
	}
	l.opts = pipeline.Options{
		DelimiterSample: cfg.DelimiterSample,
		Header: pipeline.HeaderOptions{
			ScanRows:   cfg.HeaderScanRows,
			Strategies: strategies,
		},
	}
	return l
}

// Load fetches and ingests every source concurrently and merges the results
// in source order. A failing source contributes no records and a failed
// status; it never aborts the others. The returned error is only set for an
// invalid source list.
func (l *Loader) Load(ctx context.Context, sources []config.Source) (*Catalog, error) {
	if err := config.ValidateSources(sources); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	start := time.Now()
	statuses := make([]SourceStatus, len(sources))
	records := make([][]internal.Record, len(sources))

	var g errgroup.Group
	if l.cfg.MaxParallel > 0 {
		g.SetLimit(l.cfg.MaxParallel)
	}
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			statuses[i], records[i] = l.loadSource(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	cat := newCatalog(runID, statuses, records)
	l.log.Info().
		Str("run_id", runID).
		Int("sources", len(sources)).
		Int("failed", len(cat.Failed())).
		Int("records", len(cat.Records)).
		Dur("took", time.Since(start)).
		Msg("catalog loaded")
	return cat, nil
}

func (l *Loader) loadSource(ctx context.Context, src config.Source) (SourceStatus, []internal.Record) {
	start := time.Now()
	if l.cfg.SourceTimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(l.cfg.SourceTimeoutMs)*time.Millisecond)
		defer cancel()
	}

	status := SourceStatus{Category: src.Category, Label: src.DisplayLabel()}
	log := l.log.With().Str("category", src.Category).Logger()

	res, err := l.resolve(ctx, src)
	status.Attempts = res.attempts
	status.Duration = time.Since(start)
	if err != nil {
		status.Err = err
		status.Error = err.Error()
		log.Warn().Err(err).Msg("source failed")
		return status, []internal.Record{}
	}

	in := res.ingested
	status.OK = true
	status.Location = res.location
	status.Format = res.format
	if in.Delimiter != 0 {
		status.Delimiter = string(in.Delimiter)
	}
	status.HeaderRow = in.HeaderRow
	status.HeaderStrategy = string(in.HeaderStrategy)
	status.Headers = in.Headers
	status.RecordCount = len(in.Records)
	status.Diagnostics = in.Diagnostics

	log.Debug().Strs("headers", in.Headers).Msg("headers detected")
	for _, d := range in.Diagnostics {
		log.Warn().Str("code", string(d.Code)).Msg(d.Message)
	}
	log.Info().
		Str("location", res.location).
		Str("format", string(res.format)).
		Str("delimiter", status.Delimiter).
		Int("header_row", in.HeaderRow).
		Int("records", len(in.Records)).
		Msg("source loaded")
	return status, in.Records
}
