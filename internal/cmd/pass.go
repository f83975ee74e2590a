package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jquagga/tr-log-analyzer/internal/aggregator"
	"github.com/jquagga/tr-log-analyzer/internal/chanlist"
	"github.com/jquagga/tr-log-analyzer/internal/materializer"
	"github.com/jquagga/tr-log-analyzer/internal/model"
	"github.com/jquagga/tr-log-analyzer/internal/parser"
	"github.com/jquagga/tr-log-analyzer/internal/reader"
)

// passConfig names the inputs of one parse pass.
type passConfig struct {
	Inputs   []string
	ChanList string
}

// runPass reads every input into one aggregator and materializes the result.
func runPass(cfg passConfig, log zerolog.Logger) ([]model.Row, aggregator.Stats, error) {
	paths, err := reader.Expand(cfg.Inputs)
	if err != nil {
		return nil, aggregator.Stats{}, err
	}
	if len(paths) == 0 {
		return nil, aggregator.Stats{}, fmt.Errorf("no log files matched %v", cfg.Inputs)
	}

	agg := aggregator.New(parser.New(), log.With().Str("component", "aggregator").Logger())
	for _, p := range paths {
		log.Debug().Str("path", p).Msg("reading log")
	}
	if err := reader.ReadAll(paths, agg.Ingest); err != nil {
		return nil, aggregator.Stats{}, err
	}
	stats := agg.Snapshot()

	rows := materializer.Materialize(agg.Finish(), loadNames(cfg.ChanList, log))

	log.Info().
		Int("files", len(paths)).
		Int64("lines", stats.LinesRead).
		Int64("matched", stats.Matched).
		Int64("dropped", stats.Dropped).
		Int("records", stats.Records).
		Interface("classes", stats.RecordClasses).
		Msg("parse pass complete")

	return rows, stats, nil
}

// loadNames returns nil when the side table cannot be read.
func loadNames(path string, log zerolog.Logger) chanlist.Lookup {
	if path == "" {
		return nil
	}
	table, err := chanlist.Load(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("talkgroup table unavailable, showing numeric talkgroups")
		return nil
	}
	log.Debug().Int("talkgroups", len(table)).Str("path", path).Msg("loaded talkgroup table")
	return table
}
