package aggregator

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jquagga/tr-log-analyzer/internal/model"
	"github.com/jquagga/tr-log-analyzer/internal/parser"
)

// Stats holds counters for one parse pass.
type Stats struct {
	LinesRead     int64            `json:"lines_read"`
	Matched       int64            `json:"matched"`
	Dropped       int64            `json:"dropped"`
	Records       int              `json:"records"`
	LineClasses   map[string]int64 `json:"line_classes"`
	RecordClasses map[string]int64 `json:"record_classes"`
}

// Aggregator groups classified lines into call records. It owns the
// index-to-record mapping for the lifetime of one pass and is not safe for
// concurrent use.
type Aggregator struct {
	parser   *parser.Parser
	log      zerolog.Logger
	records  map[model.CallIndex]*model.CallRecord
	finished bool

	linesRead   int64
	matched     int64
	dropped     int64
	lineClasses map[model.CallClass]int64
}

// New creates an Aggregator that parses lines with p.
func New(p *parser.Parser, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		parser:      p,
		log:         log,
		records:     make(map[model.CallIndex]*model.CallRecord),
		lineClasses: make(map[model.CallClass]int64),
	}
}

// Ingest parses one raw line and merges it. Non-call lines are skipped and
// lines with unparsable fields are dropped; neither affects other records.
func (a *Aggregator) Ingest(raw model.RawLine) {
	a.linesRead++

	ev, ok, err := a.parser.Parse(raw.Text)
	if !ok {
		return
	}
	if err != nil {
		a.dropped++
		a.log.Debug().
			Err(err).
			Str("source", raw.Source).
			Int("line", raw.Number).
			Msg("dropping line")
		return
	}

	a.matched++
	a.lineClasses[ev.Outcome.Class]++
	a.Merge(ev)
}

// Merge folds ev into the record sharing its index, creating the record if
// needed. Header fields are last-write-wins. A classified line replaces the
// outcome; an unclassified line leaves it alone. A standard outcome moves the
// call date back by the elapsed duration, since the line marks call end.
func (a *Aggregator) Merge(ev model.CallEvent) {
	if a.finished {
		panic("aggregator: Merge after Finish")
	}

	idx := model.IndexOf(ev.Header)
	rec, ok := a.records[idx]
	if !ok {
		rec = &model.CallRecord{Index: idx}
		a.records[idx] = rec
	}

	rec.LogLevel = ev.LogLevel
	rec.System = ev.System
	rec.CallNumber = ev.CallNumber
	rec.Talkgroup = ev.Talkgroup
	rec.Frequency = ev.Frequency

	switch {
	case ev.Outcome.Class == model.Standard:
		rec.Outcome = ev.Outcome
		rec.CallDate = ev.Timestamp.Add(-time.Duration(ev.Outcome.Duration) * time.Second)
	case ev.Outcome.Class != model.Unclassified:
		rec.Outcome = ev.Outcome
		rec.CallDate = ev.Timestamp
	case !rec.Outcome.HasDuration():
		rec.CallDate = ev.Timestamp
	}

	if rec.Outcome.Class != model.Standard && rec.Outcome.Duration != 0 {
		panic("aggregator: duration on non-standard outcome")
	}
}

// Len returns the number of records accumulated so far.
func (a *Aggregator) Len() int {
	return len(a.records)
}

// Finish ends the pass and hands the mapping to the caller. Further calls
// to Merge panic.
func (a *Aggregator) Finish() map[model.CallIndex]*model.CallRecord {
	a.finished = true
	return a.records
}

// Snapshot returns the pass counters.
func (a *Aggregator) Snapshot() Stats {
	lines := make(map[string]int64, len(a.lineClasses))
	for c, n := range a.lineClasses {
		lines[label(c)] = n
	}

	records := make(map[string]int64)
	for _, rec := range a.records {
		records[label(rec.Outcome.Class)]++
	}

	return Stats{
		LinesRead:     a.linesRead,
		Matched:       a.matched,
		Dropped:       a.dropped,
		Records:       len(a.records),
		LineClasses:   lines,
		RecordClasses: records,
	}
}

func label(c model.CallClass) string {
	if c == model.Unclassified {
		return "unclassified"
	}
	return c.String()
}
