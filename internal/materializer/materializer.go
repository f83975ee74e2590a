// Package materializer turns the records of a finished pass into sorted
// output rows.
package materializer

import (
	"sort"
	"strconv"

	"github.com/jquagga/tr-log-analyzer/internal/chanlist"
	"github.com/jquagga/tr-log-analyzer/internal/model"
)

// Materialize flattens records into rows sorted by call start. When names is
// non-nil, talkgroups with an alpha tag are displayed by that tag; all other
// talkgroups are shown as their decimal id.
func Materialize(records map[model.CallIndex]*model.CallRecord, names chanlist.Lookup) []model.Row {
	recs := make([]*model.CallRecord, 0, len(records))
	for _, rec := range records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.CallDate.Equal(b.CallDate) {
			return a.CallDate.Before(b.CallDate)
		}
		if a.Index.Second != b.Index.Second {
			return a.Index.Second < b.Index.Second
		}
		return a.Index.Talkgroup < b.Index.Talkgroup
	})

	rows := make([]model.Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, toRow(rec, names))
	}
	return rows
}

func toRow(rec *model.CallRecord, names chanlist.Lookup) model.Row {
	out := normalize(rec.Outcome)

	row := model.Row{
		CallDate:   rec.CallDate,
		LogLevel:   rec.LogLevel,
		System:     rec.System,
		CallNumber: rec.CallNumber,
		CallClass:  out.Class.String(),
		Talkgroup:  strconv.Itoa(rec.Talkgroup),
		Frequency:  rec.Frequency,
	}
	if out.HasDuration() {
		d := out.Duration
		row.Duration = &d
	}
	if names != nil {
		if tag, ok := names.AlphaTag(rec.Talkgroup); ok {
			row.Talkgroup = tag
		}
	}
	return row
}

// normalize enforces that a duration implies a standard outcome.
func normalize(o model.Outcome) model.Outcome {
	if o.Class != model.Standard && o.Duration != 0 {
		return model.StandardOutcome(o.Duration)
	}
	return o
}
