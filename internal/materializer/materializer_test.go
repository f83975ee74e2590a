package materializer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jquagga/tr-log-analyzer/internal/chanlist"
	"github.com/jquagga/tr-log-analyzer/internal/model"
)

func at(sec int) time.Time {
	return time.Date(2024, 5, 9, 12, 31, sec, 0, time.UTC)
}

func record(sec, tg int, out model.Outcome) *model.CallRecord {
	ts := at(sec)
	return &model.CallRecord{
		Index:      model.CallIndex{Second: ts.Unix(), Talkgroup: tg},
		CallDate:   ts,
		LogLevel:   "info",
		System:     "pwcp25",
		CallNumber: sec,
		Talkgroup:  tg,
		Frequency:  851.9625,
		Outcome:    out,
	}
}

func recordSet(recs ...*model.CallRecord) map[model.CallIndex]*model.CallRecord {
	m := make(map[model.CallIndex]*model.CallRecord)
	for _, r := range recs {
		m[r.Index] = r
	}
	return m
}

func TestMaterializeSortsByCallDate(t *testing.T) {
	rows := Materialize(recordSet(
		record(30, 1007, model.StandardOutcome(4)),
		record(10, 1008, model.Outcome{Class: model.Encrypted}),
		record(20, 1007, model.Outcome{}),
	), nil)

	require.Len(t, rows, 3)
	assert.Equal(t, at(10), rows[0].CallDate)
	assert.Equal(t, at(20), rows[1].CallDate)
	assert.Equal(t, at(30), rows[2].CallDate)

	assert.Equal(t, "encrypted", rows[0].CallClass)
	assert.Nil(t, rows[0].Duration)
	assert.Equal(t, "", rows[1].CallClass)
	assert.Equal(t, "standard", rows[2].CallClass)
	require.NotNil(t, rows[2].Duration)
	assert.Equal(t, 4, *rows[2].Duration)
}

func TestMaterializeNoSideTable(t *testing.T) {
	rows := Materialize(recordSet(record(1, 1007, model.Outcome{}), record(2, 42, model.Outcome{})), nil)

	require.Len(t, rows, 2)
	assert.Equal(t, "1007", rows[0].Talkgroup)
	assert.Equal(t, "42", rows[1].Talkgroup)
}

func TestMaterializeAlphaTags(t *testing.T) {
	names := chanlist.Table{1007: "PWPD West 1", 1008: ""}
	rows := Materialize(recordSet(
		record(1, 1007, model.Outcome{}),
		record(2, 1008, model.Outcome{}),
		record(3, 9999, model.Outcome{}),
	), names)

	require.Len(t, rows, 3)
	assert.Equal(t, "PWPD West 1", rows[0].Talkgroup)
	assert.Equal(t, "1008", rows[1].Talkgroup)
	assert.Equal(t, "9999", rows[2].Talkgroup)
}

func TestNormalizeDurationImpliesStandard(t *testing.T) {
	rows := Materialize(recordSet(record(1, 1007, model.Outcome{Class: model.Unclassified, Duration: 9})), nil)

	require.Len(t, rows, 1)
	assert.Equal(t, "standard", rows[0].CallClass)
	require.NotNil(t, rows[0].Duration)
	assert.Equal(t, 9, *rows[0].Duration)
}

func TestRowValues(t *testing.T) {
	rows := Materialize(recordSet(record(1, 1007, model.StandardOutcome(12))), nil)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{
		"2024-05-09 12:31:01.000000", "info", "pwcp25", "1", "standard", "1007", "851.9625", "12",
	}, rows[0].Values())
	assert.Len(t, rows[0].Values(), len(model.Columns))
}
