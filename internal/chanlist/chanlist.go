// Package chanlist loads a trunk-recorder talkgroup file and resolves
// talkgroup ids to their alpha tags.
package chanlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	decimalColumn  = "Decimal"
	alphaTagColumn = "Alpha Tag"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Lookup resolves a talkgroup id to a display name.
type Lookup interface {
	AlphaTag(talkgroup int) (string, bool)
}

// Table maps talkgroup ids to alpha tags.
type Table map[int]string

// AlphaTag returns the non-empty alpha tag for talkgroup, if any.
func (t Table) AlphaTag(talkgroup int) (string, bool) {
	tag, ok := t[talkgroup]
	return tag, ok && tag != ""
}

// Load reads the table at path.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a CSV talkgroup table. Rows whose Decimal cell is not an
// integer are ignored; the first row wins for a repeated id.
func Read(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	decIdx, tagIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case decimalColumn:
			decIdx = i
		case alphaTagColumn:
			tagIdx = i
		}
	}
	if decIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, decimalColumn)
	}
	if tagIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, alphaTagColumn)
	}

	t := make(Table)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if decIdx >= len(rec) || tagIdx >= len(rec) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[decIdx]))
		if err != nil {
			continue
		}
		if _, dup := t[id]; dup {
			continue
		}
		t[id] = strings.TrimSpace(rec[tagIdx])
	}
	return t, nil
}
