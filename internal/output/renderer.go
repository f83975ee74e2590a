package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/klauspost/compress/gzip"

	"github.com/jquagga/tr-log-analyzer/internal/model"
)

// Renderer writes a materialized call table to an output stream.
type Renderer interface {
	Render(rows []model.Row) error
}

// New returns the renderer for format ("csv" or "json") writing to w.
func New(format string, w io.Writer) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		return NewCSVRenderer(w), nil
	case "json":
		return NewJSONRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile renders rows into path, gzip-compressing when the name ends in
// .gz. Any write or close failure is returned.
func WriteFile(path, format string, rows []model.Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}

	r, err := New(format, w)
	if err != nil {
		return err
	}
	if err := r.Render(rows); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress output: %w", err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// CSV Renderer
// ---------------------------------------------------------------------------

// CSVRenderer writes a header row followed by one row per call.
type CSVRenderer struct {
	w io.Writer
}

func NewCSVRenderer(w io.Writer) *CSVRenderer {
	return &CSVRenderer{w: w}
}

func (r *CSVRenderer) Render(rows []model.Row) error {
	cw := csv.NewWriter(r.w)
	if err := cw.Write(model.Columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ---------------------------------------------------------------------------
// JSON Renderer (one object per line)
// ---------------------------------------------------------------------------

// JSONRenderer prints each row as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

func (r *JSONRenderer) Render(rows []model.Row) error {
	for _, row := range rows {
		if err := r.enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Table Renderer (terminal preview)
// ---------------------------------------------------------------------------

var (
	styleHeader    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell      = lipgloss.NewStyle().Padding(0, 1)
	styleExcluded  = styleCell.Foreground(lipgloss.Color("245")).Faint(true) // gray
	styleEncrypted = styleCell.Foreground(lipgloss.Color("220"))             // yellow
	styleUnknown   = styleCell.Foreground(lipgloss.Color("39"))              // cyan
	styleNoSource  = styleCell.Foreground(lipgloss.Color("196")).Bold(true)  // red bold
	styleBorder    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TableRenderer prints the first Limit rows as a bordered table.
type TableRenderer struct {
	w     io.Writer
	Limit int
}

// NewTableRenderer returns a preview renderer for at most limit rows.
func NewTableRenderer(w io.Writer, limit int) *TableRenderer {
	return &TableRenderer{w: w, Limit: limit}
}

func (r *TableRenderer) Render(rows []model.Row) error {
	if r.Limit <= 0 {
		return nil
	}
	if len(rows) > r.Limit {
		rows = rows[:r.Limit]
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = row.Values()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers(model.Columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || row < 0 || row >= len(rows) {
				return styleHeader
			}
			return styleClass(rows[row].CallClass)
		})

	_, err := fmt.Fprintln(r.w, t.Render())
	return err
}

func styleClass(class string) lipgloss.Style {
	c, _ := model.ParseCallClass(class)
	switch c {
	case model.Excluded:
		return styleExcluded
	case model.Encrypted:
		return styleEncrypted
	case model.UnknownTalkgroup:
		return styleUnknown
	case model.NoSourceAvailable:
		return styleNoSource
	default:
		return styleCell
	}
}
