package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jquagga/tr-log-analyzer/internal/model"
)

func sampleRows() []model.Row {
	d := 12
	return []model.Row{
		{
			CallDate:   time.Date(2024, 5, 9, 12, 31, 33, 9426000, time.UTC),
			LogLevel:   "info",
			System:     "pwcp25",
			CallNumber: 126,
			CallClass:  "standard",
			Talkgroup:  "PWPD West 1",
			Frequency:  851.9625,
			Duration:   &d,
		},
		{
			CallDate:   time.Date(2024, 5, 9, 12, 31, 50, 300000000, time.UTC),
			LogLevel:   "info",
			System:     "pwcp25",
			CallNumber: 127,
			CallClass:  "encrypted",
			Talkgroup:  "2001",
			Frequency:  852.3,
		},
	}
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVRenderer(&buf).Render(sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, model.Columns, records[0])
	assert.Equal(t, []string{"2024-05-09 12:31:33.009426", "info", "pwcp25", "126", "standard", "PWPD West 1", "851.9625", "12"}, records[1])
	assert.Equal(t, "", records[2][7])
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(&buf).Render(sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, "encrypted", got["call_class"])
	assert.Nil(t, got["duration"])
}

func TestWriteFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tr.csv.gz")
	require.NoError(t, WriteFile(path, "csv", sampleRows()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	records, err := csv.NewReader(zr).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestWriteFileUnknownFormat(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "out.csv"), "xml", nil)
	assert.Error(t, err)
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"), "csv", nil)
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCSVRendererWriteError(t *testing.T) {
	err := NewCSVRenderer(failingWriter{}).Render(sampleRows())
	assert.Error(t, err)
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableRenderer(&buf, 1).Render(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "call_date")
	assert.Contains(t, out, "PWPD West 1")
	assert.NotContains(t, out, "2001")
}

func TestTableRendererDisabled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableRenderer(&buf, 0).Render(sampleRows()))
	assert.Empty(t, buf.String())
}
