package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"

	"github.com/jquagga/tr-log-analyzer/internal/model"
)

// maxLineSize bounds a single log line. Recorder lines are far shorter.
const maxLineSize = 1024 * 1024

// Expand resolves glob patterns to a sorted, de-duplicated list of files.
// Supports recursive patterns like logs/**/tr.log*.gz via doublestar.
// A pattern without glob metacharacters is returned as-is so a missing file
// surfaces as an open error.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		var matches []string
		if !strings.ContainsAny(pattern, "*?[{") {
			matches = []string{pattern}
		} else {
			var err error
			matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
			if err != nil {
				return nil, fmt.Errorf("expand %q: %w", pattern, err)
			}
			sort.Strings(matches)
		}

		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				abs = m
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true
			paths = append(paths, m)
		}
	}

	return paths, nil
}

// Open returns a reader over the log at path, decompressing it when the name
// ends in .gz. Closing the returned reader releases the file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("gzip %s: %w", path, err)
	}
	return &gzipFile{Reader: zr, file: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return zerr
}

// Scan feeds each line of r to fn in order. source labels the lines.
func Scan(r io.Reader, source string, fn func(model.RawLine)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	n := 0
	for scanner.Scan() {
		n++
		fn(model.RawLine{Text: scanner.Text(), Source: source, Number: n})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s line %d: %w", source, n+1, err)
	}
	return nil
}

// ReadFile opens path, feeds every line to fn and closes it on all paths.
func ReadFile(path string, fn func(model.RawLine)) error {
	rc, err := Open(path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer rc.Close()

	return Scan(rc, path, fn)
}

// ReadAll reads each path in order into fn, stopping at the first error.
func ReadAll(paths []string, fn func(model.RawLine)) error {
	for _, p := range paths {
		if err := ReadFile(p, fn); err != nil {
			return err
		}
	}
	return nil
}
