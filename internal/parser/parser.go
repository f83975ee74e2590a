package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jquagga/tr-log-analyzer/internal/model"
)

// ErrConversion wraps a field that matched the line pattern but could not be
// converted to its typed value.
var ErrConversion = errors.New("field conversion failed")

// ---------------------------------------------------------------------------
// Line Matcher
// ---------------------------------------------------------------------------

// LineMatcher extracts the header fields of a recorder call line.
//
//	[2024-05-09 12:31:45.009426] (info)   [pwcp25]	126C	TG:       1007 (   PWPD West 1)	Freq: 851.962500 MHz	<event text>
type LineMatcher struct {
	re *regexp.Regexp
}

func NewLineMatcher() *LineMatcher {
	return &LineMatcher{
		re: regexp.MustCompile(
			`\[(?P<ts>\S+\s\S+)\]` +
				`\s+\((?P<level>\S+)\)` +
				`\s+\[(?P<system>\S+)\]` +
				`\s+(?P<callnum>\d+)\S+` +
				`\s+\S+\s+(?P<tg>\d+)` +
				`.*?Freq:\s+(?P<freq>\d+\.\d+)\s*MHz` +
				`\s+(?P<event>.*)$`,
		),
	}
}

// Match parses one line. A line that does not have the call line shape
// returns ok == false and a nil error. A line that has the shape but carries
// an unparsable field returns an error wrapping ErrConversion.
func (m *LineMatcher) Match(raw string) (h model.Header, ok bool, err error) {
	line := StripANSI(strings.TrimRight(raw, "\r\n"))

	matches := m.re.FindStringSubmatch(line)
	if matches == nil {
		return model.Header{}, false, nil
	}

	h.Timestamp, err = ParseTimestamp(matches[1])
	if err != nil {
		return model.Header{}, true, err
	}
	h.LogLevel = matches[2]
	h.System = matches[3]

	if h.CallNumber, err = atoi("call number", matches[4]); err != nil {
		return model.Header{}, true, err
	}
	if h.Talkgroup, err = atoi("talkgroup", matches[5]); err != nil {
		return model.Header{}, true, err
	}

	h.Frequency, err = strconv.ParseFloat(matches[6], 64)
	if err != nil {
		return model.Header{}, true, fmt.Errorf("%w: frequency %q: %v", ErrConversion, matches[6], err)
	}

	h.EventText = matches[7]
	return h, true, nil
}

// parseLayout accepts any number of fractional second digits.
const parseLayout = "2006-01-02 15:04:05"

// ParseTimestamp reads a recorder timestamp as a zone-less wall clock (UTC).
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(parseLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", ErrConversion, s, err)
	}
	return t, nil
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrConversion, field, s, err)
	}
	return n, nil
}

// ansiEscape matches CSI sequences left in captured container output.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// StripANSI removes terminal color and cursor escapes from s.
func StripANSI(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return ansiEscape.ReplaceAllString(s, "")
}
