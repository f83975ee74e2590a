package model

import (
	"strconv"
	"time"
)

// TimeLayout is the recorder's bracketed timestamp format.
const TimeLayout = "2006-01-02 15:04:05.000000"

// RawLine is one line of text read from a log source.
type RawLine struct {
	Text   string
	Source string // originating file path
	Number int    // 1-based line number within Source
}

// Header holds the fields every recorder call line carries.
type Header struct {
	Timestamp  time.Time
	LogLevel   string
	System     string
	CallNumber int
	Talkgroup  int
	Frequency  float64 // MHz
	EventText  string
}

// CallClass is the outcome category of a call.
type CallClass uint8

const (
	Unclassified CallClass = iota
	Standard
	Excluded
	Encrypted
	UnknownTalkgroup
	NoSourceAvailable
)

func (c CallClass) String() string {
	switch c {
	case Standard:
		return "standard"
	case Excluded:
		return "excluded"
	case Encrypted:
		return "encrypted"
	case UnknownTalkgroup:
		return "unknown_tg"
	case NoSourceAvailable:
		return "no_source"
	default:
		return ""
	}
}

// ParseCallClass is the inverse of CallClass.String.
func ParseCallClass(s string) (CallClass, bool) {
	for c := Unclassified; c <= NoSourceAvailable; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return Unclassified, false
}

// Outcome is the classification of a single line. Duration is only
// meaningful when Class is Standard.
type Outcome struct {
	Class    CallClass
	Duration int // seconds
}

// StandardOutcome returns a completed call outcome lasting d seconds.
func StandardOutcome(d int) Outcome {
	return Outcome{Class: Standard, Duration: d}
}

// HasDuration reports whether the outcome carries an elapsed duration.
func (o Outcome) HasDuration() bool {
	return o.Class == Standard
}

// CallEvent is a matched and classified log line.
type CallEvent struct {
	Header
	Outcome Outcome
}

// CallIndex correlates log lines belonging to one call. It is built from the
// whole-second wall clock of a line and its talkgroup and must not be read
// back as a timestamp.
type CallIndex struct {
	Second    int64
	Talkgroup int
}

// IndexOf derives the correlation key for a line.
func IndexOf(h Header) CallIndex {
	return CallIndex{Second: h.Timestamp.Unix(), Talkgroup: h.Talkgroup}
}

func (i CallIndex) String() string {
	return strconv.FormatInt(i.Second, 10) + strconv.Itoa(i.Talkgroup)
}

// CallRecord is the accumulated state of one call.
type CallRecord struct {
	Index      CallIndex
	CallDate   time.Time // call start
	LogLevel   string
	System     string
	CallNumber int
	Talkgroup  int
	Frequency  float64
	Outcome    Outcome
}
