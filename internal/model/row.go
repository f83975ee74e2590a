package model

import (
	"strconv"
	"time"
)

// Columns is the canonical output column order.
var Columns = []string{
	"call_date",
	"log_level",
	"system",
	"call_number",
	"call_class",
	"talkgroup",
	"frequency",
	"duration",
}

// Row is one materialized call, ready for output.
type Row struct {
	CallDate   time.Time `json:"call_date"`
	LogLevel   string    `json:"log_level"`
	System     string    `json:"system"`
	CallNumber int       `json:"call_number"`
	CallClass  string    `json:"call_class"`
	Talkgroup  string    `json:"talkgroup"`
	Frequency  float64   `json:"frequency"`
	Duration   *int      `json:"duration"`
}

// Values returns the row's cells in Columns order. A missing duration is an
// empty cell.
func (r Row) Values() []string {
	duration := ""
	if r.Duration != nil {
		duration = strconv.Itoa(*r.Duration)
	}
	return []string{
		r.CallDate.Format(TimeLayout),
		r.LogLevel,
		r.System,
		strconv.Itoa(r.CallNumber),
		r.CallClass,
		r.Talkgroup,
		strconv.FormatFloat(r.Frequency, 'f', -1, 64),
		duration,
	}
}
