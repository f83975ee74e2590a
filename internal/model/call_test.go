package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCallClass(t *testing.T) {
	for c := Standard; c <= NoSourceAvailable; c++ {
		got, ok := ParseCallClass(c.String())
		assert.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}

	_, ok := ParseCallClass("bogus")
	assert.False(t, ok)
}

func TestIndexOfTruncatesToSecond(t *testing.T) {
	a := IndexOf(Header{Timestamp: time.Date(2024, 5, 9, 12, 31, 45, 1000, time.UTC), Talkgroup: 1007})
	b := IndexOf(Header{Timestamp: time.Date(2024, 5, 9, 12, 31, 45, 999999000, time.UTC), Talkgroup: 1007})
	c := IndexOf(Header{Timestamp: time.Date(2024, 5, 9, 12, 31, 45, 0, time.UTC), Talkgroup: 1008})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
