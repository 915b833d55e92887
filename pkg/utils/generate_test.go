package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingReferenceFormat(t *testing.T) {
	ref := GenerateBookingReference()
	assert.Regexp(t, regexp.MustCompile(`^BK-\d{8}-[0-9A-F]{8}$`), ref)
	assert.Contains(t, ref, time.Now().Format("20060102"))
}

func TestGenerateBookingReferenceIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ref := GenerateBookingReference()
		_, dup := seen[ref]
		assert.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-3", 1))
}

func TestParseFloat(t *testing.T) {
	v := ParseFloat("12.5")
	if assert.NotNil(t, v) {
		assert.Equal(t, 12.5, *v)
	}
	assert.Nil(t, ParseFloat(""))
	assert.Nil(t, ParseFloat("not-a-number"))
}

func TestParseTime(t *testing.T) {
	v := ParseTime("2026-09-01T19:30:00Z")
	if assert.NotNil(t, v) {
		assert.Equal(t, 2026, v.Year())
		assert.Equal(t, time.September, v.Month())
	}
	assert.Nil(t, ParseTime(""))
	assert.Nil(t, ParseTime("tomorrow"))
}
