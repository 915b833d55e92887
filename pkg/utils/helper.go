package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseFloat converts a query parameter to *float64, nil when empty or invalid
func ParseFloat(value string) *float64 {
	if value == "" {
		return nil
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}

	return &result
}

// ParseTime converts an RFC 3339 query parameter to *time.Time, nil when empty or invalid
func ParseTime(value string) *time.Time {
	if value == "" {
		return nil
	}

	result, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}

	return &result
}
