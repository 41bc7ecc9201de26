// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Envelope is the body of every API response.
type Envelope struct {
	Data    interface{} `json:"data"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Error   bool        `json:"error"`
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// ParseOptionalDate parses value when present.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
