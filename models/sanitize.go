package models

import "strings"

const (
	// MaxFieldLength is the cap applied to every stored free-text field
	MaxFieldLength = 10000

	// TruncationMarker is appended to values cut at MaxFieldLength
	TruncationMarker = "... [truncated]"
)

// SanitizeText removes NUL bytes and truncates s to MaxFieldLength characters,
// marking the cut explicitly.
func SanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")

	count := 0
	for i := range s {
		if count == MaxFieldLength {
			return s[:i] + TruncationMarker
		}
		count++
	}
	return s
}

// SanitizeOptional applies SanitizeText to a nullable field
func SanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeText(*s)
	return &clean
}

// Sanitized returns a copy of r with every text field cleaned
func (r RequestRecord) Sanitized() RequestRecord {
	r.ClientAddress = SanitizeText(r.ClientAddress)
	r.Method = SanitizeText(r.Method)
	r.Path = SanitizeText(r.Path)
	r.UserAgent = SanitizeOptional(r.UserAgent)
	r.Referrer = SanitizeOptional(r.Referrer)
	r.Params = SanitizeOptional(r.Params)
	r.Geo = SanitizeOptional(r.Geo)
	r.Notes = SanitizeOptional(r.Notes)
	return r
}
