package models

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TimestampLayout is the fixed-width ISO-8601 UTC form used for storage.
// Fixed width keeps lexical and chronological ordering identical.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// UnknownAddress is stored when no client address can be determined
const UnknownAddress = "unknown"

// RequestRecord represents one observed request in the telemetry log
type RequestRecord struct {
	ID            int64     `json:"id" db:"id"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
	ClientAddress string    `json:"ip" db:"ip"`
	Method        string    `json:"method" db:"method"`
	Path          string    `json:"path" db:"path"`
	Status        int       `json:"status" db:"status"`
	UserAgent     *string   `json:"user_agent" db:"user_agent"`
	Referrer      *string   `json:"referrer" db:"referrer"`
	Params        *string   `json:"params" db:"params"` // JSON {query, body, route}
	Geo           *string   `json:"geoip" db:"geoip"`   // JSON GeoInfo
	Notes         *string   `json:"notes" db:"notes"`   // threat labels joined by "; "
}

// Validate returns the list of violated required-field rules
func (r *RequestRecord) Validate() []string {
	var errors []string

	if r.Timestamp.IsZero() {
		errors = append(errors, "timestamp is required")
	}
	if r.ClientAddress == "" {
		errors = append(errors, "client address is required")
	}
	if r.Method == "" {
		errors = append(errors, "method is required")
	}
	if r.Path == "" {
		errors = append(errors, "path is required")
	}
	if r.Status <= 0 {
		errors = append(errors, "status is required")
	}

	return errors
}

// GeoInfo is the coarse location attached to a public client address
type GeoInfo struct {
	Country  string  `json:"country"`
	Region   string  `json:"region"`
	City     string  `json:"city"`
	Timezone string  `json:"timezone"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// RequestParams is the serialized shape of the params column
type RequestParams struct {
	Query map[string]any    `json:"query,omitempty"`
	Body  any               `json:"body,omitempty"`
	Route map[string]string `json:"route,omitempty"`
}

// IsEmpty reports whether no parameter group carries data
func (p RequestParams) IsEmpty() bool {
	return len(p.Query) == 0 && p.Body == nil && len(p.Route) == 0
}

// RequestSnapshot is the finalized request/response pair handed to the
// telemetry pipeline by the HTTP layer once the response has been sent.
type RequestSnapshot struct {
	Method      string
	Path        string
	Query       url.Values
	RouteParams map[string]string
	Body        any    // parsed JSON object or form map; nil when absent
	RawBody     string // body text as received, possibly capped
	Headers     http.Header
	Status      int
	RemoteAddr  string
	FinishedAt  time.Time
}

// HasBody reports whether the request carried a non-empty body
func (s *RequestSnapshot) HasBody() bool {
	switch b := s.Body.(type) {
	case nil:
		return strings.TrimSpace(s.RawBody) != ""
	case map[string]any:
		return len(b) > 0
	case []any:
		return len(b) > 0
	default:
		return true
	}
}

// StringPtr returns nil for the empty string, otherwise a pointer to s
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
