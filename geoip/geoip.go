// Package geoip provides the address to location lookups used for enrichment.
// A local MaxMind city database is preferred; an HTTP lookup service in
// ip-api.com format is the fallback for deployments without one.
package geoip

import (
	"errors"
)

// ErrNotFound is returned when the source has no location for an address
var ErrNotFound = errors.New("geoip: address not found")
