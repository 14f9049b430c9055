package services

import (
	"context"
	"errors"
	"net/netip"
	"time"

	"go.uber.org/zap"

	"github.com/blogem/honeypot-telemetry/geoip"
	"github.com/blogem/honeypot-telemetry/models"
)

// GeoLookup is the black-box address to location source
type GeoLookup interface {
	Lookup(ctx context.Context, address string) (*models.GeoInfo, error)
}

// GeoEnricher attaches coarse location data to public addresses
type GeoEnricher interface {
	Enrich(ctx context.Context, address string) *models.GeoInfo
}

type geoEnricher struct {
	lookup  GeoLookup
	timeout time.Duration
	log     *zap.Logger
}

// NewGeoEnricher creates an enricher; a nil lookup disables enrichment
func NewGeoEnricher(lookup GeoLookup, timeout time.Duration, log *zap.Logger) GeoEnricher {
	if log == nil {
		log = zap.NewNop()
	}
	return &geoEnricher{
		lookup:  lookup,
		timeout: timeout,
		log:     log,
	}
}

type lookupResult struct {
	info *models.GeoInfo
	err  error
}

// Enrich returns nil for non-public addresses, misses, failures and timeouts
func (e *geoEnricher) Enrich(ctx context.Context, address string) *models.GeoInfo {
	if e.lookup == nil || !isPublicAddress(address) {
		return nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	// the lookup may ignore ctx, so the deadline is enforced here
	done := make(chan lookupResult, 1)
	go func() {
		info, err := e.lookup.Lookup(ctx, address)
		done <- lookupResult{info: info, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if !errors.Is(res.err, geoip.ErrNotFound) {
				e.log.Debug("geo lookup failed", zap.String("ip", address), zap.Error(res.err))
			}
			return nil
		}
		return res.info
	case <-ctx.Done():
		e.log.Debug("geo lookup timed out", zap.String("ip", address), zap.Duration("timeout", e.timeout))
		return nil
	}
}

// isPublicAddress rejects unknown, unparsable, loopback, RFC-1918,
// link-local, unspecified and unique-local addresses.
func isPublicAddress(address string) bool {
	if address == "" || address == models.UnknownAddress {
		return false
	}
	addr, err := netip.ParseAddr(address)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	return !(addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified())
}
