package geoip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/blogem/honeypot-telemetry/models"
)

const (
	maxResponseBytes = 4096
	cacheTTL         = 24 * time.Hour
	cacheMaxSize     = 10000
)

// apiResponse is the ip-api.com JSON shape
type apiResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	CountryCode string  `json:"countryCode"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	Timezone    string  `json:"timezone"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type cacheEntry struct {
	info    *models.GeoInfo
	fetched time.Time
}

// APILookup queries an HTTP geolocation service. The URL may contain %s for
// the address; otherwise the address is appended as a path segment.
type APILookup struct {
	url    string
	client *http.Client

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// NewAPILookup creates a lookup whose every request is capped by timeout
func NewAPILookup(url string, timeout time.Duration) *APILookup {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &APILookup{
		url:    url,
		client: &http.Client{Timeout: timeout},
		cache:  make(map[string]cacheEntry),
	}
}

// Lookup resolves address, answering repeated addresses from a 24h cache.
// Misses are cached too so a noisy scanner does not exhaust the API quota.
func (a *APILookup) Lookup(ctx context.Context, address string) (*models.GeoInfo, error) {
	a.mu.RLock()
	entry, ok := a.cache[address]
	a.mu.RUnlock()
	if ok && time.Since(entry.fetched) < cacheTTL {
		if entry.info == nil {
			return nil, ErrNotFound
		}
		return entry.info, nil
	}

	info, err := a.fetch(ctx, address)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	a.mu.Lock()
	if len(a.cache) >= cacheMaxSize {
		// map order is random, so this drops an arbitrary quarter
		drop := cacheMaxSize / 4
		for k := range a.cache {
			if drop == 0 {
				break
			}
			delete(a.cache, k)
			drop--
		}
	}
	a.cache[address] = cacheEntry{info: info, fetched: time.Now()}
	a.mu.Unlock()

	if info == nil {
		return nil, ErrNotFound
	}
	return info, nil
}

func (a *APILookup) fetch(ctx context.Context, address string) (*models.GeoInfo, error) {
	url := a.url
	if strings.Contains(url, "%s") {
		url = fmt.Sprintf(url, address)
	} else {
		url = strings.TrimRight(url, "/") + "/" + address
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("geoip: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoip: request failed for %s: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoip: unexpected status %d for %s", resp.StatusCode, address)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("geoip: failed to read response for %s: %w", address, err)
	}

	var result apiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("geoip: failed to decode response for %s: %w", address, err)
	}
	if result.Status != "success" || result.CountryCode == "" {
		return nil, ErrNotFound
	}

	return &models.GeoInfo{
		Country:  result.CountryCode,
		Region:   result.Region,
		City:     result.City,
		Timezone: result.Timezone,
		Lat:      result.Lat,
		Lon:      result.Lon,
	}, nil
}
