package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/honeypot-telemetry/models"
)

func TestAPILookup_Success(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/json/203.0.113.5", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","countryCode":"NL","region":"NH","city":"Amsterdam","timezone":"Europe/Amsterdam","lat":52.37,"lon":4.89}`))
	}))
	defer server.Close()

	lookup := NewAPILookup(server.URL+"/json/%s", time.Second)

	info, err := lookup.Lookup(context.Background(), "203.0.113.5")
	require.NoError(t, err)
	assert.Equal(t, &models.GeoInfo{
		Country:  "NL",
		Region:   "NH",
		City:     "Amsterdam",
		Timezone: "Europe/Amsterdam",
		Lat:      52.37,
		Lon:      4.89,
	}, info)

	// second call is served from cache
	_, err = lookup.Lookup(context.Background(), "203.0.113.5")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestAPILookup_AppendsAddressWithoutPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup/198.51.100.7", r.URL.Path)
		w.Write([]byte(`{"status":"success","countryCode":"US"}`))
	}))
	defer server.Close()

	info, err := NewAPILookup(server.URL+"/lookup/", time.Second).Lookup(context.Background(), "198.51.100.7")
	require.NoError(t, err)
	assert.Equal(t, "US", info.Country)
}

func TestAPILookup_FailStatusIsNotFound(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
	}))
	defer server.Close()

	lookup := NewAPILookup(server.URL+"/%s", time.Second)

	_, err := lookup.Lookup(context.Background(), "192.0.2.1")
	assert.ErrorIs(t, err, ErrNotFound)

	// misses are cached as well
	_, err = lookup.Lookup(context.Background(), "192.0.2.1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), hits.Load())
}

func TestAPILookup_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewAPILookup(server.URL+"/%s", time.Second).Lookup(context.Background(), "203.0.113.5")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "429")
}

func TestAPILookup_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	_, err := NewAPILookup(server.URL+"/%s", 50*time.Millisecond).Lookup(context.Background(), "203.0.113.5")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
