package geoip

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/blogem/honeypot-telemetry/models"
)

// MaxMindLookup resolves addresses against a local GeoLite2/GeoIP2 City database
type MaxMindLookup struct {
	reader *geoip2.Reader
}

// OpenMaxMind opens the MMDB file at path
func OpenMaxMind(path string) (*MaxMindLookup, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database %s: %w", path, err)
	}
	return &MaxMindLookup{reader: reader}, nil
}

// Lookup is a local memory-mapped read and does not block on ctx
func (m *MaxMindLookup) Lookup(_ context.Context, address string) (*models.GeoInfo, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return nil, fmt.Errorf("geoip: invalid address %q", address)
	}

	record, err := m.reader.City(ip)
	if err != nil {
		return nil, fmt.Errorf("geoip: city lookup failed for %s: %w", address, err)
	}

	return fromCity(record)
}

// Close releases the database
func (m *MaxMindLookup) Close() error {
	return m.reader.Close()
}

func fromCity(record *geoip2.City) (*models.GeoInfo, error) {
	// Absent networks decode to a zero record rather than an error
	if record == nil || (record.Country.IsoCode == "" && record.City.GeoNameID == 0) {
		return nil, ErrNotFound
	}

	info := &models.GeoInfo{
		Country:  record.Country.IsoCode,
		City:     record.City.Names["en"],
		Timezone: record.Location.TimeZone,
		Lat:      record.Location.Latitude,
		Lon:      record.Location.Longitude,
	}
	if len(record.Subdivisions) > 0 {
		info.Region = record.Subdivisions[0].IsoCode
	}

	return info, nil
}
