package geoip

import (
	"path/filepath"
	"testing"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMaxMind_MissingFile(t *testing.T) {
	_, err := OpenMaxMind(filepath.Join(t.TempDir(), "absent.mmdb"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.mmdb")
}

func TestFromCity(t *testing.T) {
	var record geoip2.City
	record.Country.IsoCode = "DE"
	record.City.GeoNameID = 2950159
	record.City.Names = map[string]string{"en": "Berlin", "de": "Berlin"}
	record.Location.TimeZone = "Europe/Berlin"
	record.Location.Latitude = 52.52
	record.Location.Longitude = 13.40

	info, err := fromCity(&record)
	require.NoError(t, err)
	assert.Equal(t, "DE", info.Country)
	assert.Equal(t, "Berlin", info.City)
	assert.Equal(t, "", info.Region)
	assert.Equal(t, "Europe/Berlin", info.Timezone)
	assert.InDelta(t, 52.52, info.Lat, 0.0001)
	assert.InDelta(t, 13.40, info.Lon, 0.0001)
}

func TestFromCity_EmptyRecordIsNotFound(t *testing.T) {
	_, err := fromCity(&geoip2.City{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fromCity(nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
