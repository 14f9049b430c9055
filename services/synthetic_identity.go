package services

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/blogem/honeypot-telemetry/models"
)

// publicFirstOctets avoids private, loopback, CGNAT, link-local and multicast space
var publicFirstOctets = []int{
	23, 31, 37, 45, 52, 61, 77, 81, 89, 91, 103, 109,
	118, 134, 142, 151, 176, 185, 188, 193, 203, 212, 217,
}

var syntheticLocations = []models.GeoInfo{
	{Country: "US", Region: "CA", City: "San Francisco", Timezone: "America/Los_Angeles", Lat: 37.7749, Lon: -122.4194},
	{Country: "US", Region: "VA", City: "Ashburn", Timezone: "America/New_York", Lat: 39.0438, Lon: -77.4874},
	{Country: "CN", Region: "BJ", City: "Beijing", Timezone: "Asia/Shanghai", Lat: 39.9042, Lon: 116.4074},
	{Country: "RU", Region: "MOW", City: "Moscow", Timezone: "Europe/Moscow", Lat: 55.7558, Lon: 37.6173},
	{Country: "DE", Region: "HE", City: "Frankfurt am Main", Timezone: "Europe/Berlin", Lat: 50.1109, Lon: 8.6821},
	{Country: "NL", Region: "NH", City: "Amsterdam", Timezone: "Europe/Amsterdam", Lat: 52.3676, Lon: 4.9041},
	{Country: "BR", Region: "SP", City: "Sao Paulo", Timezone: "America/Sao_Paulo", Lat: -23.5505, Lon: -46.6333},
	{Country: "IN", Region: "MH", City: "Mumbai", Timezone: "Asia/Kolkata", Lat: 19.0760, Lon: 72.8777},
	{Country: "SG", Region: "01", City: "Singapore", Timezone: "Asia/Singapore", Lat: 1.3521, Lon: 103.8198},
	{Country: "KR", Region: "11", City: "Seoul", Timezone: "Asia/Seoul", Lat: 37.5665, Lon: 126.9780},
	{Country: "VN", Region: "SG", City: "Ho Chi Minh City", Timezone: "Asia/Ho_Chi_Minh", Lat: 10.8231, Lon: 106.6297},
	{Country: "GB", Region: "ENG", City: "London", Timezone: "Europe/London", Lat: 51.5074, Lon: -0.1278},
}

// SyntheticIdentity fabricates client identity for demonstration deployments
type SyntheticIdentity interface {
	Next() (string, *models.GeoInfo)
}

type syntheticIdentity struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticIdentity creates a generator; equal seeds produce equal sequences
func NewSyntheticIdentity(seed uint64) SyntheticIdentity {
	return &syntheticIdentity{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns a public IPv4 address and a location from the fixed table
func (s *syntheticIdentity) Next() (string, *models.GeoInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address := fmt.Sprintf("%d.%d.%d.%d",
		publicFirstOctets[s.rng.IntN(len(publicFirstOctets))],
		s.rng.IntN(256),
		s.rng.IntN(256),
		1+s.rng.IntN(254),
	)

	location := syntheticLocations[s.rng.IntN(len(syntheticLocations))]
	return address, &location
}
