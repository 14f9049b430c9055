package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/blogem/honeypot-telemetry/repositories"
)

// Options carries the runtime knobs the services need
type Options struct {
	GeoLookup     GeoLookup
	GeoTimeout    time.Duration
	QueueSize     int
	DemoMode      bool
	DemoSeed      uint64
	Uploader      ObjectUploader
	ArchivePrefix string
}

// Services holds all service instances
type Services struct {
	Telemetry TelemetryService
	Sink      TelemetrySink
	Logs      LogQueryService
	// Archiver is nil when no uploader is configured
	Archiver ThreatArchiver
}

// NewServices creates and initializes all service instances.
// The returned sink owns a writer goroutine and must be closed on shutdown.
func NewServices(repos *repositories.Repositories, opts Options, log *zap.Logger) *Services {
	sink := NewTelemetrySink(repos.Requests, opts.QueueSize, log)

	var synthetic SyntheticIdentity
	if opts.DemoMode {
		synthetic = NewSyntheticIdentity(opts.DemoSeed)
	}

	srvs := &Services{
		Telemetry: NewTelemetryService(
			NewIdentityResolver(),
			NewGeoEnricher(opts.GeoLookup, opts.GeoTimeout, log),
			NewSignatureDetector(),
			sink,
			synthetic,
			log,
		),
		Sink: sink,
		Logs: NewLogQueryService(repos.Requests),
	}

	if opts.Uploader != nil {
		srvs.Archiver = NewThreatArchiver(repos.Requests, opts.Uploader, opts.ArchivePrefix, log)
	}

	return srvs
}
