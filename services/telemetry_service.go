package services

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/blogem/honeypot-telemetry/models"
)

var timeNow = func() time.Time {
	return time.Now()
}

// TelemetryService turns finalized requests into stored records
type TelemetryService interface {
	// Observe runs after the response has been sent and never fails the request
	Observe(ctx context.Context, snapshot *models.RequestSnapshot)
}

type telemetryService struct {
	resolver  IdentityResolver
	enricher  GeoEnricher
	detector  SignatureDetector
	sink      TelemetrySink
	synthetic SyntheticIdentity
	log       *zap.Logger
}

// NewTelemetryService wires the pipeline. A non-nil synthetic generator
// replaces identity resolution and enrichment entirely.
func NewTelemetryService(
	resolver IdentityResolver,
	enricher GeoEnricher,
	detector SignatureDetector,
	sink TelemetrySink,
	synthetic SyntheticIdentity,
	log *zap.Logger,
) TelemetryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &telemetryService{
		resolver:  resolver,
		enricher:  enricher,
		detector:  detector,
		sink:      sink,
		synthetic: synthetic,
		log:       log,
	}
}

func (s *telemetryService) Observe(ctx context.Context, snapshot *models.RequestSnapshot) {
	if snapshot == nil {
		return
	}

	var address string
	var geo *models.GeoInfo
	if s.synthetic != nil {
		address, geo = s.synthetic.Next()
	} else {
		address = s.resolver.Resolve(snapshot.Headers, snapshot.RemoteAddr)
		geo = s.enricher.Enrich(ctx, address)
	}

	labels := s.detector.Detect(snapshot)

	finished := snapshot.FinishedAt
	if finished.IsZero() {
		finished = timeNow()
	}

	record := &models.RequestRecord{
		Timestamp:     finished.UTC(),
		ClientAddress: address,
		Method:        snapshot.Method,
		Path:          snapshot.Path,
		Status:        snapshot.Status,
		UserAgent:     models.StringPtr(snapshot.Headers.Get("User-Agent")),
		Referrer:      models.StringPtr(referrer(snapshot)),
		Params:        s.encodeParams(snapshot),
		Geo:           s.encodeGeo(geo),
		Notes:         models.JoinLabels(labels),
	}

	if len(labels) > 0 {
		s.log.Info("threat signature matched",
			zap.String("ip", address),
			zap.String("method", record.Method),
			zap.String("path", record.Path),
			zap.String("notes", *record.Notes))
	}

	s.sink.Submit(record)
}

func referrer(snapshot *models.RequestSnapshot) string {
	if r := snapshot.Headers.Get("Referer"); r != "" {
		return r
	}
	return snapshot.Headers.Get("Referrer")
}

// encodeParams returns nil when query, body and route parameters are all empty
func (s *telemetryService) encodeParams(snapshot *models.RequestSnapshot) *string {
	var params models.RequestParams

	if len(snapshot.Query) > 0 {
		params.Query = make(map[string]any, len(snapshot.Query))
		for key, values := range snapshot.Query {
			if len(values) == 1 {
				params.Query[key] = values[0]
			} else {
				params.Query[key] = values
			}
		}
	}
	if snapshot.HasBody() {
		if snapshot.Body != nil {
			params.Body = snapshot.Body
		} else {
			params.Body = strings.TrimSpace(snapshot.RawBody)
		}
	}
	if len(snapshot.RouteParams) > 0 {
		params.Route = snapshot.RouteParams
	}

	if params.IsEmpty() {
		return nil
	}

	encoded, err := json.Marshal(params)
	if err != nil {
		s.log.Warn("failed to encode request params", zap.String("path", snapshot.Path), zap.Error(err))
		return nil
	}
	out := string(encoded)
	return &out
}

func (s *telemetryService) encodeGeo(geo *models.GeoInfo) *string {
	if geo == nil {
		return nil
	}
	encoded, err := json.Marshal(geo)
	if err != nil {
		s.log.Warn("failed to encode geo info", zap.Error(err))
		return nil
	}
	out := string(encoded)
	return &out
}
