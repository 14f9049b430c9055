package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/blogem/honeypot-telemetry/models"
	"github.com/blogem/honeypot-telemetry/repositories"
)

const archiveBatchSize = 1000

// ObjectUploader stores one archive object
type ObjectUploader interface {
	Upload(ctx context.Context, key string, body []byte) error
}

// ThreatArchiver exports threat feed rows to object storage
type ThreatArchiver interface {
	// RunOnce exports everything after the cursor and returns the exported row count
	RunOnce(ctx context.Context) (int, error)
	// Run exports every interval until ctx is done
	Run(ctx context.Context, interval time.Duration) error
}

type threatArchiver struct {
	requestRepo repositories.RequestRepository
	uploader    ObjectUploader
	prefix      string
	log         *zap.Logger

	mu     sync.Mutex
	cursor int64
}

// NewThreatArchiver creates an archiver whose cursor starts at the beginning of the log
func NewThreatArchiver(requestRepo repositories.RequestRepository, uploader ObjectUploader, prefix string, log *zap.Logger) ThreatArchiver {
	if log == nil {
		log = zap.NewNop()
	}
	return &threatArchiver{
		requestRepo: requestRepo,
		uploader:    uploader,
		prefix:      strings.Trim(prefix, "/"),
		log:         log,
	}
}

func (a *threatArchiver) RunOnce(ctx context.Context) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	exported := 0
	for {
		records, err := a.requestRepo.ThreatsAfter(ctx, a.cursor, archiveBatchSize)
		if err != nil {
			return exported, fmt.Errorf("failed to read threats after %d: %w", a.cursor, err)
		}
		if len(records) == 0 {
			return exported, nil
		}

		body, err := encodeJSONLGZ(records)
		if err != nil {
			return exported, fmt.Errorf("failed to encode threat batch: %w", err)
		}

		key := a.objectKey()
		if err := a.uploader.Upload(ctx, key, body); err != nil {
			return exported, fmt.Errorf("failed to upload threat batch: %w", err)
		}

		// advance only once the batch is stored
		a.cursor = records[len(records)-1].ID
		exported += len(records)

		a.log.Info("archived threat batch",
			zap.String("key", key),
			zap.Int("records", len(records)),
			zap.Int64("cursor", a.cursor))

		if len(records) < archiveBatchSize {
			return exported, nil
		}
	}
}

func (a *threatArchiver) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := a.RunOnce(ctx); err != nil && ctx.Err() == nil {
				a.log.Error("threat archive run failed", zap.Error(err))
			}
		}
	}
}

func (a *threatArchiver) objectKey() string {
	name := fmt.Sprintf("dt=%s/%s.jsonl.gz", timeNow().UTC().Format("2006-01-02"), uuid.NewString())
	if a.prefix == "" {
		return name
	}
	return a.prefix + "/" + name
}

// encodeJSONLGZ writes one JSON object per line into a gzip stream
func encodeJSONLGZ(records []models.RequestRecord) ([]byte, error) {
	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}

	enc := json.NewEncoder(gz)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			gz.Close()
			return nil, err
		}
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
