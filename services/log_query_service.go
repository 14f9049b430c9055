package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/blogem/honeypot-telemetry/models"
	"github.com/blogem/honeypot-telemetry/repositories"
)

// LogQueryService is the read side over the telemetry log
type LogQueryService interface {
	GetLogs(ctx context.Context, limit int, address string) ([]models.RequestRecord, error)
	GetStats(ctx context.Context) (*models.Stats, error)
	GetThreats(ctx context.Context, limit int) ([]models.RequestRecord, error)
	GetIPRollup(ctx context.Context) ([]models.IPRollup, error)
}

type logQueryService struct {
	requestRepo repositories.RequestRepository
}

// NewLogQueryService creates a new log query service
func NewLogQueryService(requestRepo repositories.RequestRepository) LogQueryService {
	return &logQueryService{requestRepo: requestRepo}
}

// GetLogs returns recent records, narrowed to one client address when given
func (s *logQueryService) GetLogs(ctx context.Context, limit int, address string) ([]models.RequestRecord, error) {
	address = strings.TrimSpace(address)

	var records []models.RequestRecord
	var err error
	if address != "" {
		records, err = s.requestRepo.ByAddress(ctx, address, limit)
	} else {
		records, err = s.requestRepo.Recent(ctx, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get logs: %w", err)
	}

	return records, nil
}

// GetStats returns totals over the whole log
func (s *logQueryService) GetStats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.requestRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// GetThreats returns the newest suspicious records
func (s *logQueryService) GetThreats(ctx context.Context, limit int) ([]models.RequestRecord, error) {
	records, err := s.requestRepo.ThreatFeed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get threats: %w", err)
	}
	return records, nil
}

// GetIPRollup returns the busiest addresses of the last seven days
func (s *logQueryService) GetIPRollup(ctx context.Context) ([]models.IPRollup, error) {
	rollups, err := s.requestRepo.IPRollup(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ip rollup: %w", err)
	}
	return rollups, nil
}
