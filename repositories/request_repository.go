package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogem/honeypot-telemetry/models"
)

// ErrInvalidRecord is returned when a record misses a required field
var ErrInvalidRecord = errors.New("invalid request record")

const (
	defaultLimit = 100
	maxLimit     = 1000

	statsWindow  = 24 * time.Hour
	rollupWindow = 7 * 24 * time.Hour
	rollupRows   = 20
)

var timeNow = func() time.Time {
	return time.Now()
}

// RequestRepository is the append-only telemetry log
type RequestRepository interface {
	Create(ctx context.Context, record *models.RequestRecord) error
	Recent(ctx context.Context, limit int) ([]models.RequestRecord, error)
	ByAddress(ctx context.Context, address string, limit int) ([]models.RequestRecord, error)
	Stats(ctx context.Context) (*models.Stats, error)
	ThreatFeed(ctx context.Context, limit int) ([]models.RequestRecord, error)
	IPRollup(ctx context.Context) ([]models.IPRollup, error)
	ThreatsAfter(ctx context.Context, afterID int64, limit int) ([]models.RequestRecord, error)
}

// requestRepository implements RequestRepository on SQLite
type requestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *sql.DB) RequestRepository {
	return &requestRepository{db: db}
}

const selectColumns = `id, timestamp, ip, method, path, status, user_agent, referrer, params, geoip, notes`

// threatPredicate mirrors the detector's admin/login rule; GLOB is case-sensitive like it
const threatPredicate = `(notes IS NOT NULL OR path GLOB '*admin*' OR path GLOB '*login*')`

// Create sanitizes, validates and inserts a record, setting its ID
func (r *requestRepository) Create(ctx context.Context, record *models.RequestRecord) error {
	// a field made only of NUL bytes is empty once stored
	clean := record.Sanitized()
	if errs := clean.Validate(); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(errs, ", "))
	}

	query := `
		INSERT INTO requests (timestamp, ip, method, path, status, user_agent, referrer, params, geoip, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		formatTimestamp(clean.Timestamp),
		clean.ClientAddress,
		clean.Method,
		clean.Path,
		clean.Status,
		nullable(clean.UserAgent),
		nullable(clean.Referrer),
		nullable(clean.Params),
		nullable(clean.Geo),
		nullable(clean.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to insert request record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get request record ID: %w", err)
	}
	record.ID = id

	return nil
}

// Recent returns the newest records first
func (r *requestRepository) Recent(ctx context.Context, limit int) ([]models.RequestRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM requests ORDER BY timestamp DESC, id DESC LIMIT ?`
	return r.queryRecords(ctx, query, clampLimit(limit))
}

// ByAddress returns the newest records for one client address
func (r *requestRepository) ByAddress(ctx context.Context, address string, limit int) ([]models.RequestRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM requests WHERE ip = ? ORDER BY timestamp DESC, id DESC LIMIT ?`
	return r.queryRecords(ctx, query, address, clampLimit(limit))
}

// ThreatFeed returns the newest records that were annotated or probe admin/login paths
func (r *requestRepository) ThreatFeed(ctx context.Context, limit int) ([]models.RequestRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM requests WHERE ` + threatPredicate + ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	return r.queryRecords(ctx, query, clampLimit(limit))
}

// ThreatsAfter returns threat feed rows with an ID above afterID in insertion order
func (r *requestRepository) ThreatsAfter(ctx context.Context, afterID int64, limit int) ([]models.RequestRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM requests WHERE id > ? AND ` + threatPredicate + ` ORDER BY id ASC LIMIT ?`
	return r.queryRecords(ctx, query, afterID, clampLimit(limit))
}

// Stats counts all records, distinct addresses and records from the last 24 hours
func (r *requestRepository) Stats(ctx context.Context) (*models.Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(DISTINCT ip),
			COALESCE(SUM(CASE WHEN timestamp > ? THEN 1 ELSE 0 END), 0)
		FROM requests
	`

	var stats models.Stats
	cutoff := formatTimestamp(timeNow().Add(-statsWindow))
	if err := r.db.QueryRowContext(ctx, query, cutoff).Scan(&stats.Total, &stats.UniqueIPs, &stats.Last24Hours); err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	return &stats, nil
}

// IPRollup aggregates the busiest addresses of the trailing seven days
func (r *requestRepository) IPRollup(ctx context.Context) ([]models.IPRollup, error) {
	cutoff := formatTimestamp(timeNow().Add(-rollupWindow))

	topQuery := `
		SELECT ip, COUNT(*) AS count, MAX(timestamp) AS last_seen
		FROM requests
		WHERE timestamp > ?
		GROUP BY ip
		ORDER BY count DESC, last_seen DESC, ip ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, topQuery, cutoff, rollupRows)
	if err != nil {
		return nil, fmt.Errorf("failed to query ip rollup: %w", err)
	}
	defer rows.Close()

	rollups := []models.IPRollup{}
	index := make(map[string]int)
	for rows.Next() {
		var rollup models.IPRollup
		var lastSeen string

		if err := rows.Scan(&rollup.Address, &rollup.Count, &lastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan ip rollup: %w", err)
		}
		if rollup.LastSeen, err = parseTimestamp(lastSeen); err != nil {
			return nil, err
		}

		index[rollup.Address] = len(rollups)
		rollups = append(rollups, rollup)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ip rollup: %w", err)
	}
	if len(rollups) == 0 {
		return rollups, nil
	}

	if err := r.fillRollupDetails(ctx, cutoff, rollups, index); err != nil {
		return nil, err
	}

	return rollups, nil
}

// fillRollupDetails collects distinct paths and labels per address.
// Done in Go because GROUP_CONCAT(DISTINCT ...) cannot take a separator that
// stays unambiguous for arbitrary paths.
func (r *requestRepository) fillRollupDetails(ctx context.Context, cutoff string, rollups []models.IPRollup, index map[string]int) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(rollups)), ",")
	query := `
		SELECT DISTINCT ip, path, notes
		FROM requests
		WHERE timestamp > ? AND ip IN (` + placeholders + `)
	`

	args := make([]any, 0, len(rollups)+1)
	args = append(args, cutoff)
	for _, rollup := range rollups {
		args = append(args, rollup.Address)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query ip rollup details: %w", err)
	}
	defer rows.Close()

	paths := make([]map[string]struct{}, len(rollups))
	notes := make([]map[string]struct{}, len(rollups))
	for i := range rollups {
		paths[i] = make(map[string]struct{})
		notes[i] = make(map[string]struct{})
	}

	for rows.Next() {
		var ip, path string
		var note sql.NullString
		if err := rows.Scan(&ip, &path, &note); err != nil {
			return fmt.Errorf("failed to scan ip rollup details: %w", err)
		}

		i, ok := index[ip]
		if !ok {
			continue
		}
		paths[i][path] = struct{}{}
		if note.Valid {
			for _, label := range models.SplitNotes(note.String) {
				notes[i][label] = struct{}{}
			}
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating ip rollup details: %w", err)
	}

	for i := range rollups {
		rollups[i].DistinctPaths = models.SortedKeys(paths[i])
		rollups[i].DistinctNotes = models.SortedKeys(notes[i])
	}

	return nil
}

func (r *requestRepository) queryRecords(ctx context.Context, query string, args ...any) ([]models.RequestRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query request records: %w", err)
	}
	defer rows.Close()

	records := []models.RequestRecord{}
	for rows.Next() {
		var record models.RequestRecord
		var timestamp string
		var userAgent, referrer, params, geo, notes sql.NullString

		err := rows.Scan(
			&record.ID,
			&timestamp,
			&record.ClientAddress,
			&record.Method,
			&record.Path,
			&record.Status,
			&userAgent,
			&referrer,
			&params,
			&geo,
			&notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request record: %w", err)
		}

		if record.Timestamp, err = parseTimestamp(timestamp); err != nil {
			return nil, err
		}

		// Handle nullable fields
		record.UserAgent = fromNullString(userAgent)
		record.Referrer = fromNullString(referrer)
		record.Params = fromNullString(params)
		record.Geo = fromNullString(geo)
		record.Notes = fromNullString(notes)

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request records: %w", err)
	}

	return records, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(models.TimestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(models.TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
