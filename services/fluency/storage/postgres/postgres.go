package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/eduvox/backend/pkg/logger"
	"github.com/eduvox/backend/services/fluency/entity"
	"github.com/eduvox/backend/services/fluency/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS fluency_reports (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	source     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	fluency    JSONB NOT NULL,
	rendered   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS fluency_reports_owner_created_idx
	ON fluency_reports (owner_id, created_at DESC);
`

type Storage struct {
	db *sql.DB
}

var _ storage.Storage = (*Storage)(nil)

// Open connects with the lib/pq driver and makes sure the schema exists.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) SaveReport(ctx context.Context, report *entity.Report) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(report.Fluency)
	if err != nil {
		return fmt.Errorf("failed to marshal fluency report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO fluency_reports (id, owner_id, source, created_at, fluency, rendered)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		report.ID, report.OwnerID, report.Source, report.CreatedAt, payload, report.Rendered,
	)
	if err != nil {
		log.Error("failed to save report", "error", err)
		return fmt.Errorf("failed to save report: %w", err)
	}
	log.Debug("saved report", "id", report.ID)

	return nil
}

func (s *Storage) GetReport(ctx context.Context, id string) (*entity.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, source, created_at, fluency, rendered
		 FROM fluency_reports WHERE id = $1`, id)

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

func (s *Storage) ListReports(ctx context.Context, ownerID string) ([]*entity.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, source, created_at, fluency, rendered
		 FROM fluency_reports WHERE owner_id = $1
		 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*entity.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return reports, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*entity.Report, error) {
	var (
		report  entity.Report
		payload []byte
	)
	if err := row.Scan(&report.ID, &report.OwnerID, &report.Source, &report.CreatedAt, &payload, &report.Rendered); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &report.Fluency); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fluency report: %w", err)
	}

	return &report, nil
}
