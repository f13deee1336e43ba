package repository

import (
	"context"
	"fmt"

	"devdocs/samplemap/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordRepository archives classified crawl records. The joined breadcrumb
// path is the record's identity, so re-crawls upsert last-write-wins just
// like the in-memory lookup map.
type RecordRepository interface {
	SaveRecord(ctx context.Context, record domain.Record) error
}

type recordRepository struct {
	db *pgxpool.Pool
}

func NewRecordRepository(db *pgxpool.Pool) RecordRepository {
	return &recordRepository{
		db: db,
	}
}

func (r *recordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	query := `
	INSERT INTO crawl_records (path, type, url)
	VALUES ($1, $2, $3)
	ON CONFLICT (path)
	DO UPDATE SET type = $2, url = $3`
	_, err := r.db.Exec(ctx, query, record.Key(), record.Type.String(), record.URL)
	if err != nil {
		return fmt.Errorf("failed to save crawl record: %w", err)
	}

	return nil
}
