package matchinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/pkg/logx"
)

// upsertBatchSize caps how many records go into one upsert statement. Batches
// are written sequentially; a failed batch aborts the run and leaves earlier
// batches visible.
const upsertBatchSize = 100

// PgVectorStore implements matching.VectorStore on Postgres with the pgvector
// extension. Records are keyed by id, so re-ingesting a posting overwrites
// its chunks in place.
type PgVectorStore struct {
	db    *sqlx.DB
	table string
}

// NewPgVectorStore creates a Postgres-backed vector store writing to the
// given table.
func NewPgVectorStore(db *sqlx.DB, table string) matching.VectorStore {
	if table == "" {
		table = "job_vectors"
	}
	return &PgVectorStore{db: db, table: table}
}

type vectorRow struct {
	ID       string          `db:"id"`
	Score    float64         `db:"score"`
	Metadata json.RawMessage `db:"metadata"`
}

// ============================================================================
// Upsert
// ============================================================================

// Upsert writes records in sequential batches. Each record's metadata is
// stored as JSONB alongside its embedding and the model tag that produced it.
func (s *PgVectorStore) Upsert(ctx context.Context, records []matching.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	for start := 0; start < len(records); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.upsertBatch(ctx, records[start:end]); err != nil {
			return matching.ErrStoreFailed().WithCause(err).
				WithDetail("batch_start", start).
				WithDetail("batch_end", end)
		}
		logx.Debugf("Upserted vector batch %d-%d of %d", start, end, len(records))
	}

	return nil
}

func (s *PgVectorStore) upsertBatch(ctx context.Context, records []matching.VectorRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, embedding, model, metadata, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			model = EXCLUDED.model,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()`, s.table)

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		meta, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for record %s: %w", r.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, r.ID, pgvector.NewVector(r.Values), r.Model, meta); err != nil {
			return fmt.Errorf("upsert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert batch: %w", err)
	}
	return nil
}

// ============================================================================
// Query
// ============================================================================

// Query runs a cosine similarity search against records carrying the given
// model tag. An index populated by a different embedding backend is rejected
// rather than silently searched, since distances across models are
// meaningless. An empty index returns an empty slice.
func (s *PgVectorStore) Query(ctx context.Context, vector []float32, model string, topK int) ([]matching.QueryMatch, error) {
	if topK <= 0 {
		return []matching.QueryMatch{}, nil
	}

	storedModel, err := s.indexModel(ctx)
	if err != nil {
		return nil, matching.ErrStoreFailed().WithCause(err)
	}
	if storedModel == "" {
		return []matching.QueryMatch{}, nil
	}
	if storedModel != model {
		return nil, matching.ErrModelMismatch().
			WithDetail("index_model", storedModel).
			WithDetail("query_model", model)
	}

	query := fmt.Sprintf(`
		SELECT id,
		       1 - (embedding <=> $1) AS score,
		       metadata
		FROM %s
		WHERE model = $2
		ORDER BY embedding <=> $1
		LIMIT $3`, s.table)

	var rows []vectorRow
	if err := s.db.SelectContext(ctx, &rows, query, pgvector.NewVector(vector), model, topK); err != nil {
		return nil, matching.ErrStoreFailed().WithCause(err).
			WithDetail("operation", "similarity_search")
	}

	matches := make([]matching.QueryMatch, 0, len(rows))
	for _, row := range rows {
		var meta map[string]any
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &meta); err != nil {
				return nil, matching.ErrStoreFailed().WithCause(err).
					WithDetail("record_id", row.ID)
			}
		}
		matches = append(matches, matching.QueryMatch{
			ID:       row.ID,
			Score:    row.Score,
			Metadata: meta,
		})
	}

	return matches, nil
}

// indexModel returns the model tag on the most recently written record, or
// "" when the index is empty.
func (s *PgVectorStore) indexModel(ctx context.Context) (string, error) {
	query := fmt.Sprintf(`SELECT model FROM %s ORDER BY updated_at DESC LIMIT 1`, s.table)

	var model string
	err := s.db.GetContext(ctx, &model, query)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read index model: %w", err)
	}
	return model, nil
}
