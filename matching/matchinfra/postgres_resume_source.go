package matchinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
)

// PostgresResumeSource implements matching.ResumeSource against the resumes
// table. Only the most recently uploaded resume per user is searchable.
type PostgresResumeSource struct {
	db *sqlx.DB
}

// NewPostgresResumeSource creates a Postgres-backed resume source.
func NewPostgresResumeSource(db *sqlx.DB) matching.ResumeSource {
	return &PostgresResumeSource{db: db}
}

// RawResumeText returns the latest extracted resume text for a user.
func (s *PostgresResumeSource) RawResumeText(ctx context.Context, userID kernel.UserID) (string, error) {
	query := `
		SELECT raw_text
		FROM resumes
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
		LIMIT 1`

	var rawText string
	err := s.db.GetContext(ctx, &rawText, query, userID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("no resume stored for user %s", userID)
	}
	if err != nil {
		return "", fmt.Errorf("load resume text: %w", err)
	}
	return rawText, nil
}
