package postinginfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Ray3n-Hamd1/kariera/pkg/kernel"
	"github.com/Ray3n-Hamd1/kariera/posting"
)

// PostgresRepository implements posting.Repository on Postgres via sqlx.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a Postgres-backed posting repository.
func NewPostgresRepository(db *sqlx.DB) posting.Repository {
	return &PostgresRepository{db: db}
}

// postingRow maps the job_postings table. Skills live in a text[] column and
// salary in nullable columns, so the row shape differs from the domain model.
type postingRow struct {
	ID               string         `db:"id"`
	Title            string         `db:"title"`
	Company          string         `db:"company"`
	Location         string         `db:"location"`
	Description      string         `db:"description"`
	JobURL           string         `db:"job_url"`
	IsRemote         bool           `db:"is_remote"`
	JobType          string         `db:"job_type"`
	SalaryMin        sql.NullInt64  `db:"salary_min"`
	SalaryMax        sql.NullInt64  `db:"salary_max"`
	SalaryCurrency   sql.NullString `db:"salary_currency"`
	Skills           pq.StringArray `db:"skills"`
	Source           string         `db:"source"`
	IsActive         bool           `db:"is_active"`
	ViewCount        int            `db:"view_count"`
	ApplicationCount int            `db:"application_count"`
	PostedAt         time.Time      `db:"posted_at"`
	ExpiredAt        *time.Time     `db:"expired_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r postingRow) toDomain() *posting.JobPosting {
	p := &posting.JobPosting{
		ID:               kernel.PostingID(r.ID),
		Title:            r.Title,
		Company:          r.Company,
		Location:         r.Location,
		Description:      r.Description,
		JobURL:           r.JobURL,
		IsRemote:         r.IsRemote,
		JobType:          posting.JobType(r.JobType),
		Skills:           []string(r.Skills),
		Source:           r.Source,
		IsActive:         r.IsActive,
		ViewCount:        r.ViewCount,
		ApplicationCount: r.ApplicationCount,
		PostedAt:         r.PostedAt,
		ExpiredAt:        r.ExpiredAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.SalaryMin.Valid || r.SalaryMax.Valid {
		p.Salary = &posting.SalaryRange{
			Min:      int(r.SalaryMin.Int64),
			Max:      int(r.SalaryMax.Int64),
			Currency: r.SalaryCurrency.String,
		}
	}
	return p
}

func fromDomain(p *posting.JobPosting) postingRow {
	row := postingRow{
		ID:               p.ID.String(),
		Title:            p.Title,
		Company:          p.Company,
		Location:         p.Location,
		Description:      p.Description,
		JobURL:           p.JobURL,
		IsRemote:         p.IsRemote,
		JobType:          string(p.JobType),
		Skills:           pq.StringArray(p.Skills),
		Source:           p.Source,
		IsActive:         p.IsActive,
		ViewCount:        p.ViewCount,
		ApplicationCount: p.ApplicationCount,
		PostedAt:         p.PostedAt,
		ExpiredAt:        p.ExpiredAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Salary != nil {
		row.SalaryMin = sql.NullInt64{Int64: int64(p.Salary.Min), Valid: true}
		row.SalaryMax = sql.NullInt64{Int64: int64(p.Salary.Max), Valid: true}
		row.SalaryCurrency = sql.NullString{String: p.Salary.Currency, Valid: true}
	}
	return row
}

// ============================================================================
// Writes
// ============================================================================

// Upsert creates or replaces a posting by ID.
func (r *PostgresRepository) Upsert(ctx context.Context, p *posting.JobPosting) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query := `
		INSERT INTO job_postings (
			id, title, company, location, description, job_url, is_remote,
			job_type, salary_min, salary_max, salary_currency, skills, source,
			is_active, view_count, application_count, posted_at, expired_at,
			created_at, updated_at
		) VALUES (
			:id, :title, :company, :location, :description, :job_url, :is_remote,
			:job_type, :salary_min, :salary_max, :salary_currency, :skills, :source,
			:is_active, :view_count, :application_count, :posted_at, :expired_at,
			:created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			job_url = EXCLUDED.job_url,
			is_remote = EXCLUDED.is_remote,
			job_type = EXCLUDED.job_type,
			salary_min = EXCLUDED.salary_min,
			salary_max = EXCLUDED.salary_max,
			salary_currency = EXCLUDED.salary_currency,
			skills = EXCLUDED.skills,
			source = EXCLUDED.source,
			is_active = EXCLUDED.is_active,
			posted_at = EXCLUDED.posted_at,
			expired_at = EXCLUDED.expired_at,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, fromDomain(p)); err != nil {
		return posting.ErrStorageFailed().WithCause(err).WithDetail("posting_id", p.ID.String())
	}
	return nil
}

// Deactivate marks a posting inactive.
func (r *PostgresRepository) Deactivate(ctx context.Context, id kernel.PostingID) error {
	return r.exec(ctx, id,
		`UPDATE job_postings SET is_active = FALSE, updated_at = NOW() WHERE id = $1`)
}

// Expire marks a posting expired and inactive.
func (r *PostgresRepository) Expire(ctx context.Context, id kernel.PostingID) error {
	return r.exec(ctx, id,
		`UPDATE job_postings SET is_active = FALSE, expired_at = NOW(), updated_at = NOW() WHERE id = $1`)
}

// IncrementViewCount bumps the view counter.
func (r *PostgresRepository) IncrementViewCount(ctx context.Context, id kernel.PostingID) error {
	return r.exec(ctx, id,
		`UPDATE job_postings SET view_count = view_count + 1 WHERE id = $1`)
}

// IncrementApplicationCount bumps the application counter.
func (r *PostgresRepository) IncrementApplicationCount(ctx context.Context, id kernel.PostingID) error {
	return r.exec(ctx, id,
		`UPDATE job_postings SET application_count = application_count + 1 WHERE id = $1`)
}

func (r *PostgresRepository) exec(ctx context.Context, id kernel.PostingID, query string) error {
	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return posting.ErrStorageFailed().WithCause(err).WithDetail("posting_id", id.String())
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return posting.ErrStorageFailed().WithCause(err)
	}
	if affected == 0 {
		return posting.ErrPostingNotFound().WithDetail("posting_id", id.String())
	}
	return nil
}

// ============================================================================
// Reads
// ============================================================================

// GetByID retrieves a posting by ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id kernel.PostingID) (*posting.JobPosting, error) {
	var row postingRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM job_postings WHERE id = $1`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posting.ErrPostingNotFound().WithDetail("posting_id", id.String())
	}
	if err != nil {
		return nil, posting.ErrStorageFailed().WithCause(err)
	}
	return row.toDomain(), nil
}

// List retrieves postings with pagination, newest first.
func (r *PostgresRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[posting.JobPosting], error) {
	pagination = pagination.Normalize()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM job_postings`); err != nil {
		return nil, posting.ErrStorageFailed().WithCause(err)
	}

	var rows []postingRow
	query := `
		SELECT * FROM job_postings
		ORDER BY posted_at DESC
		LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, posting.ErrStorageFailed().WithCause(err)
	}

	items := make([]posting.JobPosting, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row.toDomain())
	}
	return kernel.NewPaginated(items, pagination.Page, pagination.PageSize, int(total)), nil
}

// ListActive retrieves every active posting.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]*posting.JobPosting, error) {
	var rows []postingRow
	query := `SELECT * FROM job_postings WHERE is_active = TRUE ORDER BY posted_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, posting.ErrStorageFailed().WithCause(err)
	}
	return toDomainSlice(rows), nil
}

// ListActiveByIDs retrieves the active postings among the given IDs.
func (r *PostgresRepository) ListActiveByIDs(ctx context.Context, ids []kernel.PostingID) ([]*posting.JobPosting, error) {
	if len(ids) == 0 {
		return []*posting.JobPosting{}, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	var rows []postingRow
	query := `SELECT * FROM job_postings WHERE is_active = TRUE AND id = ANY($1) ORDER BY posted_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(raw)); err != nil {
		return nil, posting.ErrStorageFailed().WithCause(err)
	}
	return toDomainSlice(rows), nil
}

// CountActive counts active postings.
func (r *PostgresRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM job_postings WHERE is_active = TRUE`); err != nil {
		return 0, posting.ErrStorageFailed().WithCause(err)
	}
	return count, nil
}

func toDomainSlice(rows []postingRow) []*posting.JobPosting {
	postings := make([]*posting.JobPosting, 0, len(rows))
	for _, row := range rows {
		postings = append(postings, row.toDomain())
	}
	return postings
}
