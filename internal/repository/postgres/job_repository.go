package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

const jobColumns = `id, title, company, location, description, requirements, salary_min, salary_max, salary_currency, employment_type, category, contact_email, status, applicants, created_at, updated_at`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Get(ctx context.Context, id string) (*job.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM job_posts WHERE id = $1`, id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job post not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job post", err)
	}
	return post, nil
}

func (r *JobRepository) Put(ctx context.Context, p job.Post) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO job_posts (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, company = EXCLUDED.company, location = EXCLUDED.location,
			description = EXCLUDED.description, requirements = EXCLUDED.requirements, salary_min = EXCLUDED.salary_min,
			salary_max = EXCLUDED.salary_max, salary_currency = EXCLUDED.salary_currency, employment_type = EXCLUDED.employment_type,
			category = EXCLUDED.category, contact_email = EXCLUDED.contact_email, status = EXCLUDED.status,
			applicants = EXCLUDED.applicants, created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`,
		p.ID, p.Title, p.Company, p.Location, p.Description, pq.Array(nonNil(p.Requirements)), p.Salary.Min, p.Salary.Max,
		p.Salary.Currency, p.EmploymentType, p.Category, p.ContactEmail, p.Status, pq.Array(nonNil(p.Applicants)), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to save job post", err)
	}
	return nil
}

func (r *JobRepository) Remove(ctx context.Context, id string) (*job.Post, error) {
	row := r.db.QueryRowContext(ctx, `DELETE FROM job_posts WHERE id = $1 RETURNING `+jobColumns, id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job post not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to delete job post", err)
	}
	return post, nil
}

func (r *JobRepository) List(ctx context.Context) ([]job.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM job_posts ORDER BY seq`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job posts", err)
	}
	defer rows.Close()
	items := []job.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job post", err)
		}
		items = append(items, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job posts", err)
	}
	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*job.Post, error) {
	var p job.Post
	var updatedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &p.Description, pq.Array(&p.Requirements), &p.Salary.Min, &p.Salary.Max,
		&p.Salary.Currency, &p.EmploymentType, &p.Category, &p.ContactEmail, &p.Status, pq.Array(&p.Applicants), &p.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = nullTime(updatedAt)
	p.Requirements = nonNil(p.Requirements)
	p.Applicants = nonNil(p.Applicants)
	return &p, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
