package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_posts (
	seq BIGSERIAL,
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT NOT NULL,
	description TEXT NOT NULL,
	requirements TEXT[] NOT NULL DEFAULT '{}',
	salary_min DOUBLE PRECISION NOT NULL DEFAULT 0,
	salary_max DOUBLE PRECISION NOT NULL DEFAULT 0,
	salary_currency TEXT NOT NULL DEFAULT '',
	employment_type TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	applicants TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NULL
);

CREATE TABLE IF NOT EXISTS job_applications (
	seq BIGSERIAL,
	id TEXT PRIMARY KEY,
	job_id TEXT NOT NULL,
	applicant_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	resume_url TEXT NOT NULL,
	cover_letter TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS job_applications_job_email_idx ON job_applications (job_id, lower(email));
`

// Migrate creates the job board tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

const uniqueViolation = "23505"

// isUniqueViolation understands both drivers the service can run on.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time.UTC()
	return &value
}
