package postgres

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
)

const applicationColumns = `id, job_id, applicant_name, email, phone, resume_url, cover_letter, status, created_at, updated_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Get(ctx context.Context, id string) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) Put(ctx context.Context, app application.Application) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO job_applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET job_id = EXCLUDED.job_id, applicant_name = EXCLUDED.applicant_name, email = EXCLUDED.email,
			phone = EXCLUDED.phone, resume_url = EXCLUDED.resume_url, cover_letter = EXCLUDED.cover_letter, status = EXCLUDED.status,
			created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`,
		app.ID, app.JobID, app.ApplicantName, app.Email, app.Phone, app.ResumeURL, app.CoverLetter, app.Status, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return common.NewError(common.CodeConflict, "already applied to this job", err)
		}
		return common.NewError(common.CodeInternal, "failed to save application", err)
	}
	return nil
}

func (r *ApplicationRepository) Remove(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM job_applications ORDER BY seq`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	items := []application.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return items, nil
}

func scanApplication(row scanner) (*application.Application, error) {
	var app application.Application
	var updatedAt sql.NullTime
	if err := row.Scan(&app.ID, &app.JobID, &app.ApplicantName, &app.Email, &app.Phone, &app.ResumeURL, &app.CoverLetter, &app.Status, &app.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	app.CreatedAt = app.CreatedAt.UTC()
	app.UpdatedAt = nullTime(updatedAt)
	return &app, nil
}
