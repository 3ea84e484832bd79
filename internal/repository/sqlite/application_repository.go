package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
)

type ApplicationRepository struct {
	applications table[application.Application]
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{applications: table[application.Application]{db: db, name: "job_applications"}}
}

func (r *ApplicationRepository) Get(ctx context.Context, id string) (*application.Application, error) {
	app, err := r.applications.get(ctx, id)
	if err != nil {
		if errors.Is(err, errNoEntry) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) Put(ctx context.Context, app application.Application) error {
	if err := r.applications.put(ctx, app.ID, app); err != nil {
		return common.NewError(common.CodeInternal, "failed to save application", err)
	}
	return nil
}

func (r *ApplicationRepository) Remove(ctx context.Context, id string) error {
	if _, err := r.applications.remove(ctx, id); err != nil {
		if errors.Is(err, errNoEntry) {
			return common.NewError(common.CodeNotFound, "application not found", err)
		}
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	items, err := r.applications.values(ctx)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return items, nil
}
