package memory

import (
	"context"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
)

type ApplicationRepository struct {
	applications *orderedMap[application.Application]
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{applications: newOrderedMap(application.Application.Clone)}
}

func (r *ApplicationRepository) Get(_ context.Context, id string) (*application.Application, error) {
	app, ok := r.applications.get(id)
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return &app, nil
}

func (r *ApplicationRepository) Put(_ context.Context, app application.Application) error {
	r.applications.put(app.ID, app)
	return nil
}

func (r *ApplicationRepository) Remove(_ context.Context, id string) error {
	if _, ok := r.applications.remove(id); !ok {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return nil
}

func (r *ApplicationRepository) List(_ context.Context) ([]application.Application, error) {
	return r.applications.snapshot(), nil
}
