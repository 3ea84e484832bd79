package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
	"jobboard/internal/events"
)

type JobService struct {
	repos  *Repositories
	events events.Publisher
	logger *zap.Logger
}

func NewJobService(repos *Repositories, publisher events.Publisher, logger *zap.Logger) *JobService {
	return &JobService{repos: repos, events: publisher, logger: logger}
}

// Create validates the caller supplied fields and stores a new ACTIVE post. Server owned
// fields on the input are ignored.
func (s *JobService) Create(ctx context.Context, p job.Post) (*job.Post, error) {
	if fields := validateNewPost(p); len(fields) > 0 {
		return nil, common.NewValidationError("invalid job post", fields)
	}
	p.ID = common.NewID()
	p.CreatedAt = common.Now()
	p.UpdatedAt = nil
	p.Status = job.StatusActive
	p.Applicants = []string{}

	unlock := s.repos.lock()
	defer unlock()
	if err := s.repos.Jobs.Put(ctx, p); err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.JobCreated, map[string]string{"job_id": p.ID, "category": p.Category})
	return &p, nil
}

func (s *JobService) List(ctx context.Context, filter job.Filter) ([]job.Post, error) {
	posts, err := s.repos.Jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]job.Post, 0, len(posts))
	for _, p := range posts {
		if filter.Matches(p) {
			items = append(items, p)
		}
	}
	return items, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*job.Post, error) {
	return s.repos.Jobs.Get(ctx, id)
}

func (s *JobService) Update(ctx context.Context, id string, patch job.Patch) (*job.Post, error) {
	unlock := s.repos.lock()
	defer unlock()
	current, err := s.repos.Jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if fields := validatePatch(patch); len(fields) > 0 {
		return nil, common.NewValidationError("invalid job post update", fields)
	}
	updated := patch.Apply(*current)
	now := common.Now()
	updated.UpdatedAt = &now
	if err := s.repos.Jobs.Put(ctx, updated); err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.JobUpdated, map[string]string{"job_id": id, "status": string(updated.Status)})
	return &updated, nil
}

func (s *JobService) Delete(ctx context.Context, id string) (*job.Post, error) {
	unlock := s.repos.lock()
	defer unlock()
	removed, err := s.repos.Jobs.Remove(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.JobDeleted, map[string]string{"job_id": id, "applicants": fmt.Sprintf("%d", len(removed.Applicants))})
	return removed, nil
}
