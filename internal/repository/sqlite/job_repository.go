package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

type JobRepository struct {
	posts table[job.Post]
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{posts: table[job.Post]{db: db, name: "job_posts"}}
}

func (r *JobRepository) Get(ctx context.Context, id string) (*job.Post, error) {
	post, err := r.posts.get(ctx, id)
	if err != nil {
		if errors.Is(err, errNoEntry) {
			return nil, common.NewError(common.CodeNotFound, "job post not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job post", err)
	}
	return &post, nil
}

func (r *JobRepository) Put(ctx context.Context, post job.Post) error {
	if err := r.posts.put(ctx, post.ID, post); err != nil {
		return common.NewError(common.CodeInternal, "failed to save job post", err)
	}
	return nil
}

func (r *JobRepository) Remove(ctx context.Context, id string) (*job.Post, error) {
	post, err := r.posts.remove(ctx, id)
	if err != nil {
		if errors.Is(err, errNoEntry) {
			return nil, common.NewError(common.CodeNotFound, "job post not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to delete job post", err)
	}
	return &post, nil
}

func (r *JobRepository) List(ctx context.Context) ([]job.Post, error) {
	items, err := r.posts.values(ctx)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job posts", err)
	}
	return items, nil
}
