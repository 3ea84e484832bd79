package memory

import (
	"context"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

// JobRepository keeps job posts in process memory.
type JobRepository struct {
	posts *orderedMap[job.Post]
}

func NewJobRepository() *JobRepository {
	return &JobRepository{posts: newOrderedMap(job.Post.Clone)}
}

func (r *JobRepository) Get(_ context.Context, id string) (*job.Post, error) {
	post, ok := r.posts.get(id)
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job post not found", nil)
	}
	return &post, nil
}

func (r *JobRepository) Put(_ context.Context, post job.Post) error {
	r.posts.put(post.ID, post)
	return nil
}

func (r *JobRepository) Remove(_ context.Context, id string) (*job.Post, error) {
	post, ok := r.posts.remove(id)
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job post not found", nil)
	}
	return &post, nil
}

func (r *JobRepository) List(_ context.Context) ([]job.Post, error) {
	return r.posts.snapshot(), nil
}
