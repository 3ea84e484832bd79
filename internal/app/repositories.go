package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/events"
)

// Repositories owns both collections for the lifetime of the process. Mutating
// operations of every service hold its write lock from the first read to the last write,
// so concurrent requests never interleave a read-validate-mutate sequence.
type Repositories struct {
	Jobs         job.Repository
	Applications application.Repository

	mu sync.Mutex
}

func NewRepositories(jobs job.Repository, applications application.Repository) *Repositories {
	return &Repositories{Jobs: jobs, Applications: applications}
}

func (r *Repositories) lock() func() {
	r.mu.Lock()
	return r.mu.Unlock
}

func publish(ctx context.Context, publisher events.Publisher, logger *zap.Logger, name string, payload map[string]string) {
	if publisher == nil {
		return
	}
	event := events.Event{Name: name, Payload: payload, OccurredAt: common.Now()}
	if err := publisher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event publish failed", zap.String("event", name), zap.Error(err))
	}
}
