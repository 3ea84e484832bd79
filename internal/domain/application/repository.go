package application

import "context"

// Repository is an ordered id → Application map. Remove only undoes a failed apply.
type Repository interface {
	Get(ctx context.Context, id string) (*Application, error)
	Put(ctx context.Context, app Application) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]Application, error)
}
