package job

import "context"

// Repository is an ordered id → Post map. Put replaces an existing entry in place, List
// returns a snapshot in insertion order.
type Repository interface {
	Get(ctx context.Context, id string) (*Post, error)
	Put(ctx context.Context, post Post) error
	Remove(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context) ([]Post, error)
}
