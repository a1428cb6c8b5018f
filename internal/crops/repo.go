package crops

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "crop prediction not found" }

// Repo persists recommendations for per-user history.
type Repo interface {
	Insert(ctx context.Context, rec Record) error
	ListByUsername(ctx context.Context, username string, limit int) ([]Record, error)
}
