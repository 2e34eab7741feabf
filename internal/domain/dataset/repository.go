package dataset

import "context"

// Repository receives finished datasets. Replace overwrites everything the
// previous run stored.
type Repository interface {
	Replace(ctx context.Context, data Dataset) error
}
