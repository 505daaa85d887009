package customermock

import (
	"context"

	"lending-core/internal/domain/customer"
)

var _ customer.Directory = (*Directory)(nil)

// Directory is a function-backed mock; unset ExistsFn returns context.Canceled.
type Directory struct {
	ExistsFn func(ctx context.Context, customerID string) (bool, error)
}

// Known returns a directory that recognizes exactly the given ids.
func Known(ids ...string) *Directory {
	set := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		set[v] = struct{}{}
	}
	return &Directory{ExistsFn: func(_ context.Context, id string) (bool, error) {
		_, ok := set[id]
		return ok, nil
	}}
}

func (d *Directory) Exists(ctx context.Context, customerID string) (bool, error) {
	if d.ExistsFn != nil {
		return d.ExistsFn(ctx, customerID)
	}
	return false, context.Canceled
}
