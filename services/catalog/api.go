package catalog

import (
	"context"
	"errors"
)

var (
	ErrDishNotFound   = errors.New("dish not found")
	ErrStorageFailure = errors.New("catalog storage failure")
)

// Accessor resolves dishes for consumers of the catalog.
// A dish that does not exist is reported via found=false, not as an error.
//
//go:generate mockgen -source=api.go -package catalog -destination accessor_mock.go Accessor
type Accessor interface {
	FindDishByUID(c context.Context, dishUID string) (Dish, bool, error)
}
