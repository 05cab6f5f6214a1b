package mystore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/postgres"
)

type ctxTransactionKey struct{}

type Filter struct {
	Field   string
	Compare string
	Value   any
}

//go:generate mockgen -source=api.go -package mystore -destination store_mock.go Store
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	// List returns every entity of the kind, unpaged
	List(c context.Context) ([]T, error)
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
}

func New[T any](c context.Context) (Store[T], func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudStore[T](c)
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return newSQLStore[T](c, postgres.Open(dsn))
	}

	return NewInMemoryStore[T](c)
}

// kindOf derives the entity kind from the unqualified type name
func kindOf[T any]() string {
	val := new(T)
	kind := fmt.Sprintf("%T", *val)
	if idx := strings.LastIndex(kind, "."); idx >= 0 {
		kind = kind[idx+1:]
	}
	return kind
}
