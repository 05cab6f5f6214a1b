package mystore

import (
	"context"
	"sync"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	s.Lock()
	defer s.Unlock()

	// The store itself marks the transaction: other stores sharing this context still lock themselves
	ctx := context.WithValue(c, ctxTransactionKey{}, s)

	return f(ctx)
}

func (s *InMemoryStore[T]) inTransaction(c context.Context) bool {
	owner, _ := c.Value(ctxTransactionKey{}).(*InMemoryStore[T])
	return owner == s
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	s.Items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.Items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) Delete(c context.Context, uid string) error {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	delete(s.Items, uid)

	return nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	result := make([]T, 0, len(s.Items))
	for _, v := range s.Items {
		result = append(result, v)
	}

	return result, nil
}

func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	return filterAndSort(all, filters, orderByField)
}
