package store

import (
	"context"
	"sync"

	"github.com/ikkim/shopit-client/internal/app/model"
)

// ProductFetcher is the slice of the product service the store needs.
type ProductFetcher interface {
	GetProductDetail(ctx context.Context, id string) (*model.Product, error)
}

// ProductStore holds at most one "current product" for the detail view.
// Fetching a new product replaces the previous one; the view resets the
// store on unmount so stale data cannot leak into the next product view.
type ProductStore struct {
	mu      sync.RWMutex
	state   State[model.Product]
	fetcher ProductFetcher
}

func NewProductStore(fetcher ProductFetcher) *ProductStore {
	return &ProductStore{
		state:   Idle[model.Product](),
		fetcher: fetcher,
	}
}

// Fetch loads the product with the given id and replaces the current one.
func (s *ProductStore) Fetch(ctx context.Context, id string) error {
	s.mu.Lock()
	s.state = Loading[model.Product]()
	s.mu.Unlock()

	product, err := s.fetcher.GetProductDetail(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = Failed[model.Product](err)
		return err
	}
	s.state = Loaded(*product)
	return nil
}

// State returns the current view state.
func (s *ProductStore) State() State[model.Product] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Reset clears the current product (view unmount).
func (s *ProductStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Idle[model.Product]()
}
