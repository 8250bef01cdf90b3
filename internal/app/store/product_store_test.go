package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikkim/shopit-client/internal/app/model"
)

type fakeFetcher struct {
	products map[string]model.Product
}

func (f *fakeFetcher) GetProductDetail(_ context.Context, id string) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("상품을 찾을 수 없습니다.")
	}
	return &p, nil
}

func TestProductStoreFetch(t *testing.T) {
	fetcher := &fakeFetcher{products: map[string]model.Product{
		"p-1": {ID: "p-1", Name: "우동 밀키트", Price: 12000},
	}}
	s := NewProductStore(fetcher)

	assert.Equal(t, StatusIdle, s.State().Status)

	require.NoError(t, s.Fetch(context.Background(), "p-1"))

	state := s.State()
	assert.Equal(t, StatusLoaded, state.Status)
	assert.Equal(t, "우동 밀키트", state.Data.Name)
	assert.NoError(t, state.Err)
}

func TestProductStoreFetchFailure(t *testing.T) {
	s := NewProductStore(&fakeFetcher{products: map[string]model.Product{}})

	err := s.Fetch(context.Background(), "missing")

	require.Error(t, err)
	state := s.State()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Error(t, state.Err)
}

func TestProductStoreFetchReplacesPrevious(t *testing.T) {
	fetcher := &fakeFetcher{products: map[string]model.Product{
		"p-1": {ID: "p-1", Name: "우동 밀키트"},
		"p-2": {ID: "p-2", Name: "가쓰오부시"},
	}}
	s := NewProductStore(fetcher)

	require.NoError(t, s.Fetch(context.Background(), "p-1"))
	require.NoError(t, s.Fetch(context.Background(), "p-2"))

	assert.Equal(t, "가쓰오부시", s.State().Data.Name)
}

func TestProductStoreReset(t *testing.T) {
	fetcher := &fakeFetcher{products: map[string]model.Product{
		"p-1": {ID: "p-1", Name: "우동 밀키트"},
	}}
	s := NewProductStore(fetcher)

	require.NoError(t, s.Fetch(context.Background(), "p-1"))
	s.Reset()

	state := s.State()
	assert.Equal(t, StatusIdle, state.Status)
	assert.Empty(t, state.Data.Name)
}
