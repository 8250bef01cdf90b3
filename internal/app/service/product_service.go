package service

import (
	"context"
	"net/url"

	"github.com/ikkim/shopit-client/internal/api"
	"github.com/ikkim/shopit-client/internal/app/model"
	"github.com/ikkim/shopit-client/pkg/logger"
)

type ProductService interface {
	GetProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProductDetail(ctx context.Context, id string) (*model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
}

type productService struct {
	client *api.Client
}

func NewProductService(client *api.Client) ProductService {
	return &productService{client: client}
}

func (s *productService) GetProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	params := url.Values{}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.Query != "" {
		params.Set("q", filter.Query)
	}
	if filter.Popular {
		params.Set("isPopular", "true")
	}
	if filter.New {
		params.Set("isNew", "true")
	}

	body, err := s.client.Get(ctx, "/products", params)
	if err != nil {
		logger.Error("Failed to fetch products", err, map[string]interface{}{
			"category": filter.Category,
			"query":    filter.Query,
		})
		return nil, err
	}

	var products []model.Product
	if err := api.DecodeJSON(body, &products); err != nil {
		return nil, err
	}

	logger.Debug("Products fetched", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductDetail(ctx context.Context, id string) (*model.Product, error) {
	body, err := s.client.Get(ctx, "/products/"+url.PathEscape(id), nil)
	if err != nil {
		logger.Error("Failed to fetch product detail", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	var product model.Product
	if err := api.DecodeJSON(body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return s.GetProducts(ctx, model.ProductFilter{Query: query})
}

func (s *productService) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return s.GetProducts(ctx, model.ProductFilter{Category: category})
}
