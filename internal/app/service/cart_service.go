package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/ikkim/shopit-client/internal/api"
	"github.com/ikkim/shopit-client/internal/app/model"
	"github.com/ikkim/shopit-client/pkg/logger"
)

var (
	ErrCartItemNotFound = errors.New("장바구니 항목을 찾을 수 없습니다.")
)

type CartService interface {
	GetCartItems(ctx context.Context, email string) ([]model.CartItem, error)
	// AddToCart is idempotent by intent: an existing row for the same
	// product gets its quantity incremented instead of a duplicate row.
	// The check-then-act sequence is not atomic at the transport level,
	// so two concurrent adds for one product can still race.
	AddToCart(ctx context.Context, email, productID string) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, email, cartItemID string, quantity int) (*model.CartItem, error)
	RemoveFromCart(ctx context.Context, email, cartItemID string) error
	Clear(ctx context.Context, email string) error
}

type cartService struct {
	client     *api.Client
	productSvc ProductService
}

func NewCartService(client *api.Client, productSvc ProductService) CartService {
	return &cartService{
		client:     client,
		productSvc: productSvc,
	}
}

func (s *cartService) GetCartItems(ctx context.Context, email string) ([]model.CartItem, error) {
	if email == "" {
		return nil, ErrLoginRequired
	}

	params := url.Values{}
	params.Set("email", email)

	body, err := s.client.Get(ctx, "/cart", params)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	var items []model.CartItem
	if err := api.DecodeJSON(body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *cartService) AddToCart(ctx context.Context, email, productID string) (*model.CartItem, error) {
	if email == "" {
		return nil, ErrLoginRequired
	}

	logger.Info("Adding item to cart", map[string]interface{}{
		"email":      email,
		"product_id": productID,
	})

	product, err := s.productSvc.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, err
	}

	items, err := s.GetCartItems(ctx, email)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.ProductID == productID {
			logger.Debug("Product already in cart, incrementing quantity", map[string]interface{}{
				"cart_item_id": item.ID,
				"old_qty":      item.Quantity,
			})
			return s.patchQuantity(ctx, item.ID, item.Quantity+1)
		}
	}

	now := time.Now()
	payload := model.CartItem{
		ProductID:   productID,
		ProductName: product.Name,
		Price:       product.Price,
		Image:       product.Image,
		Email:       email,
		Quantity:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	body, err := s.client.Post(ctx, "/cart", payload)
	if err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"email":      email,
			"product_id": productID,
		})
		return nil, err
	}

	var created model.CartItem
	if err := api.DecodeJSON(body, &created); err != nil {
		return nil, err
	}

	logger.Info("Cart item added", map[string]interface{}{
		"cart_item_id": created.ID,
	})
	return &created, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, email, cartItemID string, quantity int) (*model.CartItem, error) {
	if email == "" {
		return nil, ErrLoginRequired
	}

	logger.Info("Updating cart item quantity", map[string]interface{}{
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})
	return s.patchQuantity(ctx, cartItemID, quantity)
}

func (s *cartService) patchQuantity(ctx context.Context, cartItemID string, quantity int) (*model.CartItem, error) {
	payload := map[string]interface{}{
		"quantity":  quantity,
		"updatedAt": time.Now(),
	}

	body, err := s.client.Patch(ctx, "/cart/"+url.PathEscape(cartItemID), payload)
	if err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	var item model.CartItem
	if err := api.DecodeJSON(body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, email, cartItemID string) error {
	if email == "" {
		return ErrLoginRequired
	}

	logger.Info("Removing cart item", map[string]interface{}{
		"cart_item_id": cartItemID,
	})

	if _, err := s.client.Delete(ctx, "/cart/"+url.PathEscape(cartItemID)); err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, email string) error {
	items, err := s.GetCartItems(ctx, email)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := s.RemoveFromCart(ctx, email, item.ID); err != nil {
			return err
		}
	}

	logger.Info("Cart cleared", map[string]interface{}{
		"email": email,
		"count": len(items),
	})
	return nil
}
