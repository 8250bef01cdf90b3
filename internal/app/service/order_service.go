package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/ikkim/shopit-client/internal/api"
	"github.com/ikkim/shopit-client/internal/app/model"
	"github.com/ikkim/shopit-client/pkg/logger"
	"github.com/ikkim/shopit-client/pkg/util"
)

var (
	ErrEmptyCart           = errors.New("장바구니가 비어 있습니다.")
	ErrShippingInfoMissing = errors.New("배송지 정보를 모두 입력해주세요.")
)

// 배송비 정책: 상품 합계가 기준 금액 이상이면 무료.
const (
	freeShippingThreshold int64 = 100000
	baseShippingFee       int64 = 3000
)

type OrderService interface {
	CreateOrder(ctx context.Context, order model.Order) (*model.Order, error)
	GetOrders(ctx context.Context, email string) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	// CheckoutCart snapshots the current cart into a new order, then
	// empties the cart. The snapshot is immutable: later catalog edits
	// do not touch a created order.
	CheckoutCart(ctx context.Context, email string, address model.ShippingAddress, method model.PaymentMethod) (*model.Order, error)
}

type orderService struct {
	client  *api.Client
	cartSvc CartService
}

func NewOrderService(client *api.Client, cartSvc CartService) OrderService {
	return &orderService{
		client:  client,
		cartSvc: cartSvc,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, order model.Order) (*model.Order, error) {
	if order.UserEmail == "" {
		return nil, ErrLoginRequired
	}

	logger.Info("Creating order", map[string]interface{}{
		"email":        order.UserEmail,
		"order_number": order.OrderNumber,
		"items":        len(order.OrderItems),
	})

	body, err := s.client.Post(ctx, "/orders", order)
	if err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"email": order.UserEmail,
		})
		return nil, err
	}

	var created model.Order
	if err := api.DecodeJSON(body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *orderService) GetOrders(ctx context.Context, email string) ([]model.Order, error) {
	if email == "" {
		return nil, ErrLoginRequired
	}

	params := url.Values{}
	params.Set("userEmail", email)

	body, err := s.client.Get(ctx, "/orders", params)
	if err != nil {
		logger.Error("Failed to fetch orders", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	var orders []model.Order
	if err := api.DecodeJSON(body, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	body, err := s.client.Get(ctx, "/orders/"+url.PathEscape(id), nil)
	if err != nil {
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	var order model.Order
	if err := api.DecodeJSON(body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderService) CheckoutCart(ctx context.Context, email string, address model.ShippingAddress, method model.PaymentMethod) (*model.Order, error) {
	if email == "" {
		return nil, ErrLoginRequired
	}
	if address.Recipient == "" || address.Phone == "" || address.Address == "" || address.DetailAddress == "" {
		return nil, ErrShippingInfoMissing
	}

	items, err := s.cartSvc.GetCartItems(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	order := model.Order{
		UserEmail:       email,
		OrderNumber:     util.GenerateOrderNumber(now),
		OrderDate:       now,
		OrderStatus:     model.OrderStatusPlaced,
		PaymentMethod:   method,
		PaymentStatus:   model.PaymentStatusCompleted,
		ShippingAddress: address,
		OrderItems:      snapshotItems(items),
		OrderSummary:    summarize(items),
	}

	created, err := s.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	// The order is already placed; a failure while emptying the cart
	// leaves stale rows behind but must not fail the checkout.
	if err := s.cartSvc.Clear(ctx, email); err != nil {
		logger.Warn("Order created but cart could not be emptied", map[string]interface{}{
			"email":        email,
			"order_number": created.OrderNumber,
			"error":        err.Error(),
		})
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"email":        email,
		"order_number": created.OrderNumber,
		"total":        created.OrderSummary.TotalAmount,
	})
	return created, nil
}

func snapshotItems(items []model.CartItem) []model.OrderItem {
	snapshot := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, model.OrderItem{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return snapshot
}

func summarize(items []model.CartItem) model.OrderSummary {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}

	var shippingFee int64
	if subtotal < freeShippingThreshold {
		shippingFee = baseShippingFee
	}

	return model.OrderSummary{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		TotalAmount: subtotal + shippingFee,
	}
}
