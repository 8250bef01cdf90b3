package model

import "time"

type OrderStatus string   // 주문 상태 코드
type PaymentStatus string // 결제 상태 코드
type PaymentMethod string // 결제 수단

const (
	OrderStatusPlaced    OrderStatus = "주문완료"
	OrderStatusShipping  OrderStatus = "배송중"
	OrderStatusDelivered OrderStatus = "배송완료"

	PaymentStatusCompleted PaymentStatus = "결제완료"

	PaymentMethodCard PaymentMethod = "신용카드"
	PaymentMethodCash PaymentMethod = "현금"
)

// ShippingAddress 배송지 정보
type ShippingAddress struct {
	Recipient     string `json:"recipient"`     // 수령인
	Phone         string `json:"phone"`         // 연락처
	Address       string `json:"address"`       // 주소
	DetailAddress string `json:"detailAddress"` // 상세 주소
}

// OrderItem 주문 시점의 장바구니 항목 스냅샷
type OrderItem struct {
	ProductID string `json:"productId"` // 상품 ID
	Name      string `json:"name"`      // 상품명
	Price     int64  `json:"price"`     // 단가
	Quantity  int    `json:"quantity"`  // 수량
	Image     string `json:"image"`     // 이미지 URL
}

// OrderSummary 주문 금액 요약
type OrderSummary struct {
	Subtotal    int64 `json:"subtotal"`    // 상품 합계
	ShippingFee int64 `json:"shippingFee"` // 배송비
	TotalAmount int64 `json:"totalAmount"` // 총 결제 금액
}

// Order 생성 후에는 수정되지 않는다. 주문 항목은 생성 시점의
// 장바구니 내용 스냅샷이며 이후 상품 정보가 바뀌어도 영향받지 않는다.
type Order struct {
	ID              string          `json:"id"`              // 주문 ID
	UserEmail       string          `json:"userEmail"`       // 주문자 이메일
	OrderNumber     string          `json:"orderNumber"`     // 주문 번호 (클라이언트 생성)
	OrderDate       time.Time       `json:"orderDate"`       // 주문 시각
	OrderStatus     OrderStatus     `json:"orderStatus"`     // 주문 상태
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`   // 결제 수단
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`   // 결제 상태
	ShippingAddress ShippingAddress `json:"shippingAddress"` // 배송지
	OrderItems      []OrderItem     `json:"orderItems"`      // 주문 항목 스냅샷
	OrderSummary    OrderSummary    `json:"orderSummary"`    // 금액 요약
}
