package model

import "time"

// CartItem 장바구니 항목. (email, productId) 쌍당 한 행이 유지되며
// 같은 상품을 다시 담으면 수량만 증가한다.
type CartItem struct {
	ID          string    `json:"id"`          // 장바구니 항목 ID
	ProductID   string    `json:"productId"`   // 상품 ID
	ProductName string    `json:"productName"` // 상품명 (담은 시점 스냅샷)
	Price       int64     `json:"price"`       // 단가 (담은 시점 스냅샷)
	Image       string    `json:"image"`       // 상품 이미지 URL
	Email       string    `json:"email"`       // 소유자 이메일
	Quantity    int       `json:"quantity"`    // 수량 (1 이상)
	CreatedAt   time.Time `json:"createdAt"`   // 생성 시각
	UpdatedAt   time.Time `json:"updatedAt"`   // 수정 시각
}
