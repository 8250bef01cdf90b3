package model

type Product struct {
	ID          string  `json:"id"`          // 상품 ID
	Name        string  `json:"name"`        // 상품명
	Price       int64   `json:"price"`       // 가격 (원 단위 정수)
	Image       string  `json:"image"`       // 이미지 URL
	Description string  `json:"description"` // 상품 설명
	Category    string  `json:"category"`    // 카테고리
	Rating      float64 `json:"rating"`      // 평점
	ReviewCount int     `json:"reviewCount"` // 리뷰 수
	IsPopular   bool    `json:"isPopular"`   // 인기 상품 여부
	IsNew       bool    `json:"isNew"`       // 신상품 여부
}

// ProductFilter 상품 목록 조회 조건
type ProductFilter struct {
	Category string // 카테고리 필터 (빈 값이면 전체)
	Query    string // 검색어
	Popular  bool
	New      bool
}
