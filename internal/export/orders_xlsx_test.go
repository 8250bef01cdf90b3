package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ikkim/shopit-client/internal/app/model"
)

func testOrders() []model.Order {
	date := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	return []model.Order{
		{
			OrderNumber:   "ORD-2025-03-14-042",
			OrderDate:     date,
			OrderStatus:   model.OrderStatusPlaced,
			PaymentMethod: model.PaymentMethodCard,
			PaymentStatus: model.PaymentStatusCompleted,
			OrderItems: []model.OrderItem{
				{Name: "우동 밀키트", Price: 12000, Quantity: 2},
				{Name: "가쓰오부시", Price: 4000, Quantity: 1},
			},
			OrderSummary: model.OrderSummary{Subtotal: 28000, ShippingFee: 3000, TotalAmount: 31000},
		},
		{
			OrderNumber:   "ORD-2025-03-14-043",
			OrderDate:     date,
			OrderStatus:   model.OrderStatusDelivered,
			PaymentMethod: model.PaymentMethodCash,
			PaymentStatus: model.PaymentStatusCompleted,
			OrderItems: []model.OrderItem{
				{Name: "선물세트", Price: 100000, Quantity: 1},
			},
			OrderSummary: model.OrderSummary{Subtotal: 100000, ShippingFee: 0, TotalAmount: 100000},
		},
	}
}

func TestWriteOrderHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")

	require.NoError(t, WriteOrderHistory(path, testOrders()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(orderSheet)
	require.NoError(t, err)

	// Header plus one row per order item.
	require.Len(t, rows, 4)
	assert.Equal(t, orderHeaders, rows[0])

	assert.Equal(t, "ORD-2025-03-14-042", rows[1][0])
	assert.Equal(t, "우동 밀키트", rows[1][5])
	assert.Equal(t, "2", rows[1][6])
	assert.Equal(t, "24000", rows[1][8])

	assert.Equal(t, "ORD-2025-03-14-042", rows[2][0])
	assert.Equal(t, "가쓰오부시", rows[2][5])

	assert.Equal(t, "ORD-2025-03-14-043", rows[3][0])
	assert.Equal(t, "0", rows[3][9])
	assert.Equal(t, "100000", rows[3][10])
}

func TestWriteOrderHistoryEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")

	require.NoError(t, WriteOrderHistory(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(orderSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "only the header remains")
}
