// Package export writes client-side reports of backend data.
package export

import (
	"fmt"

	"github.com/ikkim/shopit-client/internal/app/model"
	"github.com/ikkim/shopit-client/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const orderSheet = "주문내역"

var orderHeaders = []string{
	"주문번호", "주문일", "주문상태", "결제수단", "결제상태",
	"상품명", "수량", "단가", "상품합계", "배송비", "총 결제금액",
}

// WriteOrderHistory writes one row per order item to an XLSX file.
// Order-level columns (배송비, 총 결제금액) are repeated on each of the
// order's rows so the sheet stays filterable.
func WriteOrderHistory(path string, orders []model.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(orderSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range orderHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(orderSheet, cell, header); err != nil {
			return err
		}
	}

	row := 2
	for _, order := range orders {
		for _, item := range order.OrderItems {
			values := []interface{}{
				order.OrderNumber,
				order.OrderDate.Format("2006-01-02 15:04"),
				string(order.OrderStatus),
				string(order.PaymentMethod),
				string(order.PaymentStatus),
				item.Name,
				item.Quantity,
				item.Price,
				item.Price * int64(item.Quantity),
				order.OrderSummary.ShippingFee,
				order.OrderSummary.TotalAmount,
			}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(orderSheet, cell, value); err != nil {
					return err
				}
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save order history: %w", err)
	}

	logger.Info("Order history exported", map[string]interface{}{
		"path":   path,
		"orders": len(orders),
		"rows":   row - 2,
	})
	return nil
}
