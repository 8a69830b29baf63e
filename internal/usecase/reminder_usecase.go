package usecase

import (
	"context"
	"fmt"
	"strings"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"
)

// ReminderUsecase は未処理の注文と在庫少なめの商品を数えるだけ。書き込みはしない
type ReminderUsecase struct {
	orders    repo.OrderRepository
	products  repo.ProductRepository
	threshold int64
}

func NewReminderUsecase(orders repo.OrderRepository, products repo.ProductRepository, threshold int64) *ReminderUsecase {
	return &ReminderUsecase{orders: orders, products: products, threshold: threshold}
}

type Reminder struct {
	PendingOrders int64 `json:"pending_orders"`
	LowStockCount int   `json:"low_stock_count"`
	Message       string `json:"message"`
}

// どちらも0なら通知しない
func (r Reminder) ShouldNotify() bool {
	return r.PendingOrders > 0 || r.LowStockCount > 0
}

func (u *ReminderUsecase) Check(ctx context.Context) (Reminder, error) {
	pending, err := u.orders.CountByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		return Reminder{}, persistence(err)
	}
	low, err := u.products.ListLowStock(ctx, u.threshold)
	if err != nil {
		return Reminder{}, persistence(err)
	}

	r := Reminder{PendingOrders: pending, LowStockCount: len(low)}
	r.Message = reminderMessage(r)
	return r, nil
}

func reminderMessage(r Reminder) string {
	parts := make([]string, 0, 2)
	if r.PendingOrders > 0 {
		parts = append(parts, fmt.Sprintf("Pending orders: %d", r.PendingOrders))
	}
	if r.LowStockCount > 0 {
		parts = append(parts, fmt.Sprintf("Low-stock products: %d", r.LowStockCount))
	}
	return strings.Join(parts, " • ")
}
