package repository

import (
	"context"

	"makeupsales/internal/domain/model"
)

type OrderItemRepository interface {
	// 渡した順に作成する。OrderIDは上書き
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	// 作成順（id asc）。なければ空
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) (int64, error)
}
