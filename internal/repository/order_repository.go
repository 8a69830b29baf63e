package repository

import (
	"context"

	"makeupsales/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error)

	//新しい順、顧客つき
	ListWithCustomer(ctx context.Context) ([]model.OrderWithCustomer, error)
	Subscribe(ctx context.Context, onSnapshot func([]model.OrderWithCustomer)) (Unsubscribe, error)
}
