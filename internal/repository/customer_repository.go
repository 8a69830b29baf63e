package repository

import (
	"context"

	"makeupsales/internal/domain/model"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	Upsert(ctx context.Context, c model.Customer) (int64, error)
	Delete(ctx context.Context, id int64) error
	Subscribe(ctx context.Context, onSnapshot func([]model.Customer)) (Unsubscribe, error)
}
