package usecase_test

import (
	"context"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"

	"github.com/stretchr/testify/mock"
)

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	args := m.Called(ctx, threshold)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Upsert(ctx context.Context, p model.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) Subscribe(ctx context.Context, onSnapshot func([]model.Product)) (repo.Unsubscribe, error) {
	panic("not used in usecase tests")
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) ListAll(ctx context.Context) ([]model.Customer, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Customer)
	return items, args.Error(1)
}

func (m *CustomerRepoMock) Upsert(ctx context.Context, c model.Customer) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CustomerRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CustomerRepoMock) Subscribe(ctx context.Context, onSnapshot func([]model.Customer)) (repo.Unsubscribe, error) {
	panic("not used in usecase tests")
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	panic("not used in usecase tests")
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	panic("not used in usecase tests")
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	panic("not used in usecase tests")
}

func (m *OrderRepoMock) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) ListWithCustomer(ctx context.Context) ([]model.OrderWithCustomer, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.OrderWithCustomer)
	return items, args.Error(1)
}

func (m *OrderRepoMock) Subscribe(ctx context.Context, onSnapshot func([]model.OrderWithCustomer)) (repo.Unsubscribe, error) {
	panic("not used in usecase tests")
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Error(1)
}
