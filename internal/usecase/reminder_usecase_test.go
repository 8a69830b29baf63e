package usecase_test

import (
	"context"
	"errors"
	"testing"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderCheck(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		pending int64
		low     []model.Product
		notify  bool
		message string
	}{
		{"nothing", 0, nil, false, ""},
		{"pending only", 2, nil, true, "Pending orders: 2"},
		{"low stock only", 0, []model.Product{{ID: 1}}, true, "Low-stock products: 1"},
		{"both", 1, []model.Product{{ID: 1}, {ID: 2}}, true, "Pending orders: 1 • Low-stock products: 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders := new(OrderRepoMock)
			products := new(ProductRepoMock)
			orders.On("CountByStatus", ctx, model.OrderStatusPending).Return(tc.pending, nil).Once()
			products.On("ListLowStock", ctx, int64(3)).Return(tc.low, nil).Once()

			r, err := usecase.NewReminderUsecase(orders, products, 3).Check(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.notify, r.ShouldNotify())
			assert.Equal(t, tc.message, r.Message)
			orders.AssertExpectations(t)
			products.AssertExpectations(t)
		})
	}
}

func TestReminderCheck_Error(t *testing.T) {
	ctx := context.Background()
	orders := new(OrderRepoMock)
	products := new(ProductRepoMock)
	orders.On("CountByStatus", ctx, model.OrderStatusPending).Return(int64(0), errors.New("db down")).Once()

	_, err := usecase.NewReminderUsecase(orders, products, 3).Check(ctx)
	assert.True(t, usecase.IsKind(err, usecase.KindPersistence))
	products.AssertNotCalled(t, "ListLowStock")
}
