package usecase_test

import (
	"context"
	"errors"
	"testing"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/infra/db/dbtest"
	infra "makeupsales/internal/infra/repository"
	repo "makeupsales/internal/repository"
	"makeupsales/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// Test: 入力の前後空白は落とし、空の任意項目はnilにする
func TestSaveProduct_NormalizesInput(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(nil, products, nil, 3)

	products.On("Upsert", ctx, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Lipstick" && p.Brand == nil && p.Category != nil && *p.Category == "lips"
	})).Return(int64(5), nil).Once()

	id, err := uc.SaveProduct(ctx, usecase.ProductInput{
		Name:     "  Lipstick ",
		Brand:    strPtr("   "),
		Category: strPtr("lips"),
		Price:    dec("12.50"),
		Stock:    4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	products.AssertExpectations(t)
}

func TestSaveProduct_Validation(t *testing.T) {
	products := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(nil, products, nil, 3)

	cases := []usecase.ProductInput{
		{Name: "", Price: dec("1"), Stock: 1},
		{Name: "x", Price: dec("-0.01"), Stock: 1},
		{Name: "x", Price: dec("1"), Stock: -1},
		{ID: -1, Name: "x", Price: dec("1"), Stock: 1},
		{Name: "x", Price: dec("1.999"), Stock: 1},
		{Name: "x", Price: dec("10000000000"), Stock: 1},
		{Name: "x", Price: dec("1"), Stock: 1_000_000_001},
	}
	for _, in := range cases {
		_, err := uc.SaveProduct(context.Background(), in)
		assert.True(t, usecase.IsKind(err, usecase.KindInvalidArgument), "in=%+v err=%v", in, err)
	}
	products.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSaveProduct_PersistenceError(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(nil, products, nil, 3)

	products.On("Upsert", ctx, mock.Anything).Return(int64(0), errors.New("disk full")).Once()

	_, err := uc.SaveProduct(ctx, usecase.ProductInput{Name: "x", Price: dec("1")})
	assert.True(t, usecase.IsKind(err, usecase.KindPersistence))
}

func TestDeleteProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(nil, products, nil, 3)

	products.On("Delete", ctx, int64(9)).Return(repo.ErrNotFound).Once()

	err := uc.DeleteProduct(ctx, 9)
	assert.True(t, usecase.IsKind(err, usecase.KindNotFound))
	products.AssertExpectations(t)
}

func TestLowStock_UsesThreshold(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(nil, products, nil, 3)

	products.On("ListLowStock", ctx, int64(3)).Return([]model.Product{{ID: 1, Name: "A", Stock: 1}}, nil).Once()

	got, err := uc.LowStock(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	products.AssertExpectations(t)
}

// Test: 在庫の手動修正で履歴と監査ログが残る
func TestUpdateStock_WritesAdjustmentAndAudit(t *testing.T) {
	ctx := usecase.WithActor(context.Background(), 7)
	gdb := dbtest.Open(t)
	products := infra.NewProductGormRepository(gdb, nil)
	inventory := infra.NewInventoryGormRepository(gdb, nil)
	audit := infra.NewAuditLogGormRepository(gdb)
	uc := usecase.NewProductUsecase(infra.NewTxManagerGorm(gdb, nil), products, inventory, 3)

	id, err := products.Upsert(ctx, model.Product{Name: "Gloss", Price: dec("3"), Stock: 10})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStock(ctx, id, 4))

	p, err := products.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.Stock)

	adjs, err := uc.StockHistory(ctx, id)
	require.NoError(t, err)
	require.Len(t, adjs, 1)
	assert.Equal(t, int64(-6), adjs[0].Delta)
	assert.Equal(t, model.AdjustmentReasonManual, adjs[0].Reason)
	assert.Nil(t, adjs[0].OrderID)

	logs, err := audit.List(ctx, repo.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(7), logs[0].ActorUserID)
	assert.Equal(t, model.AuditActionUpdateStock, logs[0].Action)
	assert.JSONEq(t, `{"stock":10}`, logs[0].BeforeJSON)
	assert.JSONEq(t, `{"stock":4}`, logs[0].AfterJSON)
}

func TestUpdateStock_Errors(t *testing.T) {
	gdb := dbtest.Open(t)
	uc := usecase.NewProductUsecase(infra.NewTxManagerGorm(gdb, nil), infra.NewProductGormRepository(gdb, nil), infra.NewInventoryGormRepository(gdb, nil), 3)

	err := uc.UpdateStock(context.Background(), 1, -1)
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidArgument))

	err = uc.UpdateStock(context.Background(), 1, 1_000_000_001)
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidArgument))

	err = uc.UpdateStock(context.Background(), 404, 1)
	assert.True(t, usecase.IsKind(err, usecase.KindNotFound))

	var n int64
	require.NoError(t, gdb.Model(&model.AuditLog{}).Count(&n).Error)
	assert.Zero(t, n)
}
