package viewstate

import (
	"context"
	"log/slog"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/repository"
	"makeupsales/internal/usecase"
)

// ProductsState は商品一覧画面の状態
type ProductsState struct {
	*live[model.Product]
	products repository.ProductRepository
	uc       *usecase.ProductUsecase
}

func NewProductsState(products repository.ProductRepository, uc *usecase.ProductUsecase, log *slog.Logger) *ProductsState {
	return &ProductsState{
		live:     newLive[model.Product]("products", log),
		products: products,
		uc:       uc,
	}
}

func (s *ProductsState) Start(ctx context.Context) error {
	return s.start(ctx, s.products.Subscribe)
}

func (s *ProductsState) SaveProduct(ctx context.Context, in usecase.ProductInput) (int64, error) {
	id, err := s.uc.SaveProduct(ctx, in)
	if err != nil {
		s.intentFailed("save_product", err)
	}
	return id, err
}

func (s *ProductsState) DeleteProduct(ctx context.Context, productID int64) error {
	err := s.uc.DeleteProduct(ctx, productID)
	if err != nil {
		s.intentFailed("delete_product", err)
	}
	return err
}

func (s *ProductsState) UpdateStock(ctx context.Context, productID int64, stock int64) error {
	err := s.uc.UpdateStock(ctx, productID, stock)
	if err != nil {
		s.intentFailed("update_stock", err)
	}
	return err
}
