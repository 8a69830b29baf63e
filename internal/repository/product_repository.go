package repository

import (
	"context"
	"errors"

	"makeupsales/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	// stock <= threshold の商品
	ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error)

	// IDが0か存在しなければ作成、あれば置き換え。IDを返す
	Upsert(ctx context.Context, p model.Product) (int64, error)
	Delete(ctx context.Context, id int64) error

	// 名前順の全件を即時に1回、以後書き込みのたびに渡す
	Subscribe(ctx context.Context, onSnapshot func([]model.Product)) (Unsubscribe, error)
}
