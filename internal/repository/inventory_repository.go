package repository

import (
	"context"
	"errors"

	"makeupsales/internal/domain/model"
)

// 減算するとint64の範囲を外れる
var ErrStockOutOfRange = errors.New("stock out of range")

type InventoryRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// 在庫を減算（マイナスも許す）。int64の下限を割るなら ErrStockOutOfRange
	DecreaseStock(ctx context.Context, productID int64, qty int64) error

	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 変動履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
	ListAdjustments(ctx context.Context, productID int64) ([]model.InventoryAdjustment, error)
}
