package repository

import (
	"context"
	"math"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db      *gorm.DB
	changes changeTracker
}

func NewInventoryGormRepository(db *gorm.DB, feed *ChangeFeed) *InventoryGormRepository {
	r := &InventoryGormRepository{db: db}
	if feed != nil {
		r.changes = feed
	}
	return r
}

func newInventoryTxRepository(tx *gorm.DB, changes changeTracker) *InventoryGormRepository {
	return &InventoryGormRepository{db: tx, changes: changes}
}

// 在庫の現在値を設定
func (r *InventoryGormRepository) SetStock(ctx context.Context, productID int64, newStock int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("stock", newStock)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	markTouched(ctx, r.changes, tableProducts)
	return nil
}

// マイナスまで減らせる。1行UPDATEなので同じ商品への同時注文は行ロックで直列になる。
// sqliteは桁あふれした値をREALで保存してしまうので下限をWHEREで守る
func (r *InventoryGormRepository) DecreaseStock(ctx context.Context, productID int64, qty int64) error {
	if qty <= 0 {
		return repo.ErrStockOutOfRange
	}

	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, math.MinInt64+qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := r.mustExist(ctx, productID); err != nil {
			return err
		}
		return repo.ErrStockOutOfRange
	}
	markTouched(ctx, r.changes, tableProducts)
	return nil
}

// 在庫が足りるときだけ減らす
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		//商品がないのか在庫不足なのかを分ける
		if err := r.mustExist(ctx, productID); err != nil {
			return false, err
		}
		return false, nil
	}
	markTouched(ctx, r.changes, tableProducts)
	return true, nil
}

func (r *InventoryGormRepository) mustExist(ctx context.Context, productID int64) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", productID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 変動履歴作成
func (r *InventoryGormRepository) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	if err := r.db.WithContext(ctx).Create(&adj).Error; err != nil {
		return err
	}
	return nil
}

// 新しい順
func (r *InventoryGormRepository) ListAdjustments(ctx context.Context, productID int64) ([]model.InventoryAdjustment, error) {
	adjs := []model.InventoryAdjustment{}
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id desc").
		Find(&adjs).Error
	if err != nil {
		return []model.InventoryAdjustment{}, err
	}
	return adjs, nil
}
