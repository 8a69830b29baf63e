package repository

import (
	"context"
	"errors"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db      *gorm.DB
	live    *ChangeFeed
	changes changeTracker
}

// DI
// Tx外ではfeedがそのまま変更通知先になる
func NewProductGormRepository(db *gorm.DB, feed *ChangeFeed) *ProductGormRepository {
	r := &ProductGormRepository{db: db, live: feed}
	if feed != nil {
		r.changes = feed
	}
	return r
}

// Tx内用。変更はcommitまで溜める
func newProductTxRepository(tx *gorm.DB, changes changeTracker) *ProductGormRepository {
	return &ProductGormRepository{db: tx, changes: changes}
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 名前順で全件
func (r *ProductGormRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.db.WithContext(ctx).Order("name asc").Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 在庫が閾値以下の商品
func (r *ProductGormRepository) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).
		Where("stock <= ?", threshold).
		Order("stock asc").Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 商品の作成/置き換え
func (r *ProductGormRepository) Upsert(ctx context.Context, p model.Product) (int64, error) {
	db := r.db.WithContext(ctx)
	if p.ID == 0 {
		if err := db.Create(&p).Error; err != nil {
			return 0, err
		}
		markTouched(ctx, r.changes, tableProducts)
		return p.ID, nil
	}

	//置き換えでもcreated_atは残す
	var existing model.Product
	err := db.Select("id", "created_at").First(&existing, p.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(&p).Error; err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		p.CreatedAt = existing.CreatedAt
		if err := db.Save(&p).Error; err != nil {
			return 0, err
		}
	}
	markTouched(ctx, r.changes, tableProducts)
	return p.ID, nil
}

// 商品削除
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	markTouched(ctx, r.changes, tableProducts)
	return nil
}

func (r *ProductGormRepository) Subscribe(ctx context.Context, onSnapshot func([]model.Product)) (repo.Unsubscribe, error) {
	return subscribe(ctx, r.live, "products", r.ListAll, onSnapshot, tableProducts)
}
