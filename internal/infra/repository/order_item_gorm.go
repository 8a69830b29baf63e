package repository

import (
	"context"

	"makeupsales/internal/domain/model"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db      *gorm.DB
	changes changeTracker
}

func NewOrderItemGormRepository(db *gorm.DB, feed *ChangeFeed) *OrderItemGormRepository {
	r := &OrderItemGormRepository{db: db}
	if feed != nil {
		r.changes = feed
	}
	return r
}

func newOrderItemTxRepository(tx *gorm.DB, changes changeTracker) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: tx, changes: changes}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}
	markTouched(ctx, r.changes, tableOrderItems)
	return nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

func (r *OrderItemGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		markTouched(ctx, r.changes, tableOrderItems)
	}
	return res.RowsAffected, nil
}
