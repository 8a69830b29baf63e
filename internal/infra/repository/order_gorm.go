package repository

import (
	"context"
	"errors"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db      *gorm.DB
	live    *ChangeFeed
	changes changeTracker
}

func NewOrderGormRepository(db *gorm.DB, feed *ChangeFeed) *OrderGormRepository {
	r := &OrderGormRepository{db: db, live: feed}
	if feed != nil {
		r.changes = feed
	}
	return r
}

func newOrderTxRepository(tx *gorm.DB, changes changeTracker) *OrderGormRepository {
	return &OrderGormRepository{db: tx, changes: changes}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	markTouched(ctx, r.changes, tableOrders)
	return order.ID, nil
}

// statusだけ更新。明細・在庫には触らない
func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	markTouched(ctx, r.changes, tableOrders)
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	markTouched(ctx, r.changes, tableOrders)
	return nil
}

func (r *OrderGormRepository) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Where("status = ?", status).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 新しい順。顧客はまとめて引いて付ける
func (r *OrderGormRepository) ListWithCustomer(ctx context.Context) ([]model.OrderWithCustomer, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&orders).Error; err != nil {
		return []model.OrderWithCustomer{}, err
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.CustomerID)
	}

	customers := map[int64]model.Customer{}
	if len(ids) > 0 {
		var cs []model.Customer
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cs).Error; err != nil {
			return []model.OrderWithCustomer{}, err
		}
		for _, c := range cs {
			customers[c.ID] = c
		}
	}

	out := make([]model.OrderWithCustomer, 0, len(orders))
	for _, o := range orders {
		row := model.OrderWithCustomer{Order: o}
		if c, ok := customers[o.CustomerID]; ok {
			row.Customer = &c
		}
		out = append(out, row)
	}
	return out, nil
}

// 顧客名の変更でも再通知する
func (r *OrderGormRepository) Subscribe(ctx context.Context, onSnapshot func([]model.OrderWithCustomer)) (repo.Unsubscribe, error) {
	return subscribe(ctx, r.live, "orders", r.ListWithCustomer, onSnapshot, tableOrders, tableCustomers)
}
