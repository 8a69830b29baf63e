package repository

import (
	"context"
	"errors"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db      *gorm.DB
	live    *ChangeFeed
	changes changeTracker
}

func NewCustomerGormRepository(db *gorm.DB, feed *ChangeFeed) *CustomerGormRepository {
	r := &CustomerGormRepository{db: db, live: feed}
	if feed != nil {
		r.changes = feed
	}
	return r
}

func newCustomerTxRepository(tx *gorm.DB, changes changeTracker) *CustomerGormRepository {
	return &CustomerGormRepository{db: tx, changes: changes}
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	if err := r.db.WithContext(ctx).Order("name asc").Order("id asc").Find(&customers).Error; err != nil {
		return []model.Customer{}, err
	}
	return customers, nil
}

func (r *CustomerGormRepository) Upsert(ctx context.Context, c model.Customer) (int64, error) {
	db := r.db.WithContext(ctx)
	if c.ID == 0 {
		if err := db.Create(&c).Error; err != nil {
			return 0, err
		}
		markTouched(ctx, r.changes, tableCustomers)
		return c.ID, nil
	}

	//置き換えでもcreated_atは残す
	var existing model.Customer
	err := db.Select("id", "created_at").First(&existing, c.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(&c).Error; err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		c.CreatedAt = existing.CreatedAt
		if err := db.Save(&c).Error; err != nil {
			return 0, err
		}
	}
	markTouched(ctx, r.changes, tableCustomers)
	return c.ID, nil
}

// 顧客を消しても注文は残る（FKなし）
func (r *CustomerGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	markTouched(ctx, r.changes, tableCustomers)
	return nil
}

func (r *CustomerGormRepository) Subscribe(ctx context.Context, onSnapshot func([]model.Customer)) (repo.Unsubscribe, error) {
	return subscribe(ctx, r.live, "customers", r.ListAll, onSnapshot, tableCustomers)
}
