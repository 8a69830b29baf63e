package repository

import (
	"context"

	repo "makeupsales/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	customers  repo.CustomerRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	auditLogs  repo.AuditLogRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposGorm) Customers() repo.CustomerRepository   { return r.customers }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

type TxManagerGorm struct {
	db   *gorm.DB
	feed *ChangeFeed
}

func NewTxManagerGorm(db *gorm.DB, feed *ChangeFeed) *TxManagerGorm {
	return &TxManagerGorm{db: db, feed: feed}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	changes := &txChanges{}

	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:     newOrderTxRepository(tx, changes),
			orderItems: newOrderItemTxRepository(tx, changes),
			customers:  newCustomerTxRepository(tx, changes),
			products:   newProductTxRepository(tx, changes),
			inventory:  newInventoryTxRepository(tx, changes),
			auditLogs:  NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
	if err != nil {
		return err
	}

	//commit済みの変更だけ通知する
	if tm.feed != nil {
		tm.feed.Publish(ctx, changes.list()...)
	}
	return nil
}
