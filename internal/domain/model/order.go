package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// 列挙値に含まれるか
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// Totalは作成時の明細合計で固定。
type Order struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64           `gorm:"not null;index" json:"customer_id"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CreatedAt  time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文一覧用。FKは張っていないので顧客が消えていることもある
type OrderWithCustomer struct {
	Order    Order     `json:"order"`
	Customer *Customer `json:"customer"`
}
