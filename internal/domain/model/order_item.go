package model

import "github.com/shopspring/decimal"

// 注文明細。単価は注文時点のスナップショット
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
}
