package model

import "time"

//在庫変動の履歴

type InventoryAdjustmentReason string

const (
	// 注文作成による減算
	AdjustmentReasonOrder InventoryAdjustmentReason = "ORDER"
	// 手動での在庫修正
	AdjustmentReasonManual InventoryAdjustmentReason = "MANUAL"
)

type InventoryAdjustment struct {
	ID        int64                     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64                     `gorm:"not null;index" json:"product_id"`
	OrderID   *int64                    `gorm:"index" json:"order_id,omitempty"`
	Delta     int64                     `gorm:"not null" json:"delta"`
	Reason    InventoryAdjustmentReason `gorm:"type:varchar(50);not null" json:"reason"`
	CreatedAt time.Time                 `gorm:"not null;autoCreateTime" json:"created_at"`
}
