package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Brand    *string         `gorm:"type:varchar(255)" json:"brand,omitempty"`
	Category *string         `gorm:"type:varchar(255)" json:"category,omitempty"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock    int64           `gorm:"not null" json:"stock"`
	// 画像の参照（URIなど）。v2で追加
	ImageRef  *string   `gorm:"column:image_ref;type:text" json:"image_ref,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
