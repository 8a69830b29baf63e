package model

import "time"

// 適用済みスキーマのバージョン
type SchemaVersion struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false" json:"version"`
	AppliedAt time.Time `gorm:"not null" json:"applied_at"`
}
