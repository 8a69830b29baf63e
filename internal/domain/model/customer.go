package model

import "time"

type Customer struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Phone        *string   `gorm:"type:varchar(50)" json:"phone,omitempty"`
	SocialHandle *string   `gorm:"type:varchar(255)" json:"social_handle,omitempty"`
	Address      *string   `gorm:"type:text" json:"address,omitempty"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
