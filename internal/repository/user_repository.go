package repository

import (
	"context"
	"time"

	"makeupsales/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// 見つからなければ ErrNotFound
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}
