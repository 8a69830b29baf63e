package usecase

import (
	"context"
	"time"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// 注文操作の結果を数える（メトリクス）
type OperationRecorder interface {
	Record(operation string, err error)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, error) {}

type actorKey struct{}

// WithActor は監査ログに残す操作ユーザーをctxに入れる
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func actorFrom(ctx context.Context) int64 {
	if id, ok := ctx.Value(actorKey{}).(int64); ok {
		return id
	}
	return 0
}
