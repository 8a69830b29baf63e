package usecase

import (
	"context"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"
)

type AuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditLogUsecase(logs repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs}
}

// 新しい順。limitは0なら既定値、上限はrepo側で丸める
func (u *AuditLogUsecase) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return []model.AuditLog{}, invalidArgument("invalid limit/offset")
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedFrom.After(*filter.CreatedTo) {
		return []model.AuditLog{}, invalidArgument("from must be before to")
	}
	logs, err := u.logs.List(ctx, filter)
	if err != nil {
		return []model.AuditLog{}, persistence(err)
	}
	return logs, nil
}
