package usecase_test

import (
	"context"
	"testing"
	"time"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"
	"makeupsales/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuditLogList(t *testing.T) {
	ctx := context.Background()
	logs := new(AuditRepoMock)
	uc := usecase.NewAuditLogUsecase(logs)

	logs.On("List", ctx, repo.AuditLogFilter{Limit: 10}).Return([]model.AuditLog{{ID: 1}}, nil).Once()

	got, err := uc.List(ctx, repo.AuditLogFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	logs.AssertExpectations(t)
}

func TestAuditLogList_InvalidRange(t *testing.T) {
	logs := new(AuditRepoMock)
	uc := usecase.NewAuditLogUsecase(logs)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err := uc.List(context.Background(), repo.AuditLogFilter{CreatedFrom: &from, CreatedTo: &to})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidArgument))

	_, err = uc.List(context.Background(), repo.AuditLogFilter{Limit: -1})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidArgument))
	logs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
