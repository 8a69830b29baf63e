package usecase

import (
	"errors"
	"fmt"
	"testing"

	repo "makeupsales/internal/repository"
	"makeupsales/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil, "x"))

	err := classify(fmt.Errorf("find: %w", repo.ErrNotFound), "order not found")
	assert.True(t, IsKind(err, KindNotFound))
	assert.EqualError(t, err, "NOT_FOUND: order not found")

	//AppErrorはそのまま
	orig := invalidArgument("bad")
	assert.Same(t, orig, classify(orig, "x"))

	raw := errors.New("constraint failed")
	err = classify(raw, "x")
	assert.True(t, IsKind(err, KindPersistence))
	assert.ErrorIs(t, err, raw)
}

func TestInvalidInput_UsesValidatorReason(t *testing.T) {
	err := invalidInput(validator.CustomerName(""))
	ae, ok := AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, KindInvalidArgument, ae.Kind)
	assert.Equal(t, "name required", ae.Message)
}

func TestActorFromContext(t *testing.T) {
	ctx := WithActor(t.Context(), 12)
	assert.Equal(t, int64(12), actorFrom(ctx))
	assert.Equal(t, int64(0), actorFrom(t.Context()))
}
