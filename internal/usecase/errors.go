package usecase

import (
	"encoding/json"
	"errors"
	"fmt"

	repo "makeupsales/internal/repository"
	"makeupsales/internal/validator"
)

type ErrorKind string

const (
	// 呼び出し側の入力が不正
	KindInvalidArgument ErrorKind = "INVALID_ARGUMENT"
	// 注文・商品・顧客が存在しない
	KindNotFound ErrorKind = "NOT_FOUND"
	// DBの入出力や制約の失敗
	KindPersistence ErrorKind = "PERSISTENCE_ERROR"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindConflict     ErrorKind = "CONFLICT"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(kind ErrorKind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

func IsKind(err error, kind ErrorKind) bool {
	ae, ok := AsAppError(err)
	return ok && ae.Kind == kind
}

func invalidArgument(message string) error {
	return NewAppError(KindInvalidArgument, message)
}

// validatorのエラーを理由つきで包む
func invalidInput(err error) error {
	var ve *validator.Error
	if errors.As(err, &ve) {
		return invalidArgument(ve.Reason)
	}
	return &AppError{Kind: KindInvalidArgument, Message: "invalid input", Err: err}
}

func notFound(message string) error {
	return NewAppError(KindNotFound, message)
}

func persistence(err error) error {
	return &AppError{Kind: KindPersistence, Message: "db error", Err: err}
}

// repoのエラーを分類する。AppErrorはそのまま通す
func classify(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) {
		return notFound(notFoundMessage)
	}
	return persistence(err)
}

// 監査ログのbefore/after
func auditJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", persistence(fmt.Errorf("encode audit json: %w", err))
	}
	return string(b), nil
}
