package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/repository"
	"makeupsales/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Email    string
	Password string
}

type RegisterUserOutput struct {
	User model.User `json:"user"`
}

var (
	// 入力が不正（errors.Is(err, validator.ErrInvalidInput) でも判定できる）
	ErrInvalidInput = validator.ErrInvalidInput

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは店舗スタッフのアカウント登録。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
	}
}

func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	email := normalizeEmail(in.Email)
	if err := validator.Email(email); err != nil {
		return out, err
	}
	if err := validator.Password(in.Password); err != nil {
		return out, err
	}

	// email重複チェック
	_, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return out, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := &model.User{
		Email:        email,
		PasswordHash: hashed, // 平文は保存しない
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return out, err
	}

	out.User = *user
	out.User.PasswordHash = ""
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
