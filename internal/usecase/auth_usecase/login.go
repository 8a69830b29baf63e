package auth

import (
	"context"
	"errors"
	"time"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/repository"
)

type LoginInput struct {
	Email    string
	Password string
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	User  model.User  `json:"user"`
	Token AccessToken `json:"token"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	user, err := u.userRepo.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(user.ID, now)
	if err != nil {
		return out, err
	}

	//最終ログイン時刻更新
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return out, err
	}
	user.LastLoginAt = &now

	out.User = *user
	out.User.PasswordHash = ""
	out.Token = AccessToken{
		AccessToken: token,
		ExpiresIn:   int(exp.Sub(now).Seconds()),
	}
	return out, nil
}
