package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// HS256のアクセストークン。subはユーザーID
type JWTIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func NewJWTIssuer(secret string, accessTTL time.Duration) *JWTIssuer {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &JWTIssuer{secret: []byte(secret), accessTTL: accessTTL}
}

func (i *JWTIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
