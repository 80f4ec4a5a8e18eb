package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret 鍵が設定されていない
var ErrNoSecret = errors.New("jwt secret is empty")

// Signer HS256でJWTを発行・検証する
type Signer struct {
	secret []byte
}

// NewSigner 共有鍵からSignerを生成します
func NewSigner(secret string) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign JWTの発行を行う
func (s *Signer) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// SignBackend 指定した発行者のバックエンド用トークンを発行します
func (s *Signer) SignBackend(issuer string, ttl time.Duration) (string, error) {
	now := time.Now()
	return s.Sign(&jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
}

// Verify JWTの検証を行う
func (s *Signer) Verify(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
