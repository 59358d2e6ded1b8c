package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

// Claims represents access token claims. The email claim identifies the caller.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

var errMissingEmail = errors.New("token has no email claim")

func (c *Claims) identity() (model.Identity, error) {
	email := model.NormalizeEmail(c.Email)
	if email == "" {
		return model.Identity{}, errMissingEmail
	}
	return model.Identity{Email: email, Subject: c.Subject}, nil
}

var _ model.TokenVerifier = (*JWT)(nil)

// JWT issues and verifies access tokens signed with a shared HMAC secret.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

const accessTTL = 15 * time.Minute

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: secretKey, ttl: accessTTL}
}

// Issue creates a short-lived access token for identity.
func (j *JWT) Issue(identity model.Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Email: identity.Email,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Verify validates an access token and extracts the identity from it.
func (j *JWT) Verify(_ context.Context, tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return model.Identity{}, errors.New("access token is invalid")
	}
	return claims.identity()
}
