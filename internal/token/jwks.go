package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

var _ model.TokenVerifier = (*JWKS)(nil)

// JWKS verifies access tokens issued by an external identity provider.
type JWKS struct {
	keyfunc keyfunc.Keyfunc
}

// NewJWKS fetches the key set from url and keeps it refreshed until ctx is done.
func NewJWKS(ctx context.Context, url string) (*JWKS, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{url})
	if err != nil {
		return nil, fmt.Errorf("failed to load jwks: %w", err)
	}
	return &JWKS{keyfunc: k}, nil
}

// NewJWKSFromJSON builds a verifier from a static key set.
func NewJWKSFromJSON(raw json.RawMessage) (*JWKS, error) {
	k, err := keyfunc.NewJWKSetJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwks: %w", err)
	}
	return &JWKS{keyfunc: k}, nil
}

// Verify validates an asymmetric access token against the key set.
func (v *JWKS) Verify(_ context.Context, tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyfunc.Keyfunc,
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256", "ES384"}),
	)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return model.Identity{}, errors.New("access token is invalid")
	}
	return claims.identity()
}
