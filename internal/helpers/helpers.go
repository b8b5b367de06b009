package helpers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ValidateToken parses and checks a bearer token. When a JWKS URL is
// configured the signature is verified against it; otherwise (and when the
// JWKS endpoint is unreachable) the token is parsed unverified and only its
// expiry is checked, which is enough for the optimistic auth-state detection
// the dashboards need. The upstream API still rejects bad tokens with 401.
func ValidateToken(tokenStr, jwksURL string) (*Claims, error) {
	if jwksURL == "" {
		return parseUnverified(tokenStr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{Ctx: ctx})
	if err != nil {
		return parseUnverified(tokenStr)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

func parseUnverified(tokenStr string) (*Claims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %v", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if claims.Expired() {
		return nil, errors.New("token expired")
	}
	return claims, nil
}

// LoginRedirect builds the login path the front end is sent to after an auth
// failure, carrying the original path so the user comes back where they were.
func LoginRedirect(originalPath string) string {
	return "/login?redirect=" + url.QueryEscape(originalPath)
}
