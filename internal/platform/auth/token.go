package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenRequest describes a token minted by IssueToken.
type TokenRequest struct {
	Subject  string
	Roles    []string
	TTL      time.Duration
	Issuer   string
	Audience string
}

// IssueToken signs an HS256 token that JWTMiddleware configured with the
// same key, issuer and audience will accept.
func IssueToken(key []byte, req TokenRequest) (string, error) {
	if len(key) == 0 {
		return "", errors.New("signing key is empty")
	}
	if req.Subject == "" {
		return "", errors.New("subject is required")
	}
	for _, r := range req.Roles {
		if !IsKnownRole(r) {
			return "", fmt.Errorf("unknown role %q", r)
		}
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  req.Subject,
			Issuer:   req.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Roles: req.Roles,
	}
	if req.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(req.TTL))
	}
	if req.Audience != "" {
		claims.Audience = jwt.ClaimStrings{req.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
