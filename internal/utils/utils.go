package utils

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

// context key
type ctxKey string

const CtxClaimsKey ctxKey = "claims"

// CustomClaims wraps jwt.RegisteredClaims with the account's email and role.
type CustomClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// safer subject helper
func (c *CustomClaims) SubjectInt() int64 {
	v, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ClaimsFrom returns the verified claims stored by the identity middleware.
func ClaimsFrom(ctx context.Context) (*CustomClaims, bool) {
	c, ok := ctx.Value(CtxClaimsKey).(*CustomClaims)
	return c, ok && c != nil
}

// WithClaims stores verified claims on ctx.
func WithClaims(ctx context.Context, c *CustomClaims) context.Context {
	return context.WithValue(ctx, CtxClaimsKey, c)
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	Secret string
	TTL    time.Duration
}

func (t TokenIssuer) Generate(u *models.User) (string, int64, error) {
	return GenerateToken(u.ID, u.Email, u.Role, t.Secret, t.TTL)
}

func (t TokenIssuer) Verify(tokenStr string) (*CustomClaims, error) {
	return VerifyToken(tokenStr, t.Secret)
}

// GenerateToken signs a token for the account that expires after ttl and
// returns it with its expiry as a unix timestamp.
func GenerateToken(userID int64, email string, role models.Role, secret string, ttl time.Duration) (string, int64, error) {
	if secret == "" {
		return "", 0, errors.New("secret not configured")
	}
	if ttl <= 0 {
		return "", 0, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	now := time.Now()
	exp := jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: exp,
		},
	}).SignedString([]byte(secret))
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp.Unix(), nil
}

// VerifyToken checks the HS256 signature and the mandatory exp claim.
func VerifyToken(tokenStr, secret string) (*CustomClaims, error) {
	if secret == "" {
		return nil, errors.New("secret not configured")
	}

	var claims CustomClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	return &claims, nil
}
