package auth

import (
	"errors"
	"fmt"
	"time"

	"dealership/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a session token and its cookie.
const TokenTTL = 3600 * time.Second

// TokenCodec signs account claims into HS256 JWTs and verifies them.
// It is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces the wall clock used for issuing and checking expiry.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec builds a codec around the process-wide signing secret.
func NewTokenCodec(secret string, opts ...CodecOption) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("auth.NewTokenCodec: empty signing secret")
	}

	c := &TokenCodec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)

	return c, nil
}

// Sign issues a token for claims that expires ttl from now. Registered
// claims already present on the input are replaced.
func (c *TokenCodec) Sign(claims models.Claims, ttl time.Duration) (string, error) {
	const op = "auth.TokenCodec.Sign"

	now := c.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   fmt.Sprint(claims.AccountID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Verify decodes a token. Every failure, whatever its cause, is reported as
// ErrTokenInvalid.
func (c *TokenCodec) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := c.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if !claims.Role.Valid() || claims.AccountID == 0 {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ExpiresAt reports when a verified token stops being valid.
func ExpiresAt(claims *models.Claims) time.Time {
	if claims == nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
