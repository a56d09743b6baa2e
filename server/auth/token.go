// Package auth resolves session cookies into user identities.  Sessions
// are issued by the login service; this server only verifies them.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type (
	// Tokenizer creates and reads session tokens.
	Tokenizer interface {
		// Create signs a token for the user id, valid for the configured
		// period.
		Create(userUUID string) (string, error)
		// Decode verifies a token and extracts the user id.  ErrExpired
		// and ErrInvalid classify failures.
		Decode(token string) (string, error)
	}

	// TokenizerConfig contains fields which describe a Tokenizer.
	TokenizerConfig struct {
		// Secret is the HS256 signing key shared with the login service.
		Secret []byte
		// TimeFunc supplies the current time, for validation and expiry.
		TimeFunc func() time.Time
		// ValidSec is how long created tokens last, in seconds.
		ValidSec int64
	}

	jwtTokenizer struct {
		method jwt.SigningMethod
		TokenizerConfig
	}

	sessionClaims struct {
		UserUUID string `json:"user_uuid"`
		jwt.RegisteredClaims
	}
)

var (
	// ErrExpired is returned when the token was valid but has expired.
	ErrExpired = errors.New("session expired")
	// ErrInvalid is returned for malformed or tampered tokens.
	ErrInvalid = errors.New("session invalid")
)

// NewTokenizer creates a Tokenizer from the config.
func (cfg TokenizerConfig) NewTokenizer() (Tokenizer, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating tokenizer: validation: %w", err)
	}
	t := jwtTokenizer{
		method:          jwt.SigningMethodHS256,
		TokenizerConfig: cfg,
	}
	return t, nil
}

// validate ensures the configuration has no errors.
func (cfg TokenizerConfig) validate() error {
	switch {
	case len(cfg.Secret) == 0:
		return fmt.Errorf("secret required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	case cfg.ValidSec <= 0:
		return fmt.Errorf("positive token life required")
	}
	return nil
}

// Create converts a user id to a signed token string.
func (j jwtTokenizer) Create(userUUID string) (string, error) {
	now := j.TimeFunc()
	claims := sessionClaims{
		UserUUID: userUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.ValidSec) * time.Second)),
		},
	}
	token := jwt.NewWithClaims(j.method, claims)
	return token.SignedString(j.Secret)
}

// Decode extracts the user id from the token string.
func (j jwtTokenizer) Decode(tokenString string) (string, error) {
	var claims sessionClaims
	parser := jwt.NewParser(jwt.WithTimeFunc(j.TimeFunc))
	if _, err := parser.ParseWithClaims(tokenString, &claims, j.keyFunc); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(claims.UserUUID) == 0 {
		return "", ErrInvalid
	}
	return claims.UserUUID, nil
}

// keyFunc ensures the signing method of the token is correct before
// returning the key.
func (j jwtTokenizer) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != j.method {
		return nil, fmt.Errorf("incorrect authorization signing method")
	}
	return []byte(j.Secret), nil
}
