package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	xe "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/errors"
)

const issuer = "sentiment-api"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// Issuer mints and verifies HS256-signed admin tokens.
type Issuer struct {
	secret []byte
}

// NewIssuer builds an Issuer over secret.
//
// An empty secret is refused: it would make every token forgeable.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, xe.New("token secret must not be empty")
	}
	return &Issuer{secret: []byte(secret)}, nil
}

// Issue mints a token for subject, valid for ttl from now.
func (i *Issuer) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", xe.Wrap(err)
	}
	return signed, nil
}

// Verify checks signature and validity of token, and returns its subject.
func (i *Issuer) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		token, new(jwt.RegisteredClaims),
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %s", ErrExpiredToken, err)
		}
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
