package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func GenerateJWT(secret []byte, id string, username string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		ID:       id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// DecodeJWT verifies signature, algorithm and expiry. Any failure is
// reported as ErrInvalidToken wrapping the parser's reason.
func DecodeJWT(token string, secret []byte) (*TokenClaims, error) {
	var claims TokenClaims
	parsedToken, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if !parsedToken.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
