package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestGenerateAndDecodeJWT(t *testing.T) {
	token, err := GenerateJWT(testSecret, "user-1", "alice", 30*24*time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := DecodeJWT(token, testSecret)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.ID != "user-1" || claims.Username != "alice" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 29*24*time.Hour || ttl > 30*24*time.Hour {
		t.Fatalf("expected ~30 day expiry, got %s", ttl)
	}
}

func TestDecodeJWTRejects(t *testing.T) {
	expired, err := GenerateJWT(testSecret, "user-1", "alice", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	foreign, err := GenerateJWT([]byte("other-secret"), "user-1", "alice", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "user-1"}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id":  "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	noID, err := GenerateJWT(testSecret, "", "alice", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cases := map[string]string{
		"expired":  expired,
		"foreign":  foreign,
		"noExpiry": noExpiry,
		"wrongAlg": wrongAlg,
		"noID":     noID,
		"garbage":  "not-a-token",
	}
	for name, token := range cases {
		if _, err := DecodeJWT(token, testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
