package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAdminToken_RoundTrip(t *testing.T) {
	const secret = "test-secret"
	tok, err := NewAdminToken(secret, 42, "manager", 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	if remaining := time.Until(tok.Expires); remaining < 14*time.Minute || remaining > 16*time.Minute {
		t.Fatalf("unexpected expiry %s", tok.Expires)
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tk.Method)
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["username"] != "manager" {
		t.Fatalf("expected username claim, got %v", claims["username"])
	}
	if sub, ok := claims["sub"].(float64); !ok || uint64(sub) != 42 {
		t.Fatalf("expected sub 42, got %v", claims["sub"])
	}
}

func TestNewAdminToken_WrongSecretFails(t *testing.T) {
	tok, err := NewAdminToken("secret-a", 1, "root", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}
