package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	const secret = "s3cret"
	before := time.Now().UTC()

	at, err := NewAccessToken(secret, 42, "ADMIN", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("empty token")
	}
	wantExp := before.Add(15 * time.Minute)
	if at.Exp.Before(wantExp.Add(-time.Minute)) || at.Exp.After(wantExp.Add(time.Minute)) {
		t.Fatalf("exp = %v, want about %v", at.Exp, wantExp)
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse signed token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if sub, _ := claims["sub"].(float64); sub != 42 {
		t.Fatalf("sub = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "ADMIN" {
		t.Fatalf("role = %v, want ADMIN", claims["role"])
	}
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right", 1, "USER", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	if err == nil && tok.Valid {
		t.Fatal("token validated with the wrong secret")
	}
}
