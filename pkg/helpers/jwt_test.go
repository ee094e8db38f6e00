package helpers

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("unit-secret", time.Hour)

	token, exp, err := m.Generate(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if until := time.Until(exp); until < 59*time.Minute || until > time.Hour {
		t.Fatalf("expiry %v away, want about one hour", until)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("uid = %d, want 42", claims.UserID)
	}
}

func TestJWTRejectsWrongKey(t *testing.T) {
	a := NewJWTManager("secret-a", time.Hour)
	b := NewJWTManager("secret-b", time.Hour)

	token, _, err := a.Generate(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := b.Parse(token); err == nil {
		t.Fatal("token signed with another key must not validate")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	m := NewJWTManager("unit-secret", -time.Minute)

	token, _, err := m.Generate(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expired token must not validate")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	m := NewJWTManager("unit-secret", time.Hour)
	if _, err := m.Parse("not.a.token"); err == nil {
		t.Fatal("garbage must not validate")
	}
}
