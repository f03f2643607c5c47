package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := CreateAccessToken("secret", "u1", "TUTOR", "t@example.com", time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	claims, err := ParseValidate("secret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Sub != "u1" || claims.Role != "TUTOR" || claims.Email != "t@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	tok, err := CreateAccessToken("secret", "u1", "TUTOR", "t@example.com", time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := ParseValidate("other", tok); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tok, err := CreateAccessToken("secret", "u1", "STUDENT", "s@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := ParseValidate("secret", tok); err == nil {
		t.Fatal("expired token must not validate")
	}
}
