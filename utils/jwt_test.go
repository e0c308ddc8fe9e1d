package utils

import (
	"testing"
	"time"

	"brightpath/models"
)

func TestTokenRoundTrip(t *testing.T) {
	p := models.Principal{
		ID:    "parent-1",
		Name:  "Jordan Lee",
		Email: "jordan@example.com",
		Role:  "parent",
	}

	tok, err := GenerateToken(p, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	got, err := PrincipalFromToken(tok)
	if err != nil {
		t.Fatalf("PrincipalFromToken: %v", err)
	}
	if *got != p {
		t.Errorf("principal = %+v, want %+v", got, p)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tok, err := GenerateToken(models.Principal{ID: "parent-1"}, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := PrincipalFromToken(tok); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, err := PrincipalFromToken("not.a.token"); err == nil {
		t.Error("malformed token was accepted")
	}
}
