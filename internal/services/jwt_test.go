package services

import (
	"testing"

	"pausenhof-backend/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecret: "test-secret"})

	token, err := svc.GenerateToken("alice")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Account != "alice" {
		t.Fatalf("expected account alice, got %s", claims.Account)
	}
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	token, err := NewJWTService(&config.Config{JWTSecret: "secret-a"}).GenerateToken("alice")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := NewJWTService(&config.Config{JWTSecret: "secret-b"}).ValidateToken(token); err == nil {
		t.Fatal("a token signed with another secret must be rejected")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecret: "test-secret"})
	if _, err := svc.ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("garbage tokens must be rejected")
	}
}
