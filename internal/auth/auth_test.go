package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	s := New("secret", time.Minute)

	hash, err := s.HashPassword("pw-123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "pw-123" {
		t.Fatalf("password stored in plain text")
	}
	if !s.VerifyPassword(hash, "pw-123") {
		t.Fatalf("correct password rejected")
	}
	if s.VerifyPassword(hash, "wrong") {
		t.Fatalf("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := New("secret", time.Minute)

	token, err := s.IssueToken("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	sub, err := s.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("unexpected subject %q", sub)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	s := New("secret", -time.Minute)

	token, err := s.IssueToken("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := s.VerifyToken(token); err == nil {
		t.Fatalf("expired token accepted")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := New("secret-a", time.Minute).IssueToken("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := New("secret-b", time.Minute).VerifyToken(token); err == nil {
		t.Fatalf("token signed with different secret accepted")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	s := New("secret", time.Minute)
	if _, err := s.VerifyToken("not.a.token"); err == nil {
		t.Fatalf("garbage token accepted")
	}
}
