package server

import (
	"testing"

	"yatav-backend/internal/models"
)

func contains(pool []string, s string) bool {
	for _, p := range pool {
		if p == s {
			return true
		}
	}
	return false
}

func TestFallbackClientResponseByDifficulty(t *testing.T) {
	cases := []struct {
		name       string
		difficulty int
		pool       []string
	}{
		{"easy", 2, fallbackEasy},
		{"unset defaults to easy", 0, fallbackEasy},
		{"medium", 5, fallbackMedium},
		{"hard", 8, fallbackHard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ch := &models.Character{ID: "1", Difficulty: tc.difficulty}
			for i := 0; i < 20; i++ {
				got := fallbackClientResponse(ch)
				if !contains(tc.pool, got) {
					t.Fatalf("response %q not in expected pool", got)
				}
			}
		})
	}
}

func TestFallbackClientResponseNilCharacter(t *testing.T) {
	got := fallbackClientResponse(nil)
	if got != "죄송합니다, 잠시 연결이 불안정합니다." {
		t.Fatalf("unexpected nil-character fallback: %q", got)
	}
}
