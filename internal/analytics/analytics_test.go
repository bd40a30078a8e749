package analytics

import (
	"testing"
	"time"

	"yatav-backend/internal/models"
)

func TestAnalyzeDay(t *testing.T) {
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	inDay := day.Add(10 * time.Hour)
	otherDay := day.Add(30 * time.Hour)

	sessions := []models.Session{
		{ID: "s1", UserID: "u1", CreatedAt: inDay},
		{ID: "s2", UserID: "u2", CreatedAt: inDay},
		{ID: "s3", UserID: "u1", CreatedAt: otherDay}, // outside the day
	}
	messages := []models.ChatMessage{
		{SessionID: "s1", Sender: models.SenderUser, Timestamp: inDay},
		{SessionID: "s1", Sender: models.SenderCharacter, Timestamp: inDay.Add(time.Minute)},
		{SessionID: "s2", Sender: models.SenderUser, Timestamp: inDay},
		{SessionID: "s3", Sender: models.SenderUser, Timestamp: otherDay},
	}

	stats := AnalyzeDay(sessions, messages, day)

	if stats.Date != "2025-05-10" {
		t.Fatalf("unexpected date %q", stats.Date)
	}
	if stats.TotalSessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", stats.TotalSessions)
	}
	if stats.TotalMessages != 3 {
		t.Fatalf("expected 3 messages, got %d", stats.TotalMessages)
	}
	if stats.TraineeTurns != 2 || stats.CharacterTurns != 1 {
		t.Fatalf("unexpected turn split: %d/%d", stats.TraineeTurns, stats.CharacterTurns)
	}
	if stats.UniqueTrainees != 2 {
		t.Fatalf("expected 2 unique trainees, got %d", stats.UniqueTrainees)
	}
	if stats.UserStats["u1"].Messages != 2 {
		t.Fatalf("u1 should have 2 messages, got %d", stats.UserStats["u1"].Messages)
	}
	if stats.UserStats["u1"].Sessions != 1 {
		t.Fatalf("u1 should have 1 session, got %d", stats.UserStats["u1"].Sessions)
	}
}

func TestAnalyzeDayEmpty(t *testing.T) {
	stats := AnalyzeDay(nil, nil, time.Now())
	if stats.TotalSessions != 0 || stats.TotalMessages != 0 || stats.UniqueTrainees != 0 {
		t.Fatalf("empty input should produce zero stats: %+v", stats)
	}
}
