package analytics

import (
	"time"

	"yatav-backend/internal/models"
)

// DailyStats aggregates one day of training activity for the admin surface.
type DailyStats struct {
	Date           string               `json:"date"`
	TotalSessions  int                  `json:"total_sessions"`
	TotalMessages  int                  `json:"total_messages"`
	TraineeTurns   int                  `json:"trainee_turns"`
	CharacterTurns int                  `json:"character_turns"`
	UniqueTrainees int                  `json:"unique_trainees"`
	UserStats      map[string]UserStats `json:"user_stats"`
}

// UserStats is per-trainee activity within a day.
type UserStats struct {
	UserID   string `json:"user_id"`
	Sessions int    `json:"sessions"`
	Messages int    `json:"messages"`
}

// AnalyzeDay computes usage statistics for the day containing targetDate.
// Sessions attribute messages to their trainee; messages whose session is
// outside the input set still count in the totals.
func AnalyzeDay(sessions []models.Session, messages []models.ChatMessage, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:      startOfDay.Format("2006-01-02"),
		UserStats: make(map[string]UserStats),
	}

	sessionOwner := make(map[string]string)
	uniqueTrainees := make(map[string]bool)

	for _, s := range sessions {
		sessionOwner[s.ID] = s.UserID
		if s.CreatedAt.Before(startOfDay) || !s.CreatedAt.Before(endOfDay) {
			continue
		}
		stats.TotalSessions++
		uniqueTrainees[s.UserID] = true

		us := stats.UserStats[s.UserID]
		us.UserID = s.UserID
		us.Sessions++
		stats.UserStats[s.UserID] = us
	}

	for _, m := range messages {
		if m.Timestamp.Before(startOfDay) || !m.Timestamp.Before(endOfDay) {
			continue
		}
		stats.TotalMessages++
		switch m.Sender {
		case models.SenderCharacter:
			stats.CharacterTurns++
		default:
			stats.TraineeTurns++
		}

		if owner, ok := sessionOwner[m.SessionID]; ok {
			uniqueTrainees[owner] = true
			us := stats.UserStats[owner]
			us.UserID = owner
			us.Messages++
			stats.UserStats[owner] = us
		}
	}

	stats.UniqueTrainees = len(uniqueTrainees)
	return stats
}
