package store

import (
	"context"
	"errors"
	"time"

	"yatav-backend/internal/models"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type CharacterStore interface {
	Insert(ctx context.Context, ch *models.Character) error
	ListActive(ctx context.Context) ([]models.Character, error)
	FindActive(ctx context.Context, id string) (*models.Character, error)
	Find(ctx context.Context, id string) (*models.Character, error)
}

type SessionStore interface {
	Insert(ctx context.Context, s *models.Session) error
	ListByUser(ctx context.Context, userID string) ([]models.Session, error)
	FindForUser(ctx context.Context, id, userID string) (*models.Session, error)
	Touch(ctx context.Context, id string, at time.Time) error
	// CloseStale marks sessions still active but untouched since the cutoff
	// as completed, returning how many were closed.
	CloseStale(ctx context.Context, cutoff time.Time) (int64, error)
	CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Session, error)
}

type MessageStore interface {
	Insert(ctx context.Context, m *models.ChatMessage) error
	// RecentBySession returns up to limit latest messages of a session in
	// chronological order (oldest of the window first).
	RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.ChatMessage, error)
	Between(ctx context.Context, from, to time.Time) ([]models.ChatMessage, error)
}
