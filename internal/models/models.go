package models

import "time"

// User roles.
const (
	RoleTrainee    = "trainee"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	ID           string     `json:"id" bson:"id"`
	Email        string     `json:"email" bson:"email"`
	Name         string     `json:"name" bson:"name"`
	Role         string     `json:"role" bson:"role"`
	PasswordHash string     `json:"-" bson:"password"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
}

// ProgramConfig is the per-training-program tuning a character may carry.
// Keys of Character.TrainingPrograms are program types ("basic", "crisis",
// "techniques").
type ProgramConfig struct {
	Available             bool     `json:"available" bson:"available"`
	UrgencyLevel          string   `json:"urgency_level,omitempty" bson:"urgency_level,omitempty"`
	SafetyConcerns        []string `json:"safety_concerns,omitempty" bson:"safety_concerns,omitempty"`
	RecommendedTechniques []string `json:"recommended_techniques,omitempty" bson:"recommended_techniques,omitempty"`
	ComplexityLevel       string   `json:"complexity_level,omitempty" bson:"complexity_level,omitempty"`
	SessionType           string   `json:"session_type,omitempty" bson:"session_type,omitempty"`
}

// Character is a simulated counseling client. Every field beyond the id may
// be absent in stored documents; consumers fill placeholders for zero values.
type Character struct {
	ID                 string                   `json:"id" bson:"id"`
	Name               string                   `json:"name" bson:"name"`
	Age                int                      `json:"age" bson:"age"`
	Gender             string                   `json:"gender,omitempty" bson:"gender,omitempty"`
	Issue              string                   `json:"issue,omitempty" bson:"issue,omitempty"`
	PrimaryIssue       string                   `json:"primary_issue,omitempty" bson:"primary_issue,omitempty"`
	Background         string                   `json:"background,omitempty" bson:"background,omitempty"`
	CurrentSituation   string                   `json:"current_situation,omitempty" bson:"current_situation,omitempty"`
	Personality        string                   `json:"personality,omitempty" bson:"personality,omitempty"`
	CommunicationStyle string                   `json:"communication_style,omitempty" bson:"communication_style,omitempty"`
	EmotionalState     string                   `json:"emotional_state,omitempty" bson:"emotional_state,omitempty"`
	Difficulty         int                      `json:"difficulty" bson:"difficulty"`
	CharacterType      string                   `json:"character_type,omitempty" bson:"character_type,omitempty"`
	SystemPrompt       string                   `json:"system_prompt,omitempty" bson:"system_prompt,omitempty"`
	TrainingPrograms   map[string]ProgramConfig `json:"training_programs,omitempty" bson:"training_programs,omitempty"`
	CreatedAt          time.Time                `json:"created_at" bson:"created_at"`
	IsActive           bool                     `json:"is_active" bson:"is_active"`
}

// Session statuses.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionPaused    = "paused"
)

type Session struct {
	ID          string    `json:"id" bson:"id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	ProgramID   string    `json:"program_id" bson:"program_id"`
	CharacterID string    `json:"character_id" bson:"character_id"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Message senders.
const (
	SenderUser      = "user"
	SenderCharacter = "character"
)

// ChatMessage is one turn of a training conversation, chronological by
// Timestamp within a session.
type ChatMessage struct {
	ID        string         `json:"id" bson:"id"`
	SessionID string         `json:"session_id" bson:"session_id"`
	Sender    string         `json:"sender" bson:"sender"`
	Content   string         `json:"content" bson:"content"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}
