package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"yatav-backend/internal/ai"
	"yatav-backend/internal/analytics"
	"yatav-backend/internal/llm"
	"yatav-backend/internal/models"
	"yatav-backend/internal/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email, name and password are required")
	}

	ctx := c.Request().Context()
	if _, err := s.deps.Users.FindByEmail(ctx, req.Email); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	role := req.Role
	if role == "" {
		role = models.RoleTrainee
	}
	hash, err := s.deps.Auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           newID(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := s.deps.Users.Insert(ctx, user); err != nil {
		return err
	}

	token, err := s.deps.Auth.IssueToken(user.ID)
	if err != nil {
		return err
	}

	log.Printf("New user registered: %s", user.Email)
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	user, err := s.deps.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return err
	}
	if !s.deps.Auth.VerifyPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	now := time.Now().UTC()
	if err := s.deps.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("failed to update last login for %s: %v", user.ID, err)
	}
	user.LastLogin = &now

	token, err := s.deps.Auth.IssueToken(user.ID)
	if err != nil {
		return err
	}

	log.Printf("User logged in: %s", user.Email)
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

func (s *Server) me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) listCharacters(c echo.Context) error {
	characters, err := s.deps.Characters.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	if characters == nil {
		characters = []models.Character{}
	}
	return c.JSON(http.StatusOK, characters)
}

func (s *Server) getCharacter(c echo.Context) error {
	ch, err := s.deps.Characters.FindActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Character not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, ch)
}

type createSessionRequest struct {
	ProgramID   string `json:"program_id"`
	CharacterID string `json:"character_id"`
}

func (s *Server) createSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	if _, err := s.deps.Characters.FindActive(ctx, req.CharacterID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Character not found")
		}
		return err
	}

	user := currentUser(c)
	now := time.Now().UTC()
	session := &models.Session{
		ID:          newID(),
		UserID:      user.ID,
		ProgramID:   req.ProgramID,
		CharacterID: req.CharacterID,
		Status:      models.SessionActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.deps.Sessions.Insert(ctx, session); err != nil {
		return err
	}

	log.Printf("New training session created: %s for user %s", session.ID, user.Email)
	return c.JSON(http.StatusOK, session)
}

func (s *Server) listSessions(c echo.Context) error {
	sessions, err := s.deps.Sessions.ListByUser(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return c.JSON(http.StatusOK, sessions)
}

func (s *Server) getSession(c echo.Context) error {
	session, err := s.deps.Sessions.FindForUser(c.Request().Context(), c.Param("id"), currentUser(c).ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Session not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, session)
}

type addMessageRequest struct {
	Sender   string         `json:"sender"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *Server) addMessage(c echo.Context) error {
	var req addMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	sessionID := c.Param("id")
	if _, err := s.deps.Sessions.FindForUser(ctx, sessionID, currentUser(c).ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Session not found")
		}
		return err
	}

	msg := &models.ChatMessage{
		ID:        newID(),
		SessionID: sessionID,
		Sender:    req.Sender,
		Content:   req.Content,
		Timestamp: time.Now().UTC(),
		Metadata:  req.Metadata,
	}
	if err := s.deps.Messages.Insert(ctx, msg); err != nil {
		return err
	}
	if err := s.deps.Sessions.Touch(ctx, sessionID, msg.Timestamp); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success", "message_id": msg.ID})
}

type analyzeRequest struct {
	UserMessage       string            `json:"user_message"`
	CharacterResponse string            `json:"character_response"`
	Context           ai.SessionContext `json:"context"`
	Provider          string            `json:"provider,omitempty"`
}

func (s *Server) analyzeInteraction(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := s.deps.AI.AnalyzeCounselingInteraction(c.Request().Context(), req.UserMessage, req.CharacterResponse, req.Context, req.Provider)
	if err != nil {
		return s.aiError(err)
	}
	return c.JSON(http.StatusOK, result)
}

type emotionRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider,omitempty"`
}

func (s *Server) detectEmotion(c echo.Context) error {
	var req emotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := s.deps.AI.DetectEmotionAndSentiment(c.Request().Context(), req.Text, req.Provider)
	if err != nil {
		return s.aiError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) adminStats(c echo.Context) error {
	day := time.Now().UTC()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		day = parsed
	}

	ctx := c.Request().Context()
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.Add(24 * time.Hour)

	sessions, err := s.deps.Sessions.CreatedBetween(ctx, startOfDay, endOfDay)
	if err != nil {
		return err
	}
	messages, err := s.deps.Messages.Between(ctx, startOfDay, endOfDay)
	if err != nil {
		return err
	}

	stats := analytics.AnalyzeDay(sessions, messages, startOfDay)

	cached, err := s.deps.Cache.DailyMessages(ctx, startOfDay)
	if err != nil {
		log.Printf("failed to read cached counter: %v", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"stats":                 stats,
		"cached_realtime_count": cached,
	})
}

func (s *Server) health(c echo.Context) error {
	ctx := c.Request().Context()

	mongoStatus := "unknown"
	if s.deps.MongoPing != nil {
		mongoStatus = "connected"
		if err := s.deps.MongoPing(ctx); err != nil {
			mongoStatus = "disconnected"
		}
	}
	redisStatus := "disconnected"
	if err := s.deps.Cache.Ping(ctx); err == nil {
		redisStatus = "connected"
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   appVersion,
		"services": map[string]string{
			"mongodb": mongoStatus,
			"redis":   redisStatus,
		},
	})
}

// aiError maps orchestrator failures onto HTTP statuses: asking for an
// unregistered provider is the caller's mistake, anything else is upstream.
func (s *Server) aiError(err error) error {
	if errors.Is(err, llm.ErrProviderNotAvailable) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadGateway, "AI provider error")
}
