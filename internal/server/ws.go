package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"yatav-backend/internal/models"
)

// Per-generation deadline at the provider-invocation suspension point.
// Adapters do not retry; a timed-out call surfaces as a fallback line.
const generateTimeout = 30 * time.Second

// Wire message shapes for real-time turns.
type inboundMessage struct {
	Type        string `json:"type"`
	CharacterID string `json:"character_id"`
	Content     string `json:"content"`
	ProgramType string `json:"program_type,omitempty"`
}

type outboundMessage struct {
	Type        string `json:"type"`
	Content     string `json:"content"`
	Timestamp   string `json:"timestamp"`
	CharacterID string `json:"character_id"`
}

// ConnectionManager tracks the live WebSocket connection per session. A
// session has at most one connection; a reconnect replaces the old one.
type ConnectionManager struct {
	mu    sync.RWMutex
	conns map[string]*websocket.Conn
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{conns: make(map[string]*websocket.Conn)}
}

func (m *ConnectionManager) Connect(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.conns[sessionID]; ok {
		old.Close()
	}
	m.conns[sessionID] = conn
	log.Printf("WebSocket connected for session: %s", sessionID)
}

func (m *ConnectionManager) Disconnect(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conns[sessionID] == conn {
		delete(m.conns, sessionID)
		log.Printf("WebSocket disconnected for session: %s", sessionID)
	}
}

func (m *ConnectionManager) Send(sessionID string, msg any) error {
	m.mu.RLock()
	conn, ok := m.conns[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return conn.WriteJSON(msg)
}

var upgrader = websocket.Upgrader{
	// Cross-origin policy is enforced by the CORS middleware on the REST
	// surface; the WS endpoint accepts the configured frontend origins.
	CheckOrigin: func(*http.Request) bool { return true },
}

func (s *Server) handleWebSocket(c echo.Context) error {
	sessionID := c.Param("session_id")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	s.conns.Connect(sessionID, conn)
	defer s.conns.Disconnect(sessionID, conn)

	ctx := c.Request().Context()
	if err := s.deps.Cache.MarkConnected(ctx, sessionID); err != nil {
		log.Printf("failed to mark session connected: %v", err)
	}
	defer func() {
		if err := s.deps.Cache.MarkDisconnected(context.Background(), sessionID); err != nil {
			log.Printf("failed to mark session disconnected: %v", err)
		}
	}()

	for {
		var in inboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error for session %s: %v", sessionID, err)
			}
			return nil
		}
		if in.Type != "user_message" {
			continue
		}
		s.handleUserMessage(sessionID, in)
	}
}

// handleUserMessage runs one chat turn: persist the trainee's message,
// generate the character reply, persist it, and push it back over the
// socket. Generation failure of any kind degrades to a locally generated
// client line; the trainee always gets a response.
func (s *Server) handleUserMessage(sessionID string, in inboundMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	// History is loaded before the new message is stored, so the current
	// turn enters the prompt exactly once.
	history, err := s.deps.Messages.RecentBySession(ctx, sessionID, 10)
	if err != nil {
		log.Printf("failed to load history for session %s: %v", sessionID, err)
	}

	now := time.Now().UTC()
	userMsg := &models.ChatMessage{
		ID:        newID(),
		SessionID: sessionID,
		Sender:    models.SenderUser,
		Content:   in.Content,
		Timestamp: now,
	}
	if err := s.deps.Messages.Insert(ctx, userMsg); err != nil {
		log.Printf("failed to persist user message: %v", err)
	}

	character, err := s.deps.Characters.Find(ctx, in.CharacterID)
	if err != nil {
		log.Printf("character %s not found for session %s: %v", in.CharacterID, sessionID, err)
	}

	var content string
	if character != nil {
		content, err = s.deps.AI.GenerateCharacterResponse(ctx, *character, history, in.Content, "", in.ProgramType)
		if err != nil {
			log.Printf("AI generation error for session %s: %v", sessionID, err)
			content = fallbackClientResponse(character)
		}
	} else {
		content = fallbackClientResponse(nil)
	}

	replyAt := time.Now().UTC()
	aiMsg := &models.ChatMessage{
		ID:        newID(),
		SessionID: sessionID,
		Sender:    models.SenderCharacter,
		Content:   content,
		Timestamp: replyAt,
		Metadata:  map[string]any{"character_id": in.CharacterID},
	}
	if err := s.deps.Messages.Insert(ctx, aiMsg); err != nil {
		log.Printf("failed to persist character message: %v", err)
	}
	if err := s.deps.Sessions.Touch(ctx, sessionID, replyAt); err != nil {
		log.Printf("failed to touch session %s: %v", sessionID, err)
	}
	if err := s.deps.Cache.BumpDailyMessages(ctx, replyAt); err != nil {
		log.Printf("failed to bump daily counter: %v", err)
	}

	out := outboundMessage{
		Type:        "ai_response",
		Content:     content,
		Timestamp:   replyAt.Format(time.RFC3339),
		CharacterID: in.CharacterID,
	}
	if err := s.conns.Send(sessionID, out); err != nil {
		log.Printf("failed to send ai_response for session %s: %v", sessionID, err)
	}
}
