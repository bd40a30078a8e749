package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"yatav-backend/internal/ai"
	"yatav-backend/internal/auth"
	"yatav-backend/internal/cache"
	"yatav-backend/internal/config"
	"yatav-backend/internal/store"
)

const appVersion = "2.0.0"

// Deps are the collaborators the HTTP surface is wired with.
type Deps struct {
	Users      store.UserStore
	Characters store.CharacterStore
	Sessions   store.SessionStore
	Messages   store.MessageStore
	AI         *ai.Service
	Auth       *auth.Service
	Cache      *cache.Cache
	// MongoPing reports document store connectivity for the health
	// endpoint; nil means unknown.
	MongoPing func(ctx context.Context) error
}

type Server struct {
	echo  *echo.Echo
	cfg   *config.Config
	deps  Deps
	conns *ConnectionManager
}

func New(cfg *config.Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	s := &Server{
		echo:  e,
		cfg:   cfg,
		deps:  deps,
		conns: NewConnectionManager(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/health", s.health)

	e.POST("/auth/register", s.register)
	e.POST("/auth/login", s.login)
	e.GET("/auth/me", s.me, s.requireAuth)

	e.GET("/characters", s.listCharacters)
	e.GET("/characters/:id", s.getCharacter)

	e.POST("/sessions", s.createSession, s.optionalAuth)
	e.GET("/sessions", s.listSessions, s.optionalAuth)
	e.GET("/sessions/:id", s.getSession, s.optionalAuth)
	e.POST("/sessions/:id/messages", s.addMessage, s.optionalAuth)

	e.POST("/analysis/interaction", s.analyzeInteraction, s.optionalAuth)
	e.POST("/analysis/emotion", s.detectEmotion, s.optionalAuth)

	e.GET("/admin/stats", s.adminStats, s.requireAuth, s.requireAdmin)

	e.GET("/ws/:session_id", s.handleWebSocket)
}

func (s *Server) Start() error {
	return s.echo.Start(s.cfg.ListenAddr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// newID returns a random 32-character hex identifier.
func newID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(b)
}
