package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"yatav-backend/internal/models"
	"yatav-backend/internal/store"
)

const userContextKey = "current_user"

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// requireAuth rejects requests without a valid bearer token.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authentication credentials")
		}
		userID, err := s.deps.Auth.VerifyToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authentication credentials")
		}
		user, err := s.deps.Users.FindByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}
			return err
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

// optionalAuth resolves the current user when a valid token is present and
// substitutes the demo trainee otherwise, so the platform stays usable
// without registration.
func (s *Server) optionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := bearerToken(c); token != "" {
			if userID, err := s.deps.Auth.VerifyToken(token); err == nil {
				if user, err := s.deps.Users.FindByID(c.Request().Context(), userID); err == nil {
					c.Set(userContextKey, user)
					return next(c)
				}
			}
		}
		c.Set(userContextKey, demoUser())
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := currentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}

func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

func demoUser() *models.User {
	return &models.User{
		ID:        "demo_user",
		Email:     "demo@yatav.com",
		Name:      "Demo User",
		Role:      models.RoleTrainee,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}
