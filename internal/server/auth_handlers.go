package server

import (
	"errors"

	"pinboard/internal/auth"
	"pinboard/internal/middleware"
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/signup.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req service.SignupInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Signup(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		"user_id", user.ID, "username", user.Username)

	return models.RespondWithData(c, fiber.StatusCreated, user)
}

// Login handles POST /api/login. An unknown email is a 404, a wrong
// password a 401.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"access":   pair.Access,
		"refresh":  pair.Refresh,
		"email":    user.Email,
		"username": user.Username,
	})
}

// Logout handles POST /api/logout by blacklisting the refresh token
// for its remaining lifetime.
func (s *Server) Logout(c *fiber.Ctx) error {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if req.Refresh == "" {
		return models.RespondWithError(c,
			models.NewValidationError("refresh token is required"))
	}

	if err := s.tokens.Revoke(c.UserContext(), req.Refresh); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid or expired token"))
		}
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"message": "Logged out",
	})
}
