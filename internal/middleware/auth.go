package middleware

import (
	"context"
	"strings"

	"pinboard/internal/auth"
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthRequired for downstream handlers.
const (
	LocalsUserID = "userID"
	LocalsClaims = "claims"
)

// TokenVerifier verifies an access token and returns its claims.
type TokenVerifier interface {
	VerifyAccess(tokenString string) (*auth.Claims, error)
}

// AuthRequired enforces the bearer-header contract on protected routes:
// a missing header, a malformed prefix and an invalid token are all
// answered with the same 401 before any store access.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			AuthFailures.WithLabelValues("missing_header").Inc()
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid or missing token"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			AuthFailures.WithLabelValues("bad_prefix").Inc()
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid or missing token"))
		}

		claims, err := verifier.VerifyAccess(parts[1])
		if err != nil {
			AuthFailures.WithLabelValues("invalid_token").Inc()
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid or missing token"))
		}

		c.Locals(LocalsUserID, claims.UserID)
		c.Locals(LocalsClaims, claims)
		// ContextMiddleware runs before this handler, so the request
		// context gets the user id here for the context-aware logger.
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, claims.UserID))

		return c.Next()
	}
}
