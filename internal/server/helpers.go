package server

import (
	"errors"

	"pinboard/internal/auth"
	"pinboard/internal/middleware"
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was
// already committed by a helper. Handlers must return nil (not this
// error) so Fiber's ErrorHandler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(middleware.LocalsUserID).(uint)
	return id
}

// currentClaims returns the decoded token claims set by AuthRequired.
func currentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(middleware.LocalsClaims).(*auth.Claims)
	return claims
}

// tokenPayload echoes the token claims back, matching the shape
// authenticated list/detail endpoints return alongside their data.
func tokenPayload(c *fiber.Ctx) map[string]interface{} {
	if claims := currentClaims(c); claims != nil {
		return claims.Payload()
	}
	return nil
}

// parseID extracts a route parameter by name as a positive uint. On
// failure it writes a 400 response and returns errResponseWritten;
// callers should check: if err != nil { return nil }.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseBody decodes the JSON body into dst. On failure it writes a 400
// response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}
