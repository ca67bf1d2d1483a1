package service

import (
	"errors"

	"pinboard/internal/models"
)

// isNotFound reports whether err is an AppError with the NotFound code.
func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}
