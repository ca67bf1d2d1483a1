package repository

import (
	"context"
	"fmt"
	"testing"

	"pinboard/internal/cache"
	"pinboard/internal/database"
	"pinboard/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// withCache backs the user cache with an in-memory redis for the
// duration of the test.
func withCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	return db
}

// mustCreateUser inserts a user with unique username/email/phone
// derived from the handle.
func mustCreateUser(t *testing.T, db *gorm.DB, handle string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Username:     handle,
		Email:        fmt.Sprintf("%s@example.com", handle),
		Phone:        fmt.Sprintf("555-%04d-%s", len(handle), handle),
		Password:     "$2a$10$notarealdigestnotarealdigestno",
		ProfileImage: models.DefaultProfileImage,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}
