// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"pinboard/internal/cache"
	"pinboard/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, user *models.User) error
	SearchByTag(ctx context.Context, tag string) ([]models.User, error)
	FollowerUsernames(ctx context.Context, userID uint) ([]string, error)
	FollowingUsernames(ctx context.Context, userID uint) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports "UNIQUE constraint failed".
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("username, email or phone already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// cachedUser is the redis shape of a user record. The model hides
// Password from JSON so API responses never carry it, which means a
// plain round trip through the cache would come back with an empty
// digest and a later Save would wipe the stored hash. The cache copy
// carries the digest under its own field instead.
type cachedUser struct {
	models.User
	Digest string `json:"digest"`
}

func (cu *cachedUser) toUser() *models.User {
	user := cu.User
	user.Password = cu.Digest
	return &user
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var cu cachedUser
	err := cache.Aside(ctx, cache.UserKey(id), &cu, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&cu.User, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		cu.Digest = cu.User.Password
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cu.toUser(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", email)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var cu cachedUser
	err := cache.Aside(ctx, cache.UsernameKey(username), &cu, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).Where("username = ?", username).First(&cu.User).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", username)
			}
			return models.NewInternalError(err)
		}
		cu.Digest = cu.User.Password
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cu.toUser(), nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("username, email or phone already taken")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID, user.Username)
	return nil
}

// Delete removes the user, their posts and every follow edge touching
// them, adjusting the counterpart counters of surviving users — all in
// one transaction.
func (r *userRepository) Delete(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edges []models.Follow
		if err := tx.Where("follower_id = ? OR followee_id = ?", user.ID, user.ID).
			Find(&edges).Error; err != nil {
			return err
		}
		for _, e := range edges {
			if e.FollowerID == user.ID {
				if err := decrementCounter(tx, e.FolloweeID, "followers_count"); err != nil {
					return err
				}
			} else {
				if err := decrementCounter(tx, e.FollowerID, "following_count"); err != nil {
					return err
				}
			}
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", user.ID, user.ID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID, user.Username)
	return nil
}

// invalidateUsers drops both cache keys for each user id. Usernames
// are resolved in one query; an id with no surviving row still gets
// its id key dropped.
func invalidateUsers(ctx context.Context, db *gorm.DB, ids ...uint) {
	var rows []struct {
		ID       uint
		Username string
	}
	_ = db.WithContext(ctx).Model(&models.User{}).
		Where("id IN ?", ids).Find(&rows).Error

	named := make(map[uint]string, len(rows))
	for _, row := range rows {
		named[row.ID] = row.Username
	}
	for _, id := range ids {
		cache.InvalidateUser(ctx, id, named[id])
	}
}

func (r *userRepository) SearchByTag(ctx context.Context, tag string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.ToLower(tag) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(tags) LIKE ?", pattern).
		Order("id").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) FollowerUsernames(ctx context.Context, userID uint) ([]string, error) {
	return r.edgeUsernames(ctx, userID, "followee_id", "follower_id")
}

func (r *userRepository) FollowingUsernames(ctx context.Context, userID uint) ([]string, error) {
	return r.edgeUsernames(ctx, userID, "follower_id", "followee_id")
}

func (r *userRepository) edgeUsernames(ctx context.Context, userID uint, whereCol, joinCol string) ([]string, error) {
	usernames := []string{}
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f."+joinCol).
		Where("f."+whereCol+" = ?", userID).
		Order("users.id").
		Pluck("users.username", &usernames).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return usernames, nil
}
