package repository

import (
	"context"
	"errors"

	"pinboard/internal/models"

	"gorm.io/gorm"
)

// FollowCounts is the pair of denormalized counters returned after a
// follow mutation: the target's followers and the actor's following.
type FollowCounts struct {
	FollowersCount int `json:"followersCount"`
	FollowingCount int `json:"followingCount"`
}

// FollowRepository maintains the directed follow relation. Every
// mutation updates the edge and both denormalized counters inside a
// single transaction so a crash cannot strand one side.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) (*FollowCounts, error)
	Unfollow(ctx context.Context, followerID, followeeID uint) (*FollowCounts, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// decrementCounter subtracts one from a user counter column, floored at zero.
func decrementCounter(tx *gorm.DB, userID uint, column string) error {
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(
			"CASE WHEN "+column+" > 0 THEN "+column+" - 1 ELSE 0 END",
		)).Error
}

func incrementCounter(tx *gorm.DB, userID uint, column string) error {
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) (*FollowCounts, error) {
	var counts FollowCounts
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var followee models.User
		if err := tx.First(&followee, followeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", followeeID)
			}
			return models.NewInternalError(err)
		}

		var existing models.Follow
		err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&existing).Error
		if err == nil {
			return models.NewConflictError("Already following this user")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewInternalError(err)
		}

		edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		if err := tx.Create(&edge).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("Already following this user")
			}
			return models.NewInternalError(err)
		}

		if err := incrementCounter(tx, followerID, "following_count"); err != nil {
			return models.NewInternalError(err)
		}
		if err := incrementCounter(tx, followeeID, "followers_count"); err != nil {
			return models.NewInternalError(err)
		}

		return tx.Raw(
			"SELECT (SELECT followers_count FROM users WHERE id = ?) AS followers_count, "+
				"(SELECT following_count FROM users WHERE id = ?) AS following_count",
			followeeID, followerID,
		).Scan(&counts).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}

	invalidateUsers(ctx, r.db, followerID, followeeID)
	return &counts, nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) (*FollowCounts, error) {
	var counts FollowCounts
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewBadStateError("Not following this user")
		}

		// Floored at zero, consistent with post deletion.
		if err := decrementCounter(tx, followerID, "following_count"); err != nil {
			return models.NewInternalError(err)
		}
		if err := decrementCounter(tx, followeeID, "followers_count"); err != nil {
			return models.NewInternalError(err)
		}

		return tx.Raw(
			"SELECT (SELECT followers_count FROM users WHERE id = ?) AS followers_count, "+
				"(SELECT following_count FROM users WHERE id = ?) AS following_count",
			followeeID, followerID,
		).Scan(&counts).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}

	invalidateUsers(ctx, r.db, followerID, followeeID)
	return &counts, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// asAppError keeps AppError values intact and wraps anything else.
func asAppError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewInternalError(err)
}
