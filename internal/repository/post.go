package repository

import (
	"context"
	"errors"

	"pinboard/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts. Create and
// Delete adjust the owner's postsCount in the same transaction as the
// row change.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, post *models.Post) error
	ListByOwner(ctx context.Context, ownerID uint, archived bool) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := incrementCounter(tx, post.OwnerID, "posts_count"); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}
	invalidateUsers(ctx, r.db, post.OwnerID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, post.ID)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", post.ID)
		}
		// Floored at zero so the counter never goes negative.
		if err := decrementCounter(tx, post.OwnerID, "posts_count"); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}
	invalidateUsers(ctx, r.db, post.OwnerID)
	return nil
}

func (r *postRepository) ListByOwner(ctx context.Context, ownerID uint, archived bool) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND archived = ?", ownerID, archived).
		Order("id").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
