package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// PostService enforces ownership and archival rules for posts.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePostInput are the fields accepted when creating a post. Any
// owner supplied by the client is ignored; ownership is forced to the
// authenticated actor.
type CreatePostInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	ImgURL  string `json:"imgUrl"`
}

// UpdatePostInput is a partial update; nil fields are left unchanged.
type UpdatePostInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	ImgURL  *string `json:"imgUrl"`
}

// Create stores a post owned by the actor and bumps their postsCount.
func (s *PostService) Create(ctx context.Context, actorID uint, in CreatePostInput) (*models.Post, error) {
	if in.Name == "" || in.Address == "" {
		return nil, models.NewValidationError("name and address are required")
	}

	post := &models.Post{
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
		ImgURL:  in.ImgURL,
		OwnerID: actorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// getOwned loads a post and verifies the actor owns it.
func (s *PostService) getOwned(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != actorID {
		return nil, models.NewForbiddenError("Not authorized")
	}
	return post, nil
}

// Update applies a partial update to a post the actor owns.
func (s *PostService) Update(ctx context.Context, actorID, postID uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.getOwned(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		post.Name = *in.Name
	}
	if in.Address != nil {
		post.Address = *in.Address
	}
	if in.Phone != nil {
		post.Phone = *in.Phone
	}
	if in.ImgURL != nil {
		post.ImgURL = *in.ImgURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post the actor owns, decrementing their postsCount
// (floored at zero).
func (s *PostService) Delete(ctx context.Context, actorID, postID uint) error {
	post, err := s.getOwned(ctx, actorID, postID)
	if err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, post)
}

// Archive sets the archived flag on a post the actor owns. The flag
// must be an explicit boolean in the request.
func (s *PostService) Archive(ctx context.Context, actorID, postID uint, archived *bool) (*models.Post, error) {
	post, err := s.getOwned(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	if archived == nil {
		return nil, models.NewValidationError("Invalid archived status")
	}

	post.Archived = *archived
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListByOwnerEmail returns the owner's posts filtered by archived state.
func (s *PostService) ListByOwnerEmail(ctx context.Context, email string, archived bool) ([]models.Post, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByOwner(ctx, user.ID, archived)
}

// ListByOwnerUsername returns the owner's posts filtered by archived state.
func (s *PostService) ListByOwnerUsername(ctx context.Context, username string, archived bool) ([]models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByOwner(ctx, user.ID, archived)
}
