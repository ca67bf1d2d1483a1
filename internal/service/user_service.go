// Package service implements the business logic between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"strings"

	"pinboard/internal/auth"
	"pinboard/internal/config"
	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// UserService owns account lifecycle, credentials and profile logic.
type UserService struct {
	userRepo     repository.UserRepository
	deletePolicy string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, deletePolicy string) *UserService {
	return &UserService{userRepo: userRepo, deletePolicy: deletePolicy}
}

// SignupInput are the fields accepted at registration.
type SignupInput struct {
	FirstName    string  `json:"firstName"`
	MiddleName   *string `json:"middleName"`
	LastName     string  `json:"lastName"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Password     string  `json:"password"`
	ProfileImage string  `json:"profileImage"`
	Tags         string  `json:"tags"`
	Bio          string  `json:"bio"`
}

// UpdateProfileInput carries a bio/tags profile update.
type UpdateProfileInput struct {
	ActorID        uint
	TargetUsername string
	Bio            *string
	Tags           string
}

// NormalizeTags trims each comma-separated tag and re-joins them.
// Idempotent: normalizing an already-normalized string is a no-op.
func NormalizeTags(tags string) string {
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, ",")
}

// Signup validates the input, hashes the password and stores the user.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.Username == "" ||
		in.Email == "" || in.Phone == "" || in.Password == "" {
		return nil, models.NewValidationError(
			"firstName, lastName, username, email, phone and password are required")
	}

	digest, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	profileImage := in.ProfileImage
	if profileImage == "" {
		profileImage = models.DefaultProfileImage
	}

	user := &models.User{
		FirstName:    in.FirstName,
		MiddleName:   in.MiddleName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		Phone:        in.Phone,
		Password:     digest,
		Bio:          in.Bio,
		Tags:         NormalizeTags(in.Tags),
		ProfileImage: profileImage,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user iff a user with that email exists and
// the password matches. A missing user surfaces as NotFound (404), a
// wrong password as Unauthorized (401).
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(password, user.Password) {
		return nil, models.NewUnauthorizedError("Password incorrect")
	}
	return user, nil
}

// GetByID returns a user by id.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByUsername returns a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// List returns every user. The full set is intentional at this scale.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateEmail changes the actor's email, refusing one already taken.
func (s *UserService) UpdateEmail(ctx context.Context, actorID uint, newEmail string) (*models.User, error) {
	if newEmail == "" {
		return nil, models.NewValidationError("email is required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, newEmail)
	if err == nil && existing != nil {
		return nil, models.NewConflictError("Email is already taken")
	}
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	user.Email = newEmail
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword verifies the current password and stores the new hash.
func (s *UserService) UpdatePassword(ctx context.Context, actorID uint, currentPlain, newPlain string) error {
	if currentPlain == "" || newPlain == "" {
		return models.NewValidationError("current and new passwords are required")
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(currentPlain, user.Password) {
		return models.NewUnauthorizedError("Current password is incorrect")
	}

	digest, err := auth.HashPassword(newPlain)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = digest
	return s.userRepo.Update(ctx, user)
}

// UpdateProfile updates bio and tags of the target user; only the
// owner of the profile may do so.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, in.TargetUsername)
	if err != nil {
		return nil, err
	}
	if user.ID != in.ActorID {
		return nil, models.NewForbiddenError("You are not authorized to update this profile")
	}

	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Tags != "" {
		user.Tags = NormalizeTags(in.Tags)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetProfileImage stores the uploaded profile image URL on the actor.
func (s *UserService) SetProfileImage(ctx context.Context, actorID uint, url string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	user.ProfileImage = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchByTag finds users whose tags contain the given substring,
// case-insensitively.
func (s *UserService) SearchByTag(ctx context.Context, tag string) ([]models.User, error) {
	if tag == "" {
		return nil, models.NewValidationError("tag is required")
	}
	return s.userRepo.SearchByTag(ctx, tag)
}

// Delete removes the named user. Under the "self" policy the actor
// must be the target; the "any" policy reproduces the upstream
// behavior of allowing any authenticated caller.
func (s *UserService) Delete(ctx context.Context, actorID uint, targetUsername string) error {
	user, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if s.deletePolicy != config.DeletePolicyAny && user.ID != actorID {
		return models.NewForbiddenError("You are not authorized to delete this user")
	}
	return s.userRepo.Delete(ctx, user)
}

// FollowerUsernames lists usernames following the user.
func (s *UserService) FollowerUsernames(ctx context.Context, userID uint) ([]string, error) {
	return s.userRepo.FollowerUsernames(ctx, userID)
}

// FollowingUsernames lists usernames the user follows.
func (s *UserService) FollowingUsernames(ctx context.Context, userID uint) ([]string, error) {
	return s.userRepo.FollowingUsernames(ctx, userID)
}
