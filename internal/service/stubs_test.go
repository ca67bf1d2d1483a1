package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn             func(context.Context, *models.User) error
	getByIDFn            func(context.Context, uint) (*models.User, error)
	getByEmailFn         func(context.Context, string) (*models.User, error)
	getByUsernameFn      func(context.Context, string) (*models.User, error)
	listFn               func(context.Context) ([]models.User, error)
	updateFn             func(context.Context, *models.User) error
	deleteFn             func(context.Context, *models.User) error
	searchByTagFn        func(context.Context, string) ([]models.User, error)
	followerUsernamesFn  func(context.Context, uint) ([]string, error)
	followingUsernamesFn func(context.Context, uint) ([]string, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) Delete(ctx context.Context, u *models.User) error {
	return s.deleteFn(ctx, u)
}
func (s *userRepoStub) SearchByTag(ctx context.Context, tag string) ([]models.User, error) {
	return s.searchByTagFn(ctx, tag)
}
func (s *userRepoStub) FollowerUsernames(ctx context.Context, id uint) ([]string, error) {
	return s.followerUsernamesFn(ctx, id)
}
func (s *userRepoStub) FollowingUsernames(ctx context.Context, id uint) ([]string, error) {
	return s.followingUsernamesFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(context.Context, *models.User) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", email)
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", username)
		},
		listFn:               func(context.Context) ([]models.User, error) { return nil, nil },
		updateFn:             func(context.Context, *models.User) error { return nil },
		deleteFn:             func(context.Context, *models.User) error { return nil },
		searchByTagFn:        func(context.Context, string) ([]models.User, error) { return nil, nil },
		followerUsernamesFn:  func(context.Context, uint) ([]string, error) { return nil, nil },
		followingUsernamesFn: func(context.Context, uint) ([]string, error) { return nil, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	followFn      func(context.Context, uint, uint) (*repository.FollowCounts, error)
	unfollowFn    func(context.Context, uint, uint) (*repository.FollowCounts, error)
	isFollowingFn func(context.Context, uint, uint) (bool, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) (*repository.FollowCounts, error) {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) (*repository.FollowCounts, error) {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint) (*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, *models.Post) error
	listByOwnerFn func(context.Context, uint, bool) ([]models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error {
	return s.createFn(ctx, p)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, p *models.Post) error {
	return s.updateFn(ctx, p)
}
func (s *postRepoStub) Delete(ctx context.Context, p *models.Post) error {
	return s.deleteFn(ctx, p)
}
func (s *postRepoStub) ListByOwner(ctx context.Context, ownerID uint, archived bool) ([]models.Post, error) {
	return s.listByOwnerFn(ctx, ownerID, archived)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		},
		updateFn:      func(context.Context, *models.Post) error { return nil },
		deleteFn:      func(context.Context, *models.Post) error { return nil },
		listByOwnerFn: func(context.Context, uint, bool) ([]models.Post, error) { return nil, nil },
	}
}
