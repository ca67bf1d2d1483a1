package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// FollowService applies the follow/unfollow rules on top of the
// transactional follow repository.
type FollowService struct {
	followRepo repository.FollowRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository) *FollowService {
	return &FollowService{followRepo: followRepo}
}

// Follow adds the directed edge actor→target and returns the updated
// counters. Self-loops are rejected; an existing edge is a Conflict.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID uint) (*repository.FollowCounts, error) {
	if targetID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	if actorID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}
	return s.followRepo.Follow(ctx, actorID, targetID)
}

// Unfollow removes the edge; absence of the edge is a BadState.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID uint) (*repository.FollowCounts, error) {
	if targetID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	if actorID == targetID {
		return nil, models.NewValidationError("You cannot unfollow yourself")
	}
	return s.followRepo.Unfollow(ctx, actorID, targetID)
}
