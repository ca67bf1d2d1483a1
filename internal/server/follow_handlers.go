package server

import (
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// followRequest carries the target of a follow/unfollow mutation.
type followRequest struct {
	UserID uint `json:"userId"`
}

// FollowUser handles POST /api/users/follow. Both denormalized
// counters and the edge change in one transaction; the response
// carries the updated counters.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	var req followRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	counts, err := s.followService.Follow(c.UserContext(), currentUserID(c), req.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"message":        "Followed successfully",
		"userId":         req.UserID,
		"followersCount": counts.FollowersCount,
		"followingCount": counts.FollowingCount,
	})
}

// UnfollowUser handles POST /api/users/unfollow.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	var req followRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	counts, err := s.followService.Unfollow(c.UserContext(), currentUserID(c), req.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"message":        "Unfollowed successfully",
		"userId":         req.UserID,
		"followersCount": counts.FollowersCount,
		"followingCount": counts.FollowingCount,
	})
}
