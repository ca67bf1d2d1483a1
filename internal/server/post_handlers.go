package server

import (
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts/create. Ownership is forced to
// the authenticated caller and their postsCount is incremented in the
// same transaction.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, post)
}

// UpdatePost handles PUT /api/posts/:id with a partial update.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdatePostInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, svcErr := s.postService.Update(c.UserContext(), currentUserID(c), postID, req)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondWithData(c, fiber.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/delete/:id. The owner's
// postsCount is decremented, floored at zero.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.Delete(c.UserContext(), currentUserID(c), postID); svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"message": "Post deleted",
	})
}

// ArchivePost handles PATCH /api/posts/archive/:id. The archived flag
// must be an explicit boolean in the body.
func (s *Server) ArchivePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Archived *bool `json:"archived"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, svcErr := s.postService.Archive(c.UserContext(), currentUserID(c), postID, req.Archived)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}
	return models.RespondWithData(c, fiber.StatusOK, post)
}

// GetPostsByOwnerEmail handles GET /api/posts/owner/:email, returning
// the owner's non-archived posts.
func (s *Server) GetPostsByOwnerEmail(c *fiber.Ctx) error {
	posts, err := s.postService.ListByOwnerEmail(c.UserContext(), c.Params("email"), false)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, posts)
}

// GetPostsByOwnerUsername handles GET /api/posts/username/:username,
// returning the owner's non-archived posts.
func (s *Server) GetPostsByOwnerUsername(c *fiber.Ctx) error {
	posts, err := s.postService.ListByOwnerUsername(c.UserContext(), c.Params("username"), false)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, posts)
}

// GetArchivedPostsByOwnerEmail handles GET
// /api/posts/archived/owner/:email.
func (s *Server) GetArchivedPostsByOwnerEmail(c *fiber.Ctx) error {
	posts, err := s.postService.ListByOwnerEmail(c.UserContext(), c.Params("email"), true)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, posts)
}
