package server

import (
	"io"

	"pinboard/internal/middleware"
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// profileView decorates a user with the username lists of both sides
// of the follow relation, the shape profile endpoints return.
type profileView struct {
	*models.User
	Followers []string `json:"followers"`
	Following []string `json:"following"`
}

func (s *Server) profile(c *fiber.Ctx, user *models.User) (*profileView, error) {
	followers, err := s.userService.FollowerUsernames(c.UserContext(), user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.userService.FollowingUsernames(c.UserContext(), user.ID)
	if err != nil {
		return nil, err
	}
	if followers == nil {
		followers = []string{}
	}
	if following == nil {
		following = []string{}
	}
	return &profileView{User: user, Followers: followers, Following: following}, nil
}

// GetAllUsers handles GET /api/all-users, returning every user plus
// the caller's token payload.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"users":   users,
		"payload": tokenPayload(c),
	})
}

// GetCurrentUser handles GET /api/user.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	view, err := s.profile(c, user)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, view)
}

// GetUserByUsername handles GET /api/users/:username, returning the
// profile plus the caller's token payload.
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	user, err := s.userService.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	view, err := s.profile(c, user)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"user":    view,
		"payload": tokenPayload(c),
	})
}

// ChangeEmail handles PUT /api/user/change-email.
func (s *Server) ChangeEmail(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateEmail(c.UserContext(), currentUserID(c), req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, user)
}

// ChangePassword handles PUT /api/user/change-password.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	err := s.userService.UpdatePassword(c.UserContext(), currentUserID(c),
		req.CurrentPassword, req.NewPassword)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, "Password updated successfully")
}

// UpdateBioTag handles PUT /api/users/:username/update-biotag. Only
// the profile owner may update it.
func (s *Server) UpdateBioTag(c *fiber.Ctx) error {
	var req struct {
		Bio  *string `json:"bio"`
		Tags string  `json:"tags"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		ActorID:        currentUserID(c),
		TargetUsername: c.Params("username"),
		Bio:            req.Bio,
		Tags:           req.Tags,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, user)
}

// UploadProfilePicture handles POST /api/users/uploadProfilePicture
// with a multipart "profileImage" file.
func (s *Server) UploadProfilePicture(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("profileImage")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("profileImage file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	url, err := s.uploader.Upload(c.UserContext(), fileHeader.Filename, content)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user, err := s.userService.SetProfileImage(c.UserContext(), currentUserID(c), url)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "profile image updated",
		"user_id", user.ID, "url", url)

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"profileImage": user.ProfileImage,
	})
}

// SearchUsersByTag handles GET /api/users/searchtag/:tag. An empty
// result set is a 404, matching the upstream API contract.
func (s *Server) SearchUsersByTag(c *fiber.Ctx) error {
	tag := c.Params("tag")
	users, err := s.userService.SearchByTag(c.UserContext(), tag)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if len(users) == 0 {
		return models.RespondWithError(c,
			models.NewNotFoundError("Users with tag", tag))
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"users":   users,
		"payload": tokenPayload(c),
	})
}

// DeleteUser handles DELETE /api/delete-user/:username.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := s.userService.Delete(c.UserContext(), currentUserID(c), username); err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user deleted",
		"username", username)

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{
		"message": "User deleted",
	})
}
