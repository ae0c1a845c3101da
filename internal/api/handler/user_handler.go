package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-system/internal/core/ports"
)

// maxAvatarSize caps avatar uploads at 5MB.
const maxAvatarSize = 5 << 20

// UserHandler handles public user lookups and authenticated profile
// operations.
type UserHandler struct {
	userService ports.UserService
	postService ports.PostService
}

func NewUserHandler(userService ports.UserService, postService ports.PostService) *UserHandler {
	return &UserHandler{userService: userService, postService: postService}
}

// List handles GET /users, returning public projections only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  listUsersResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: users, Count: len(users)})
}

// Get handles GET /users/:id. Public projection only, never email or age.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  publicUserResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicUserResponse{User: *user})
}

// GetPosts handles GET /users/:id/posts. The user must exist; a missing user
// is a 404 rather than an empty list.
//
// @Summary      List a user's posts
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  userPostsResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/posts [get]
func (h *UserHandler) GetPosts(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.postService.ListByAuthor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userPostsResponse{
		User:  result.User,
		Posts: result.Posts,
		Count: len(result.Posts),
	})
}

// GetAvatar handles GET /users/:id/avatar, streaming the stored binary.
//
// @Summary      Get a user's avatar
// @Tags         users
// @Produce      image/jpeg
// @Param        id  path  int  true  "User id"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/avatar [get]
func (h *UserHandler) GetAvatar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	avatar, err := h.userService.OpenAvatar(c.Request().Context(), id)
	if err != nil {
		return err
	}
	defer avatar.Content.Close()

	return c.Stream(http.StatusOK, avatar.ContentType, avatar.Content)
}

// Me handles GET /users/me, returning the caller's full profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	subjectID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetMe(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// UpdateMe handles PUT /users/me. A changed email resets the verified flag
// and triggers a fresh verification email.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Mutable profile fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	subjectID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateMe(c.Request().Context(), subjectID, ports.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// DeleteMe handles DELETE /users/me, removing the account with its posts
// and avatar.
//
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	subjectID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteMe(c.Request().Context(), subjectID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Account deleted successfully"})
}

// UploadAvatar handles POST /users/me/avatar. Expects multipart field "avatar",
// JPEG or PNG, at most 5MB. Any rejection is the same generic upload error.
//
// @Summary      Upload or replace own avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Avatar image (JPEG/PNG, max 5MB)"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/me/avatar [post]
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	subjectID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}
	if fileHeader.Size > maxAvatarSize {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar exceeds the 5MB limit")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := h.userService.SaveAvatar(c.Request().Context(), subjectID, ports.AvatarUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Avatar uploaded successfully"})
}
