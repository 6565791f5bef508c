package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/service"
	"blogapi/internal/util"
)

// AdminHandler serves the admin-only management endpoints. Role enforcement
// happens in the route group's middleware.
type AdminHandler struct {
	users service.UserService
	posts service.PostService
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(users service.UserService, posts service.PostService) *AdminHandler {
	return &AdminHandler{users: users, posts: posts}
}

// UserListResponse is a page of users.
type UserListResponse struct {
	Users   []model.User `json:"users"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Total   int64        `json:"total"`
	Pages   int          `json:"pages"`
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} UserListResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, perPage := parsePagination(c)
	users, total, err := h.users.List(c.Request().Context(), page, perPage)
	if err != nil {
		return err
	}
	page, perPage = util.NormalizePage(page, perPage)
	return c.JSON(http.StatusOK, UserListResponse{
		Users:   users,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   util.Pages(total, perPage),
	})
}

// GetUser godoc
// @Summary Get a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ToggleUser godoc
// @Summary Toggle a user's active flag
// @Description Deactivated users cannot log in and their tokens stop resolving. Admins cannot toggle themselves.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/admin/users/{id}/toggle [post]
func (h *AdminHandler) ToggleUser(c echo.Context) error {
	admin := middleware.CurrentUser(c)
	if admin == nil {
		return apperrors.ErrUnauthorized
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.ToggleActive(c.Request().Context(), admin.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListPosts godoc
// @Summary List all posts including drafts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Filter by author"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} PostListResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/admin/posts [get]
func (h *AdminHandler) ListPosts(c echo.Context) error {
	var authorID uint
	if raw := c.QueryParam("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return apperrors.NewValidationError("user_id", raw, "invalid user_id parameter")
		}
		authorID = uint(parsed)
	}
	page, perPage := parsePagination(c)
	posts, total, err := h.posts.ListAll(c.Request().Context(), authorID, page, perPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(posts, total, page, perPage))
}
