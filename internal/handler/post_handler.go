package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/service"
	"blogapi/internal/util"
)

// PostHandler serves the post endpoints.
type PostHandler struct {
	svc service.PostService
}

// NewPostHandler creates the post handler.
func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// CreatePostRequest is the post creation payload. is_published defaults to
// true when omitted.
type CreatePostRequest struct {
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content" validate:"required"`
	IsPublished *bool  `json:"is_published"`
}

// UpdatePostRequest is a partial post update. Omitted fields are unchanged.
type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

// AuthorResponse is the embedded author summary on posts and comments.
type AuthorResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// PostResponse is the wire shape of a post.
type PostResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	AuthorID    uint           `json:"author_id"`
	IsPublished bool           `json:"is_published"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Author      AuthorResponse `json:"author"`
}

// PostListResponse is a page of posts.
type PostListResponse struct {
	Posts   []PostResponse `json:"posts"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Total   int64          `json:"total"`
	Pages   int            `json:"pages"`
}

func toPostResponse(post *model.Post) PostResponse {
	resp := PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		AuthorID:    post.AuthorID,
		IsPublished: post.IsPublished,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if post.Author != nil {
		resp.Author = AuthorResponse{ID: post.Author.ID, Username: post.Author.Username}
	}
	return resp
}

func toPostListResponse(posts []model.Post, total int64, page, perPage int) PostListResponse {
	page, perPage = util.NormalizePage(page, perPage)
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	return PostListResponse{
		Posts:   out,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   util.Pages(total, perPage),
	}
}

// List godoc
// @Summary List published posts
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} PostListResponse
// @Router /api/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, perPage := parsePagination(c)
	posts, total, err := h.svc.ListPublished(c.Request().Context(), page, perPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(posts, total, page, perPage))
}

// Get godoc
// @Summary Get a post
// @Description Unpublished posts are visible only to their author and admins.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.svc.Get(c.Request().Context(), id, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} PostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("body", "", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	post, err := h.svc.Create(c.Request().Context(), user, req.Title, req.Content, published)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// Update godoc
// @Summary Update a post
// @Description Only the author or an admin may update. Omitted fields are left unchanged.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} PostResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("body", "", "invalid request body")
	}

	post, err := h.svc.Update(c.Request().Context(), id, user, service.PostUpdate{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete godoc
// @Summary Delete a post
// @Description Only the author or an admin may delete. Comments are removed with the post.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "post deleted"})
}

// My godoc
// @Summary List the current user's posts
// @Description Includes unpublished posts.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} PostListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/posts/my [get]
func (h *PostHandler) My(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	page, perPage := parsePagination(c)
	posts, total, err := h.svc.ListByAuthor(c.Request().Context(), user.ID, page, perPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostListResponse(posts, total, page, perPage))
}
