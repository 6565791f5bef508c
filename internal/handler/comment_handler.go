package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// CommentHandler serves the comment endpoints.
type CommentHandler struct {
	svc service.CommentService
}

// NewCommentHandler creates the comment handler.
func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// CreateCommentRequest is the comment creation payload.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CommentResponse is the wire shape of a comment.
type CommentResponse struct {
	ID             uint      `json:"id"`
	Content        string    `json:"content"`
	AuthorID       uint      `json:"author_id"`
	PostID         uint      `json:"post_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}

// CommentListResponse is the full comment list for a post, oldest first.
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int               `json:"total"`
}

func toCommentResponse(comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		AuthorID:  comment.AuthorID,
		PostID:    comment.PostID,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.AuthorUsername = comment.Author.Username
	}
	return resp
}

// Create godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/posts/{id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidationError("body", "", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.svc.Add(c.Request().Context(), postID, user, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// ListForPost godoc
// @Summary List a post's comments
// @Description Comments are ordered oldest first.
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} CommentListResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/posts/{id}/comments [get]
func (h *CommentHandler) ListForPost(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.svc.ListForPost(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentResponse(&comments[i]))
	}
	return c.JSON(http.StatusOK, CommentListResponse{Comments: out, Total: len(out)})
}

// Delete godoc
// @Summary Delete a comment
// @Description Only the comment's author or an admin may delete.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, messageResponse{Message: "comment deleted"})
}
