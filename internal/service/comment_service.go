package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/logging"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/sanitize"
)

const (
	commentMinLen = 2
	commentMaxLen = 1000
)

// CommentService covers adding, listing and removing comments. Comments are
// immutable once posted; the only mutation is deletion.
type CommentService interface {
	Add(ctx context.Context, postID uint, author *model.User, content string) (*model.Comment, error)
	ListForPost(ctx context.Context, postID uint) ([]model.Comment, error)
	Delete(ctx context.Context, id uint, user *model.User) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService wires the comment use cases.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

func (s *commentService) Add(ctx context.Context, postID uint, author *model.User, content string) (*model.Comment, error) {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < commentMinLen || n > commentMaxLen {
		return nil, apperrors.NewValidationError("content", "",
			"comment must be between 2 and 1000 characters")
	}

	comment := &model.Comment{
		Content:  sanitize.Strip(content),
		AuthorID: author.ID,
		PostID:   postID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = author

	logging.FromContext(ctx).Info("comment added",
		"comment_id", comment.ID,
		"post_id", postID,
		"author_id", author.ID,
	)
	return comment, nil
}

func (s *commentService) ListForPost(ctx context.Context, postID uint) ([]model.Comment, error) {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *commentService) Delete(ctx context.Context, id uint, user *model.User) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if !auth.CanModify(user, comment.AuthorID) {
		return apperrors.ErrForbidden
	}
	if err := s.comments.Delete(ctx, comment); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("comment deleted", "comment_id", id, "user_id", user.ID)
	return nil
}

func (s *commentService) ensurePostExists(ctx context.Context, postID uint) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}
