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
	titleMinLen   = 3
	titleMaxLen   = 200
	contentMinLen = 10
	contentMaxLen = 10000
)

// PostUpdate carries a partial post update. Nil fields are left untouched.
type PostUpdate struct {
	Title       *string
	Content     *string
	IsPublished *bool
}

// PostService covers the post lifecycle and its visibility rules.
type PostService interface {
	Create(ctx context.Context, author *model.User, title, content string, published bool) (*model.Post, error)
	// Get returns a post by id. Unpublished posts are visible only to their
	// author and admins; viewer may be nil for anonymous requests.
	Get(ctx context.Context, id uint, viewer *model.User) (*model.Post, error)
	Update(ctx context.Context, id uint, user *model.User, update PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, id uint, user *model.User) error
	ListPublished(ctx context.Context, page, perPage int) ([]model.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, page, perPage int) ([]model.Post, int64, error)
	// ListAll is the admin view: every post regardless of publication state,
	// optionally filtered by author (0 means no filter).
	ListAll(ctx context.Context, authorID uint, page, perPage int) ([]model.Post, int64, error)
}

type postService struct {
	posts repository.PostRepository
}

// NewPostService wires the post use cases.
func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, author *model.User, title, content string, published bool) (*model.Post, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	content, err = validateContent(content)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:       title,
		Content:     content,
		AuthorID:    author.ID,
		IsPublished: published,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Author = author

	logging.FromContext(ctx).Info("post created",
		"post_id", post.ID,
		"author_id", author.ID,
		"published", published,
	)
	return post, nil
}

func (s *postService) Get(ctx context.Context, id uint, viewer *model.User) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished && !auth.CanModify(viewer, post.AuthorID) {
		// Hidden drafts read as forbidden, not missing, for authenticated
		// non-owners; anonymous viewers get the same.
		return nil, apperrors.ErrForbidden
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id uint, user *model.User, update PostUpdate) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(user, post.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	if update.Title != nil {
		title, err := validateTitle(*update.Title)
		if err != nil {
			return nil, err
		}
		post.Title = title
	}
	if update.Content != nil {
		content, err := validateContent(*update.Content)
		if err != nil {
			return nil, err
		}
		post.Content = content
	}
	if update.IsPublished != nil {
		post.IsPublished = *update.IsPublished
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("post updated", "post_id", post.ID, "user_id", user.ID)
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id uint, user *model.User) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(user, post.AuthorID) {
		return apperrors.ErrForbidden
	}
	if err := s.posts.Delete(ctx, post); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("post deleted", "post_id", post.ID, "user_id", user.ID)
	return nil
}

func (s *postService) ListPublished(ctx context.Context, page, perPage int) ([]model.Post, int64, error) {
	return s.posts.ListPublished(ctx, page, perPage)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID uint, page, perPage int) ([]model.Post, int64, error) {
	return s.posts.ListByAuthor(ctx, authorID, page, perPage)
}

func (s *postService) ListAll(ctx context.Context, authorID uint, page, perPage int) ([]model.Post, int64, error) {
	return s.posts.ListAll(ctx, authorID, page, perPage)
}

func (s *postService) findPost(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		return "", apperrors.NewValidationError("title", title,
			"title must be between 3 and 200 characters")
	}
	// Titles go through the same stripping as content; anything script-like
	// that survives (e.g. an unterminated tag) is rejected outright.
	title = sanitize.Strip(title)
	if strings.Contains(strings.ToLower(title), "<script") {
		return "", apperrors.NewValidationError("title", title,
			"title contains disallowed markup")
	}
	return title, nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < contentMinLen || n > contentMaxLen {
		return "", apperrors.NewValidationError("content", "",
			"content must be between 10 and 10000 characters")
	}
	return sanitize.Strip(content), nil
}
