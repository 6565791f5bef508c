package repository

import (
	"context"

	"gorm.io/gorm"

	"blogapi/internal/model"
	"blogapi/internal/util"
)

// PostRepository defines post persistence operations. Listings are ordered
// by creation time descending and always load the author for response
// shaping.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Save(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	ListPublished(ctx context.Context, page, perPage int) ([]model.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, page, perPage int) ([]model.Post, int64, error)
	// ListAll lists every post regardless of publication state; authorID 0
	// means no author filter.
	ListAll(ctx context.Context, authorID uint, page, perPage int) ([]model.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Save(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Delete(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, page, perPage int) ([]model.Post, int64, error) {
	return r.list(ctx, page, perPage, "is_published = ?", true)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, page, perPage int) ([]model.Post, int64, error) {
	return r.list(ctx, page, perPage, "author_id = ?", authorID)
}

func (r *postRepository) ListAll(ctx context.Context, authorID uint, page, perPage int) ([]model.Post, int64, error) {
	if authorID != 0 {
		return r.list(ctx, page, perPage, "author_id = ?", authorID)
	}
	return r.list(ctx, page, perPage, "")
}

func (r *postRepository) list(ctx context.Context, page, perPage int, cond string, args ...interface{}) ([]model.Post, int64, error) {
	page, perPage = util.NormalizePage(page, perPage)

	count := r.db.WithContext(ctx).Model(&model.Post{})
	if cond != "" {
		count = count.Where(cond, args...)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	find := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Offset(util.Offset(page, perPage)).
		Limit(perPage)
	if cond != "" {
		find = find.Where(cond, args...)
	}
	var posts []model.Post
	if err := find.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
