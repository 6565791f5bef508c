package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
)

func sampleComment(id, authorID, postID uint) *model.Comment {
	return &model.Comment{ID: id, Content: "nice post", AuthorID: authorID, PostID: postID}
}

func TestCommentAdd(t *testing.T) {
	ctx := context.Background()
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)

	posts.On("FindByID", ctx, uint(3)).Return(samplePost(3, 7, true), nil)
	comments.On("Create", ctx, mock.AnythingOfType("*model.Comment")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Comment).ID = 11
	}).Return(nil)

	comment, err := svc.Add(ctx, 3, author(9), "  great write-up!  ")
	require.NoError(t, err)
	assert.Equal(t, uint(11), comment.ID)
	assert.Equal(t, "great write-up!", comment.Content)
	assert.Equal(t, uint(9), comment.AuthorID)
	assert.Equal(t, uint(3), comment.PostID)
	require.NotNil(t, comment.Author)
}

func TestCommentAddMissingPost(t *testing.T) {
	ctx := context.Background()
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)

	posts.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Add(ctx, 404, author(9), "great write-up!")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	comments.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestCommentAddValidation(t *testing.T) {
	ctx := context.Background()
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)

	posts.On("FindByID", ctx, uint(3)).Return(samplePost(3, 7, true), nil)

	tests := []struct {
		name    string
		content string
	}{
		{"too short", "x"},
		{"multibyte single character", "Я"}, // 1 character, 2 bytes
		{"whitespace only", "    "},
		{"too long", strings.Repeat("x", 1001)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, 3, author(9), tt.content)
			var ve *apperrors.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "content", ve.Field)
		})
	}
}

func TestCommentAddSanitizes(t *testing.T) {
	ctx := context.Background()
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)

	posts.On("FindByID", ctx, uint(3)).Return(samplePost(3, 7, true), nil)
	comments.On("Create", ctx, mock.AnythingOfType("*model.Comment")).Return(nil)

	comment, err := svc.Add(ctx, 3, author(9), `ok <script>alert(1)</script> fine`)
	require.NoError(t, err)
	assert.Equal(t, "ok  fine", comment.Content)
}

func TestCommentListForPost(t *testing.T) {
	ctx := context.Background()
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)

	posts.On("FindByID", ctx, uint(3)).Return(samplePost(3, 7, true), nil)
	comments.On("ListByPost", ctx, uint(3)).Return([]model.Comment{
		*sampleComment(1, 9, 3),
		*sampleComment(2, 8, 3),
	}, nil)

	got, err := svc.ListForPost(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCommentListMissingPost(t *testing.T) {
	ctx := context.Background()
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)

	posts.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ListForPost(ctx, 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCommentDelete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *model.User
		wantErr error
	}{
		{"owner", author(9), nil},
		{"admin", admin(50), nil},
		{"stranger", author(99), apperrors.ErrForbidden},
		{"moderator", moderator(98), apperrors.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := new(MockCommentRepository)
			posts := new(MockPostRepository)
			svc := NewCommentService(comments, posts)
			comment := sampleComment(11, 9, 3)
			comments.On("FindByID", ctx, uint(11)).Return(comment, nil)
			comments.On("Delete", ctx, comment).Return(nil)

			err := svc.Delete(ctx, 11, tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				comments.AssertNotCalled(t, "Delete", ctx, comment)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("missing comment", func(t *testing.T) {
		comments := new(MockCommentRepository)
		posts := new(MockPostRepository)
		svc := NewCommentService(comments, posts)
		comments.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, 404, admin(1)), apperrors.ErrNotFound)
	})
}
