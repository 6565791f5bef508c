package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/logging"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// UserService covers the admin-only user management operations. Role checks
// happen in middleware; these methods assume the caller is an admin.
type UserService interface {
	List(ctx context.Context, page, perPage int) ([]model.User, int64, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	// ToggleActive flips a user's active flag. Admins cannot deactivate
	// themselves.
	ToggleActive(ctx context.Context, adminID, targetID uint) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService wires the admin user use cases.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context, page, perPage int) ([]model.User, int64, error) {
	return s.users.List(ctx, page, perPage)
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ToggleActive(ctx context.Context, adminID, targetID uint) (*model.User, error) {
	if adminID == targetID {
		return nil, apperrors.ErrSelfDeactivation
	}
	user, err := s.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("user active flag toggled",
		"admin_id", adminID,
		"user_id", user.ID,
		"is_active", user.IsActive,
	)
	return user, nil
}
