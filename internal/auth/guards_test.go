package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blogapi/internal/model"
)

func TestCanModify(t *testing.T) {
	owner := &model.User{ID: 1, Role: model.RoleUser}
	stranger := &model.User{ID: 2, Role: model.RoleUser}
	admin := &model.User{ID: 3, Role: model.RoleAdmin}
	moderator := &model.User{ID: 4, Role: model.RoleModerator}

	assert.True(t, CanModify(owner, 1))
	assert.False(t, CanModify(stranger, 1))
	assert.True(t, CanModify(admin, 1))
	// Moderators get no ownership override.
	assert.False(t, CanModify(moderator, 1))
	assert.False(t, CanModify(nil, 1))
}
