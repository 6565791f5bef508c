package auth

import "blogapi/internal/model"

// CanModify implements the owner-or-admin rule for a resource owned by
// ownerID. For user records ownerID is the record's own id, so "owner"
// means the same user.
func CanModify(user *model.User, ownerID uint) bool {
	if user == nil {
		return false
	}
	return user.ID == ownerID || user.Role == model.RoleAdmin
}
