package domain

import "errors"

const (
	RoleUser    = "User"
	RoleManager = "Manager"
	RoleAdmin   = "Admin"
)

// Roles lists the accepted user roles in display order.
var Roles = []string{RoleUser, RoleManager, RoleAdmin}

var ErrInvalidCredentials = errors.New("invalid credentials")

// User is an account managed from the back office.
type User struct {
	Meta
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// UserFields holds everything a caller may supply when creating a user.
type UserFields struct {
	Name   string
	Email  string
	Role   string
	Avatar string
}

// UserPatch is a partial update. Nil fields keep the stored value.
type UserPatch struct {
	Name   *string
	Email  *string
	Role   *string
	Avatar *string
}

// NewUser builds an unsaved user from its fields.
func NewUser(f UserFields) User {
	return User{
		Name:   f.Name,
		Email:  f.Email,
		Role:   f.Role,
		Avatar: f.Avatar,
	}
}

// Apply merges the non-nil patch fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
}
