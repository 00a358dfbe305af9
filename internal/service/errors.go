package service

import (
	"errors"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Viewer is the authenticated caller of a query
type Viewer struct {
	ID   string
	Role string
}

// IsAdmin reports whether the viewer bypasses entitlement scoping
func (v Viewer) IsAdmin() bool {
	return v.Role == model.RoleAdmin
}
