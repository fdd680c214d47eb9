package rbac

import "time"

// RoleName is drawn from a fixed enumeration; arbitrary role strings are
// rejected at the service boundary.
type RoleName string

const (
	RoleAdmin RoleName = "admin"
	RoleUser  RoleName = "user"
)

// Valid reports whether the name belongs to the enumeration.
func (n RoleName) Valid() bool {
	switch n {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User is an account holder. The password hash is owned by the persistence
// layer and excluded from every read model, so it never appears here.
type User struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	DocumentNumber string    `json:"document_number,omitempty"`
	Street         string    `json:"street,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	ZipCode        string    `json:"zip_code,omitempty"`
	IsActive       bool      `json:"is_active"`
	RoleID         string    `json:"role_id"`
	Role           *Role     `json:"role,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Role groups permissions under a name from the fixed enumeration. Each user
// has exactly one role.
type Role struct {
	ID          string       `json:"id"`
	Name        RoleName     `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Permission is a named capability attachable to any number of roles.
type Permission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUser carries validated input for user creation. Password is plaintext
// here; the service hashes it before anything touches the store.
type NewUser struct {
	FullName       string
	Email          string
	Password       string
	Phone          string
	DocumentNumber string
	Street         string
	City           string
	State          string
	ZipCode        string
	RoleID         string
	IsActive       *bool
}

// UserUpdate applies partial changes; nil fields are left untouched.
type UserUpdate struct {
	FullName       *string
	Email          *string
	Password       *string
	Phone          *string
	DocumentNumber *string
	Street         *string
	City           *string
	State          *string
	ZipCode        *string
	RoleID         *string
	IsActive       *bool
}

// RoleUpdate applies partial changes to a role. A non-nil PermissionIDs slice
// replaces the attached permission set wholesale.
type RoleUpdate struct {
	Name          *RoleName
	Description   *string
	PermissionIDs []string
}

// PermissionUpdate applies partial changes to a permission.
type PermissionUpdate struct {
	Name        *string
	Description *string
}
