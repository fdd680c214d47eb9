package rbac

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accessgate.dev/internal/auth"
)

// Service validates input and hashes passwords before delegating to the store.
type Service struct {
	store Store
}

// NewService constructs the CRUD service.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("rbac store is required")
	}
	return &Service{store: store}, nil
}

// --- users ---

func (s *Service) CreateUser(ctx context.Context, in NewUser) (User, error) {
	fullName := strings.TrimSpace(in.FullName)
	if len(fullName) < 3 {
		return User{}, fmt.Errorf("%w: full_name must have at least 3 characters", ErrInvalidInput)
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return User{}, err
	}
	if len(in.Password) < 6 {
		return User{}, fmt.Errorf("%w: password must have at least 6 characters", ErrInvalidInput)
	}
	roleID := strings.TrimSpace(in.RoleID)
	if roleID == "" {
		return User{}, fmt.Errorf("%w: role_id is required", ErrInvalidInput)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	user := User{
		FullName:       fullName,
		Email:          email,
		Phone:          strings.TrimSpace(in.Phone),
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		Street:         strings.TrimSpace(in.Street),
		City:           strings.TrimSpace(in.City),
		State:          strings.TrimSpace(in.State),
		ZipCode:        strings.TrimSpace(in.ZipCode),
		RoleID:         roleID,
		IsActive:       true,
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	return s.store.CreateUser(ctx, user, hash)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	return s.store.GetUser(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, id string, upd UserUpdate) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if upd.FullName != nil {
		name := strings.TrimSpace(*upd.FullName)
		if len(name) < 3 {
			return User{}, fmt.Errorf("%w: full_name must have at least 3 characters", ErrInvalidInput)
		}
		upd.FullName = &name
	}
	if upd.Email != nil {
		email, err := normalizeEmail(*upd.Email)
		if err != nil {
			return User{}, err
		}
		upd.Email = &email
	}
	if upd.RoleID != nil {
		roleID := strings.TrimSpace(*upd.RoleID)
		if roleID == "" {
			return User{}, fmt.Errorf("%w: role_id is required", ErrInvalidInput)
		}
		upd.RoleID = &roleID
	}
	if upd.Password != nil {
		if len(*upd.Password) < 6 {
			return User{}, fmt.Errorf("%w: password must have at least 6 characters", ErrInvalidInput)
		}
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return User{}, err
		}
		upd.Password = &hash
	}
	return s.store.UpdateUser(ctx, id, upd)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	return s.store.DeleteUser(ctx, id)
}

// --- roles ---

func (s *Service) CreateRole(ctx context.Context, name RoleName, description string, permissionIDs []string) (Role, error) {
	name = RoleName(strings.TrimSpace(strings.ToLower(string(name))))
	if !name.Valid() {
		return Role{}, fmt.Errorf("%w: unknown role name %q", ErrInvalidInput, name)
	}
	role := Role{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	return s.store.CreateRole(ctx, role, dedupeIDs(permissionIDs))
}

func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.store.ListRoles(ctx)
}

func (s *Service) GetRole(ctx context.Context, id string) (Role, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Role{}, fmt.Errorf("%w: role_id is required", ErrInvalidInput)
	}
	return s.store.GetRole(ctx, id)
}

func (s *Service) UpdateRole(ctx context.Context, id string, upd RoleUpdate) (Role, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Role{}, fmt.Errorf("%w: role_id is required", ErrInvalidInput)
	}
	if upd.Name != nil {
		name := RoleName(strings.TrimSpace(strings.ToLower(string(*upd.Name))))
		if !name.Valid() {
			return Role{}, fmt.Errorf("%w: unknown role name %q", ErrInvalidInput, name)
		}
		upd.Name = &name
	}
	if upd.Description != nil {
		desc := strings.TrimSpace(*upd.Description)
		upd.Description = &desc
	}
	if upd.PermissionIDs != nil {
		upd.PermissionIDs = dedupeIDs(upd.PermissionIDs)
	}
	return s.store.UpdateRole(ctx, id, upd)
}

func (s *Service) DeleteRole(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: role_id is required", ErrInvalidInput)
	}
	return s.store.DeleteRole(ctx, id)
}

// --- permissions ---

func (s *Service) CreatePermission(ctx context.Context, name, description string) (Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Permission{}, fmt.Errorf("%w: permission name is required", ErrInvalidInput)
	}
	perm := Permission{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	return s.store.CreatePermission(ctx, perm)
}

func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.store.ListPermissions(ctx)
}

func (s *Service) GetPermission(ctx context.Context, id string) (Permission, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Permission{}, fmt.Errorf("%w: permission_id is required", ErrInvalidInput)
	}
	return s.store.GetPermission(ctx, id)
}

func (s *Service) UpdatePermission(ctx context.Context, id string, upd PermissionUpdate) (Permission, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Permission{}, fmt.Errorf("%w: permission_id is required", ErrInvalidInput)
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return Permission{}, fmt.Errorf("%w: permission name is required", ErrInvalidInput)
		}
		upd.Name = &name
	}
	if upd.Description != nil {
		desc := strings.TrimSpace(*upd.Description)
		upd.Description = &desc
	}
	return s.store.UpdatePermission(ctx, id, upd)
}

func (s *Service) DeletePermission(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: permission_id is required", ErrInvalidInput)
	}
	return s.store.DeletePermission(ctx, id)
}

// --- helpers ---

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	return email, nil
}

func dedupeIDs(values []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
