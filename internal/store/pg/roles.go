package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"accessgate.dev/internal/ids"
	"accessgate.dev/internal/rbac"
)

func (s *Store) CreateRole(ctx context.Context, role rbac.Role, permissionIDs []string) (rbac.Role, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return rbac.Role{}, err
	}
	defer func() { _ = tx.Rollback() }()

	id := ids.New()
	if _, err := tx.ExecContext(ctx, `
		insert into roles (id, name, description)
		values ($1, $2, nullif($3,''))
	`, id, role.Name, role.Description); err != nil {
		return rbac.Role{}, mapConstraintError(err)
	}
	if err := replaceRolePermissions(ctx, tx, id, permissionIDs); err != nil {
		return rbac.Role{}, err
	}
	if err := tx.Commit(); err != nil {
		return rbac.Role{}, err
	}
	return s.GetRole(ctx, id)
}

func (s *Store) ListRoles(ctx context.Context) ([]rbac.Role, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, coalesce(description,''), created_at, updated_at
		from roles
		order by name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []rbac.Role
	for rows.Next() {
		var role rbac.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		perms, err := s.rolePermissions(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Permissions = perms
	}
	return result, nil
}

func (s *Store) GetRole(ctx context.Context, id string) (rbac.Role, error) {
	var role rbac.Role
	err := s.db.QueryRowContext(ctx, `
		select id, name, coalesce(description,''), created_at, updated_at
		from roles
		where id = $1
	`, id).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rbac.Role{}, rbac.ErrNotFound
	}
	if err != nil {
		return rbac.Role{}, err
	}
	perms, err := s.rolePermissions(ctx, id)
	if err != nil {
		return rbac.Role{}, err
	}
	role.Permissions = perms
	return role, nil
}

func (s *Store) UpdateRole(ctx context.Context, id string, upd rbac.RoleUpdate) (rbac.Role, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return rbac.Role{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		setClauses []string
		args       []any
		idx        = 1
	)
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", idx))
		args = append(args, *upd.Name)
		idx++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = nullif($%d,'')", idx))
		args = append(args, *upd.Description)
		idx++
	}
	if len(setClauses) > 0 {
		setClauses = append(setClauses, "updated_at = now()")
		query := fmt.Sprintf(`update roles set %s where id = $%d`, strings.Join(setClauses, ", "), idx)
		args = append(args, id)
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return rbac.Role{}, mapConstraintError(err)
		}
		if aff, err := res.RowsAffected(); err == nil && aff == 0 {
			return rbac.Role{}, rbac.ErrNotFound
		}
	}
	if upd.PermissionIDs != nil {
		if _, err := tx.ExecContext(ctx, `delete from role_permissions where role_id = $1`, id); err != nil {
			return rbac.Role{}, err
		}
		if err := replaceRolePermissions(ctx, tx, id, upd.PermissionIDs); err != nil {
			return rbac.Role{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return rbac.Role{}, err
	}
	return s.GetRole(ctx, id)
}

func (s *Store) DeleteRole(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from roles where id = $1`, id)
	if err != nil {
		return mapConstraintError(err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return rbac.ErrNotFound
	}
	return nil
}

func (s *Store) rolePermissions(ctx context.Context, roleID string) ([]rbac.Permission, error) {
	rows, err := s.db.QueryContext(ctx, `
		select p.id, p.name, coalesce(p.description,''), p.created_at
		from permissions p
		join role_permissions rp on rp.permission_id = p.id
		where rp.role_id = $1
		order by p.name
	`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perms := []rbac.Permission{}
	for rows.Next() {
		var p rbac.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func replaceRolePermissions(ctx context.Context, tx *sql.Tx, roleID string, permissionIDs []string) error {
	for _, permID := range permissionIDs {
		if _, err := tx.ExecContext(ctx, `
			insert into role_permissions (role_id, permission_id)
			values ($1, $2)
		`, roleID, permID); err != nil {
			return mapConstraintError(err)
		}
	}
	return nil
}
