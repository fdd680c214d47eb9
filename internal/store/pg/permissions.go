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

func (s *Store) CreatePermission(ctx context.Context, perm rbac.Permission) (rbac.Permission, error) {
	id := ids.New()
	if _, err := s.db.ExecContext(ctx, `
		insert into permissions (id, name, description)
		values ($1, $2, nullif($3,''))
	`, id, perm.Name, perm.Description); err != nil {
		return rbac.Permission{}, mapConstraintError(err)
	}
	return s.GetPermission(ctx, id)
}

func (s *Store) ListPermissions(ctx context.Context) ([]rbac.Permission, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, coalesce(description,''), created_at
		from permissions
		order by name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []rbac.Permission
	for rows.Next() {
		var p rbac.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *Store) GetPermission(ctx context.Context, id string) (rbac.Permission, error) {
	var p rbac.Permission
	err := s.db.QueryRowContext(ctx, `
		select id, name, coalesce(description,''), created_at
		from permissions
		where id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rbac.Permission{}, rbac.ErrNotFound
	}
	if err != nil {
		return rbac.Permission{}, err
	}
	return p, nil
}

func (s *Store) UpdatePermission(ctx context.Context, id string, upd rbac.PermissionUpdate) (rbac.Permission, error) {
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
		query := fmt.Sprintf(`update permissions set %s where id = $%d`, strings.Join(setClauses, ", "), idx)
		args = append(args, id)
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return rbac.Permission{}, mapConstraintError(err)
		}
		if aff, err := res.RowsAffected(); err == nil && aff == 0 {
			return rbac.Permission{}, rbac.ErrNotFound
		}
	}
	return s.GetPermission(ctx, id)
}

func (s *Store) DeletePermission(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from permissions where id = $1`, id)
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
