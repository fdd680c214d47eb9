package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"accessgate.dev/internal/auth"
	"accessgate.dev/internal/ids"
	"accessgate.dev/internal/rbac"
)

const userColumns = `u.id, u.full_name, u.email, coalesce(u.phone,''), coalesce(u.document_number,''),
	coalesce(u.street,''), coalesce(u.city,''), coalesce(u.state,''), coalesce(u.zip_code,''),
	u.is_active, u.role_id, r.name, coalesce(r.description,''), u.created_at, u.updated_at`

func scanUser(row interface{ Scan(...any) error }) (rbac.User, error) {
	var (
		u        rbac.User
		roleName rbac.RoleName
		roleDesc string
	)
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.DocumentNumber,
		&u.Street, &u.City, &u.State, &u.ZipCode,
		&u.IsActive, &u.RoleID, &roleName, &roleDesc, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return rbac.User{}, err
	}
	u.Role = &rbac.Role{ID: u.RoleID, Name: roleName, Description: roleDesc}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u rbac.User, passwordHash string) (rbac.User, error) {
	id := ids.New()
	_, err := s.db.ExecContext(ctx, `
		insert into users (id, full_name, email, phone, document_number, street, city, state, zip_code,
			is_active, password_hash, role_id)
		values ($1, $2, $3, nullif($4,''), nullif($5,''), nullif($6,''), nullif($7,''), nullif($8,''), nullif($9,''),
			$10, $11, $12)
	`, id, u.FullName, u.Email, u.Phone, u.DocumentNumber, u.Street, u.City, u.State, u.ZipCode,
		u.IsActive, passwordHash, u.RoleID)
	if err != nil {
		return rbac.User{}, mapConstraintError(err)
	}
	return s.GetUser(ctx, id)
}

func (s *Store) ListUsers(ctx context.Context) ([]rbac.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+userColumns+`
		from users u
		join roles r on r.id = u.role_id
		order by u.email
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []rbac.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (s *Store) GetUser(ctx context.Context, id string) (rbac.User, error) {
	row := s.db.QueryRowContext(ctx, `
		select `+userColumns+`
		from users u
		join roles r on r.id = u.role_id
		where u.id = $1
	`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rbac.User{}, rbac.ErrNotFound
	}
	if err != nil {
		return rbac.User{}, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd rbac.UserUpdate) (rbac.User, error) {
	var (
		setClauses []string
		args       []any
		idx        = 1
	)
	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}
	setNullable := func(column string, value string) {
		setClauses = append(setClauses, fmt.Sprintf("%s = nullif($%d,'')", column, idx))
		args = append(args, value)
		idx++
	}
	if upd.FullName != nil {
		set("full_name", *upd.FullName)
	}
	if upd.Email != nil {
		set("email", *upd.Email)
	}
	if upd.Password != nil {
		set("password_hash", *upd.Password)
	}
	if upd.Phone != nil {
		setNullable("phone", *upd.Phone)
	}
	if upd.DocumentNumber != nil {
		setNullable("document_number", *upd.DocumentNumber)
	}
	if upd.Street != nil {
		setNullable("street", *upd.Street)
	}
	if upd.City != nil {
		setNullable("city", *upd.City)
	}
	if upd.State != nil {
		setNullable("state", *upd.State)
	}
	if upd.ZipCode != nil {
		setNullable("zip_code", *upd.ZipCode)
	}
	if upd.RoleID != nil {
		set("role_id", *upd.RoleID)
	}
	if upd.IsActive != nil {
		set("is_active", *upd.IsActive)
	}
	if len(setClauses) > 0 {
		setClauses = append(setClauses, "updated_at = now()")
		query := fmt.Sprintf(`update users set %s where id = $%d`, strings.Join(setClauses, ", "), idx)
		args = append(args, id)
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return rbac.User{}, mapConstraintError(err)
		}
		if aff, err := res.RowsAffected(); err == nil && aff == 0 {
			return rbac.User{}, rbac.ErrNotFound
		}
	}
	return s.GetUser(ctx, id)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from users where id = $1`, id)
	if err != nil {
		return err
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

// FindCredentialByEmail is the only read path that selects password_hash.
func (s *Store) FindCredentialByEmail(ctx context.Context, email string) (auth.Credential, error) {
	var cred auth.Credential
	err := s.db.QueryRowContext(ctx, `
		select u.id, u.email, u.full_name, r.name, u.is_active, u.password_hash
		from users u
		join roles r on r.id = u.role_id
		where u.email = $1
	`, email).Scan(&cred.UserID, &cred.Email, &cred.FullName, &cred.Role, &cred.Active, &cred.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Credential{}, auth.ErrCredentialNotFound
	}
	if err != nil {
		return auth.Credential{}, err
	}
	return cred, nil
}
