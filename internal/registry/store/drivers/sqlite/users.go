package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/store"
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, password_digest, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.PasswordDigest, u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(ctx, `
		SELECT id, name, password_digest, created_at, updated_at
		FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByCredentials(ctx context.Context, name, digest string) (domain.User, error) {
	// Single equality match on both columns; never load the digest for
	// out-of-band comparison.
	return r.scanUser(ctx, `
		SELECT id, name, password_digest, created_at, updated_at
		FROM users WHERE name = ? AND password_digest = ?`, name, digest)
}

func (r *usersRepo) scanUser(ctx context.Context, query string, args ...any) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.PasswordDigest, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) AddRole(ctx context.Context, userID, roleName string) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_roles (user_id, role_id)
		SELECT ?, id FROM roles WHERE name = ?`,
		userID, roleName,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the role name does not exist or the membership was already
		// present; disambiguate so callers can reject unknown roles.
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM roles WHERE name = ?`, roleName,
		).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("role %q: %w", roleName, store.ErrNotFound)
		}
	}
	return nil
}

func (r *usersRepo) HasAnyRole(ctx context.Context, userID string, roles []string) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(roles)), ",")
	args := make([]any, 0, len(roles)+1)
	args = append(args, userID)
	for _, role := range roles {
		args = append(args, role)
	}

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1)
		FROM user_roles ur
		JOIN roles ro ON ro.id = ur.role_id
		WHERE ur.user_id = ? AND ro.name IN (`+placeholders+`)`,
		args...,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) ListUserRoles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ro.name
		FROM user_roles ur
		JOIN roles ro ON ro.id = ur.role_id
		WHERE ur.user_id = ?
		ORDER BY ro.name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
