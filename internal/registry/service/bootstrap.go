package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/store"
	"github.com/chalkboard-sys/registry/pkg/idx"
)

// EnsureBaseRoles creates the built-in roles if they are missing. Safe to run
// on every startup; existing roles are left untouched.
func EnsureBaseRoles(ctx context.Context, s store.Store) error {
	for _, name := range []string{domain.RoleUser, domain.RoleAdmin} {
		_, err := s.Roles().GetRoleByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("lookup role %q: %w", name, err)
		}

		role := domain.Role{
			ID:        idx.New().String(),
			Name:      name,
			CreatedAt: time.Now(),
		}
		if err := s.Roles().CreateRole(ctx, role); err != nil {
			// Another instance may have raced us; that is fine.
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("create role %q: %w", name, err)
		}
	}
	return nil
}
