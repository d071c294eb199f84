package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
)

type groupsRepo struct {
	db dbtx
}

func (r *groupsRepo) CreateGroups(ctx context.Context, groups []domain.Group) error {
	for _, g := range groups {
		var curator sql.NullString
		if g.CuratorID != "" {
			curator = sql.NullString{String: g.CuratorID, Valid: true}
		}
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO study_groups (code, specialization, curator_id)
			VALUES (?, ?, ?)`,
			g.Code, g.Specialization, curator,
		)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *groupsRepo) GetGroupByCode(ctx context.Context, code string) (domain.Group, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT code, specialization, curator_id
		FROM study_groups WHERE code = ?`, code)
	return scanGroup(row)
}

func (r *groupsRepo) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT code, specialization, curator_id
		FROM study_groups ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupsRepo) UpdateGroup(ctx context.Context, g domain.Group) error {
	var curator sql.NullString
	if g.CuratorID != "" {
		curator = sql.NullString{String: g.CuratorID, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE study_groups SET specialization = ?, curator_id = ? WHERE code = ?`,
		g.Specialization, curator, g.Code,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowsAffected(res)
}

func (r *groupsRepo) DeleteGroups(ctx context.Context, codes []string) (int64, error) {
	if len(codes) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(codes)), ",")
	args := make([]any, len(codes))
	for i, code := range codes {
		args[i] = code
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM study_groups WHERE code IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanGroup(row rowScanner) (domain.Group, error) {
	var g domain.Group
	var curator sql.NullString
	if err := row.Scan(&g.Code, &g.Specialization, &curator); err != nil {
		return domain.Group{}, mapNotFound(err)
	}
	if curator.Valid {
		g.CuratorID = curator.String
	}
	return g, nil
}
