package sqlite

import (
	"context"
	"strings"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
)

type subjectsRepo struct {
	db dbtx
}

func (r *subjectsRepo) CreateSubjects(ctx context.Context, subjects []domain.Subject) error {
	for _, s := range subjects {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO subjects (name) VALUES (?)`, s.Name)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *subjectsRepo) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *subjectsRepo) DeleteSubjects(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM subjects WHERE name IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
