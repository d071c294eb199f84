package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
)

type teachersRepo struct {
	db dbtx
}

func (r *teachersRepo) CreateTeachers(ctx context.Context, teachers []domain.Teacher) error {
	for _, t := range teachers {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO teachers (id, name, surname, patronymic, category, education)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.Surname, mapOptionalString(t.Patronymic), t.Category, t.Education,
		)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *teachersRepo) GetTeacherByID(ctx context.Context, id string) (domain.Teacher, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, surname, patronymic, category, education
		FROM teachers WHERE id = ?`, id)
	return scanTeacher(row)
}

func (r *teachersRepo) FindTeachers(ctx context.Context, f domain.TeacherFilter) ([]domain.Teacher, error) {
	clause, args := teacherClause(f, " OR ")
	query := `SELECT id, name, surname, patronymic, category, education FROM teachers`
	if clause != "" {
		query += " WHERE " + clause
	}
	query += " ORDER BY surname, name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []domain.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (r *teachersRepo) UpdateTeacher(ctx context.Context, t domain.Teacher) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE teachers SET name = ?, surname = ?, patronymic = ?, category = ?, education = ?
		WHERE id = ?`,
		t.Name, t.Surname, mapOptionalString(t.Patronymic), t.Category, t.Education, t.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowsAffected(res)
}

func (r *teachersRepo) DeleteTeachers(ctx context.Context, filters []domain.TeacherFilter) (int64, error) {
	var clauses []string
	var args []any
	for _, f := range filters {
		clause, fargs := teacherClause(f, " AND ")
		if clause == "" {
			continue
		}
		clauses = append(clauses, "("+clause+")")
		args = append(args, fargs...)
	}
	if len(clauses) == 0 {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM teachers WHERE `+strings.Join(clauses, " OR "), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func teacherClause(f domain.TeacherFilter, join string) (string, []any) {
	var conds []string
	var args []any
	add := func(col, val string) {
		if val != "" {
			conds = append(conds, col+" = ?")
			args = append(args, val)
		}
	}
	add("id", f.ID)
	add("name", f.Name)
	add("surname", f.Surname)
	add("category", f.Category)

	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, join), args
}

func scanTeacher(row rowScanner) (domain.Teacher, error) {
	var t domain.Teacher
	var patronymic sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &t.Surname, &patronymic, &t.Category, &t.Education); err != nil {
		return domain.Teacher{}, mapNotFound(err)
	}
	t.Patronymic = mapNullStringPtr(patronymic)
	return t, nil
}
