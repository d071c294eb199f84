package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
)

type studentsRepo struct {
	db dbtx
}

func (r *studentsRepo) CreateStudents(ctx context.Context, students []domain.Student) error {
	for _, s := range students {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO students (id, name, surname, patronymic, group_code)
			VALUES (?, ?, ?, ?, ?)`,
			s.ID, s.Name, s.Surname, mapOptionalString(s.Patronymic), s.GroupCode,
		)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *studentsRepo) GetStudentByID(ctx context.Context, id string) (domain.Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, surname, patronymic, group_code
		FROM students WHERE id = ?`, id)
	return scanStudent(row)
}

func (r *studentsRepo) FindStudents(ctx context.Context, f domain.StudentFilter) ([]domain.Student, error) {
	// Search semantics: match on ANY of the provided fields.
	clause, args := studentClause(f, " OR ")
	query := `SELECT id, name, surname, patronymic, group_code FROM students`
	if clause != "" {
		query += " WHERE " + clause
	}
	query += " ORDER BY surname, name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *studentsRepo) UpdateStudent(ctx context.Context, s domain.Student) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE students SET name = ?, surname = ?, patronymic = ?, group_code = ?
		WHERE id = ?`,
		s.Name, s.Surname, mapOptionalString(s.Patronymic), s.GroupCode, s.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowsAffected(res)
}

func (r *studentsRepo) DeleteStudents(ctx context.Context, filters []domain.StudentFilter) (int64, error) {
	// Each filter is an AND of its fields; filters combine with OR.
	var clauses []string
	var args []any
	for _, f := range filters {
		clause, fargs := studentClause(f, " AND ")
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
		`DELETE FROM students WHERE `+strings.Join(clauses, " OR "), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func studentClause(f domain.StudentFilter, join string) (string, []any) {
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
	add("patronymic", f.Patronymic)
	add("group_code", f.GroupCode)

	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, join), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (domain.Student, error) {
	var s domain.Student
	var patronymic sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &s.Surname, &patronymic, &s.GroupCode); err != nil {
		return domain.Student{}, mapNotFound(err)
	}
	s.Patronymic = mapNullStringPtr(patronymic)
	return s, nil
}
