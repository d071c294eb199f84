package sqlite

import (
	"context"
	"strings"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
)

type gradesRepo struct {
	db dbtx
}

func (r *gradesRepo) CreateGrades(ctx context.Context, entries []domain.GradeEntry) error {
	for _, e := range entries {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO grade_log (id, student_id, subject, date, grade)
			VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.StudentID, e.Subject, e.Date, e.Grade,
		)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *gradesRepo) GetGradeByID(ctx context.Context, id string) (domain.GradeEntry, error) {
	var e domain.GradeEntry
	err := r.db.QueryRowContext(ctx, `
		SELECT id, student_id, subject, date, grade
		FROM grade_log WHERE id = ?`, id,
	).Scan(&e.ID, &e.StudentID, &e.Subject, &e.Date, &e.Grade)
	if err != nil {
		return domain.GradeEntry{}, mapNotFound(err)
	}
	return e, nil
}

func (r *gradesRepo) FindGrades(ctx context.Context, f domain.GradeFilter) ([]domain.GradeEntry, error) {
	// Match any of the provided criteria; the student name fields go
	// through a join since the grade row only carries the student id.
	var conds []string
	var args []any

	if !f.From.IsZero() && !f.To.IsZero() {
		conds = append(conds, "(g.date >= ? AND g.date <= ?)")
		args = append(args, f.From, f.To)
	}
	if f.Subject != "" {
		conds = append(conds, "g.subject = ?")
		args = append(args, f.Subject)
	}
	if f.StudentID != "" {
		conds = append(conds, "g.student_id = ?")
		args = append(args, f.StudentID)
	}
	if f.StudentName != "" {
		conds = append(conds, "s.name = ?")
		args = append(args, f.StudentName)
	}
	if f.StudentSurname != "" {
		conds = append(conds, "s.surname = ?")
		args = append(args, f.StudentSurname)
	}
	if f.StudentPatronymic != "" {
		conds = append(conds, "s.patronymic = ?")
		args = append(args, f.StudentPatronymic)
	}
	if f.GroupCode != "" {
		conds = append(conds, "s.group_code = ?")
		args = append(args, f.GroupCode)
	}

	query := `
		SELECT g.id, g.student_id, g.subject, g.date, g.grade
		FROM grade_log g
		JOIN students s ON s.id = g.student_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " OR ")
	}
	query += " ORDER BY g.date, g.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.GradeEntry
	for rows.Next() {
		var e domain.GradeEntry
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Subject, &e.Date, &e.Grade); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *gradesRepo) UpdateGrade(ctx context.Context, e domain.GradeEntry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE grade_log SET student_id = ?, subject = ?, date = ?, grade = ?
		WHERE id = ?`,
		e.StudentID, e.Subject, e.Date, e.Grade, e.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowsAffected(res)
}

func (r *gradesRepo) DeleteGrades(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM grade_log WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
