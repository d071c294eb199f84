package sqlite

import (
	"context"
	"strings"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
)

type scheduleRepo struct {
	db dbtx
}

func (r *scheduleRepo) CreateLessons(ctx context.Context, lessons []domain.Lesson) error {
	for _, l := range lessons {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO schedule (id, date, subject, teacher_id, group_code, cabinet)
			VALUES (?, ?, ?, ?, ?, ?)`,
			l.ID, l.Date, l.Subject, l.TeacherID, l.GroupCode, l.Cabinet,
		)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *scheduleRepo) GetLessonByID(ctx context.Context, id string) (domain.Lesson, error) {
	var l domain.Lesson
	err := r.db.QueryRowContext(ctx, `
		SELECT id, date, subject, teacher_id, group_code, cabinet
		FROM schedule WHERE id = ?`, id,
	).Scan(&l.ID, &l.Date, &l.Subject, &l.TeacherID, &l.GroupCode, &l.Cabinet)
	if err != nil {
		return domain.Lesson{}, mapNotFound(err)
	}
	return l, nil
}

func (r *scheduleRepo) FindLessons(ctx context.Context, f domain.LessonFilter) ([]domain.Lesson, error) {
	var conds []string
	var args []any

	if !f.From.IsZero() && !f.To.IsZero() {
		conds = append(conds, "(date >= ? AND date <= ?)")
		args = append(args, f.From, f.To)
	}
	if f.Subject != "" {
		conds = append(conds, "subject = ?")
		args = append(args, f.Subject)
	}
	if f.TeacherID != "" {
		conds = append(conds, "teacher_id = ?")
		args = append(args, f.TeacherID)
	}
	if f.GroupCode != "" {
		conds = append(conds, "group_code = ?")
		args = append(args, f.GroupCode)
	}
	if f.Cabinet != 0 {
		conds = append(conds, "cabinet = ?")
		args = append(args, f.Cabinet)
	}

	query := `SELECT id, date, subject, teacher_id, group_code, cabinet FROM schedule`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " OR ")
	}
	query += " ORDER BY date, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		if err := rows.Scan(&l.ID, &l.Date, &l.Subject, &l.TeacherID, &l.GroupCode, &l.Cabinet); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *scheduleRepo) UpdateLesson(ctx context.Context, l domain.Lesson) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE schedule SET date = ?, subject = ?, teacher_id = ?, group_code = ?, cabinet = ?
		WHERE id = ?`,
		l.Date, l.Subject, l.TeacherID, l.GroupCode, l.Cabinet, l.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowsAffected(res)
}

func (r *scheduleRepo) DeleteLessons(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM schedule WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
