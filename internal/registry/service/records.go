package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
	"github.com/chalkboard-sys/registry/internal/registry/store"
	"github.com/chalkboard-sys/registry/pkg/idx"
)

// RecordsService is the CRUD layer over the school records: students,
// teachers, groups, subjects, the grade log, and the schedule. It assigns
// identifiers, validates required fields, and guards destructive operations
// against accidentally-empty filters.
type RecordsService struct {
	Store store.Store
}

// Students

func (s *RecordsService) AddStudents(ctx context.Context, students []domain.Student) ([]domain.Student, error) {
	if len(students) == 0 {
		return nil, fmt.Errorf("%w: no students given", ErrMalformedRequest)
	}
	for i := range students {
		st := &students[i]
		if st.Name == "" || st.Surname == "" || st.GroupCode == "" {
			return nil, fmt.Errorf("%w: name, surname and groupCode are required", ErrMalformedRequest)
		}
		st.ID = idx.New().String()
	}
	if err := s.Store.Students().CreateStudents(ctx, students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent is a point read by id.
func (s *RecordsService) GetStudent(ctx context.Context, id string) (domain.Student, error) {
	return s.Store.Students().GetStudentByID(ctx, id)
}

// FindStudents matches on any provided filter field. An id in the filter
// wins outright: the other fields are ignored and only the id-matched
// student comes back.
func (s *RecordsService) FindStudents(ctx context.Context, f domain.StudentFilter) ([]domain.Student, error) {
	if f.ID != "" {
		st, err := s.GetStudent(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		return []domain.Student{st}, nil
	}
	return s.Store.Students().FindStudents(ctx, f)
}

func (s *RecordsService) UpdateStudent(ctx context.Context, st domain.Student) error {
	if st.ID == "" {
		return fmt.Errorf("%w: id is required", ErrMalformedRequest)
	}
	if st.Name == "" || st.Surname == "" || st.GroupCode == "" {
		return fmt.Errorf("%w: name, surname and groupCode are required", ErrMalformedRequest)
	}
	return s.Store.Students().UpdateStudent(ctx, st)
}

func (s *RecordsService) RemoveStudents(ctx context.Context, filters []domain.StudentFilter) (int64, error) {
	if len(filters) == 0 {
		return 0, fmt.Errorf("%w: no filters given", ErrMalformedRequest)
	}
	for _, f := range filters {
		if f.Empty() {
			return 0, fmt.Errorf("%w: empty filter would match everything", ErrMalformedRequest)
		}
	}
	return s.Store.Students().DeleteStudents(ctx, filters)
}

// Teachers

func (s *RecordsService) AddTeachers(ctx context.Context, teachers []domain.Teacher) ([]domain.Teacher, error) {
	if len(teachers) == 0 {
		return nil, fmt.Errorf("%w: no teachers given", ErrMalformedRequest)
	}
	for i := range teachers {
		t := &teachers[i]
		if t.Name == "" || t.Surname == "" {
			return nil, fmt.Errorf("%w: name and surname are required", ErrMalformedRequest)
		}
		t.ID = idx.New().String()
	}
	if err := s.Store.Teachers().CreateTeachers(ctx, teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// GetTeacher is a point read by id.
func (s *RecordsService) GetTeacher(ctx context.Context, id string) (domain.Teacher, error) {
	return s.Store.Teachers().GetTeacherByID(ctx, id)
}

// FindTeachers matches on any provided filter field; an id wins outright.
func (s *RecordsService) FindTeachers(ctx context.Context, f domain.TeacherFilter) ([]domain.Teacher, error) {
	if f.ID != "" {
		t, err := s.GetTeacher(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		return []domain.Teacher{t}, nil
	}
	return s.Store.Teachers().FindTeachers(ctx, f)
}

func (s *RecordsService) UpdateTeacher(ctx context.Context, t domain.Teacher) error {
	if t.ID == "" {
		return fmt.Errorf("%w: id is required", ErrMalformedRequest)
	}
	if t.Name == "" || t.Surname == "" {
		return fmt.Errorf("%w: name and surname are required", ErrMalformedRequest)
	}
	return s.Store.Teachers().UpdateTeacher(ctx, t)
}

func (s *RecordsService) RemoveTeachers(ctx context.Context, filters []domain.TeacherFilter) (int64, error) {
	if len(filters) == 0 {
		return 0, fmt.Errorf("%w: no filters given", ErrMalformedRequest)
	}
	for _, f := range filters {
		if f.Empty() {
			return 0, fmt.Errorf("%w: empty filter would match everything", ErrMalformedRequest)
		}
	}
	return s.Store.Teachers().DeleteTeachers(ctx, filters)
}

// Groups

func (s *RecordsService) AddGroups(ctx context.Context, groups []domain.Group) error {
	if len(groups) == 0 {
		return fmt.Errorf("%w: no groups given", ErrMalformedRequest)
	}
	for _, g := range groups {
		if g.Code == "" {
			return fmt.Errorf("%w: code is required", ErrMalformedRequest)
		}
	}
	err := s.Store.Groups().CreateGroups(ctx, groups)
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrDuplicateName
	}
	return err
}

// GetGroup is a point read by group code.
func (s *RecordsService) GetGroup(ctx context.Context, code string) (domain.Group, error) {
	return s.Store.Groups().GetGroupByCode(ctx, code)
}

func (s *RecordsService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return s.Store.Groups().ListGroups(ctx)
}

func (s *RecordsService) UpdateGroup(ctx context.Context, g domain.Group) error {
	if g.Code == "" {
		return fmt.Errorf("%w: code is required", ErrMalformedRequest)
	}
	return s.Store.Groups().UpdateGroup(ctx, g)
}

func (s *RecordsService) RemoveGroups(ctx context.Context, codes []string) (int64, error) {
	codes = nonEmpty(codes)
	if len(codes) == 0 {
		return 0, fmt.Errorf("%w: no group codes given", ErrMalformedRequest)
	}
	return s.Store.Groups().DeleteGroups(ctx, codes)
}

// Subjects

func (s *RecordsService) AddSubjects(ctx context.Context, subjects []domain.Subject) error {
	if len(subjects) == 0 {
		return fmt.Errorf("%w: no subjects given", ErrMalformedRequest)
	}
	for _, sub := range subjects {
		if sub.Name == "" {
			return fmt.Errorf("%w: name is required", ErrMalformedRequest)
		}
	}
	err := s.Store.Subjects().CreateSubjects(ctx, subjects)
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrDuplicateName
	}
	return err
}

func (s *RecordsService) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	return s.Store.Subjects().ListSubjects(ctx)
}

func (s *RecordsService) RemoveSubjects(ctx context.Context, names []string) (int64, error) {
	names = nonEmpty(names)
	if len(names) == 0 {
		return 0, fmt.Errorf("%w: no subject names given", ErrMalformedRequest)
	}
	return s.Store.Subjects().DeleteSubjects(ctx, names)
}

// Grade log

func (s *RecordsService) AddGrades(ctx context.Context, entries []domain.GradeEntry) ([]domain.GradeEntry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries given", ErrMalformedRequest)
	}
	for i := range entries {
		e := &entries[i]
		if e.StudentID == "" || e.Subject == "" || e.Date.IsZero() {
			return nil, fmt.Errorf("%w: studentId, subject and date are required", ErrMalformedRequest)
		}
		if e.Grade < -1 {
			return nil, fmt.Errorf("%w: grade must be -1 (absence) or non-negative", ErrMalformedRequest)
		}
		e.ID = idx.New().String()
	}
	if err := s.Store.Grades().CreateGrades(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetGrade is a point read by entry id.
func (s *RecordsService) GetGrade(ctx context.Context, id string) (domain.GradeEntry, error) {
	return s.Store.Grades().GetGradeByID(ctx, id)
}

// FindGrades matches on any provided filter field; an entry id wins
// outright.
func (s *RecordsService) FindGrades(ctx context.Context, f domain.GradeFilter) ([]domain.GradeEntry, error) {
	if f.ID != "" {
		e, err := s.GetGrade(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		return []domain.GradeEntry{e}, nil
	}
	return s.Store.Grades().FindGrades(ctx, f)
}

func (s *RecordsService) UpdateGrade(ctx context.Context, e domain.GradeEntry) error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is required", ErrMalformedRequest)
	}
	return s.Store.Grades().UpdateGrade(ctx, e)
}

func (s *RecordsService) RemoveGrades(ctx context.Context, ids []string) (int64, error) {
	ids = nonEmpty(ids)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no ids given", ErrMalformedRequest)
	}
	return s.Store.Grades().DeleteGrades(ctx, ids)
}

// Schedule

func (s *RecordsService) AddLessons(ctx context.Context, lessons []domain.Lesson) ([]domain.Lesson, error) {
	if len(lessons) == 0 {
		return nil, fmt.Errorf("%w: no lessons given", ErrMalformedRequest)
	}
	for i := range lessons {
		l := &lessons[i]
		if l.Subject == "" || l.GroupCode == "" || l.Date.IsZero() {
			return nil, fmt.Errorf("%w: subject, groupCode and date are required", ErrMalformedRequest)
		}
		l.ID = idx.New().String()
	}
	if err := s.Store.Schedule().CreateLessons(ctx, lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// GetLesson is a point read by id.
func (s *RecordsService) GetLesson(ctx context.Context, id string) (domain.Lesson, error) {
	return s.Store.Schedule().GetLessonByID(ctx, id)
}

// FindLessons matches on any provided filter field; an id wins outright.
func (s *RecordsService) FindLessons(ctx context.Context, f domain.LessonFilter) ([]domain.Lesson, error) {
	if f.ID != "" {
		l, err := s.GetLesson(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		return []domain.Lesson{l}, nil
	}
	return s.Store.Schedule().FindLessons(ctx, f)
}

func (s *RecordsService) UpdateLesson(ctx context.Context, l domain.Lesson) error {
	if l.ID == "" {
		return fmt.Errorf("%w: id is required", ErrMalformedRequest)
	}
	return s.Store.Schedule().UpdateLesson(ctx, l)
}

func (s *RecordsService) RemoveLessons(ctx context.Context, ids []string) (int64, error) {
	ids = nonEmpty(ids)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no ids given", ErrMalformedRequest)
	}
	return s.Store.Schedule().DeleteLessons(ctx, ids)
}

func nonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
