package domain

import "time"

// Student record. Patronymic is optional.
type Student struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Surname    string  `json:"surname"`
	Patronymic *string `json:"patronymic,omitempty"`
	GroupCode  string  `json:"groupCode"`
}

// StudentFilter matches students on any provided field (logical OR). A
// non-empty ID takes priority: the lookup ignores the other fields and
// becomes a point read.
type StudentFilter struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Surname    string `json:"surname,omitempty"`
	Patronymic string `json:"patronymic,omitempty"`
	GroupCode  string `json:"groupCode,omitempty"`
}

// Empty reports whether no field is set.
func (f StudentFilter) Empty() bool {
	return f == StudentFilter{}
}

// Teacher record.
type Teacher struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Surname    string  `json:"surname"`
	Patronymic *string `json:"patronymic,omitempty"`
	Category   string  `json:"category"`
	Education  string  `json:"education"`
}

// TeacherFilter matches teachers on any provided field (logical OR). A
// non-empty ID takes priority over the other fields.
type TeacherFilter struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
	Category string `json:"category,omitempty"`
}

func (f TeacherFilter) Empty() bool {
	return f == TeacherFilter{}
}

// Group is a study group keyed by its code. The curator is a teacher.
type Group struct {
	Code           string `json:"code"`
	Specialization string `json:"specialization"`
	CuratorID      string `json:"curatorId,omitempty"`
}

// Subject is a taught discipline, keyed by name.
type Subject struct {
	Name string `json:"name"`
}

// GradeEntry is one grade log row: a grade for a student in a subject on a
// date. Grade -1 marks an absence, following the source data.
type GradeEntry struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Subject   string    `json:"subject"`
	Date      time.Time `json:"date"`
	Grade     int       `json:"grade"`
}

// GradeFilter matches grade entries on any provided field; From/To bound the
// date when both are set. A non-empty ID takes priority over everything
// else: the lookup becomes a point read of that entry.
type GradeFilter struct {
	ID                string    `json:"id,omitempty"`
	StudentID         string    `json:"studentId,omitempty"`
	StudentName       string    `json:"studentName,omitempty"`
	StudentSurname    string    `json:"studentSurname,omitempty"`
	StudentPatronymic string    `json:"studentPatronymic,omitempty"`
	GroupCode         string    `json:"group,omitempty"`
	Subject           string    `json:"subject,omitempty"`
	From              time.Time `json:"from,omitzero"`
	To                time.Time `json:"to,omitzero"`
}

// Lesson is one schedule slot.
type Lesson struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Subject   string    `json:"subject"`
	TeacherID string    `json:"teacherId"`
	GroupCode string    `json:"groupCode"`
	Cabinet   int       `json:"cabinet"`
}

// LessonFilter matches lessons on any provided field; From/To bound the date
// when both are set. A non-empty ID takes priority over everything else.
type LessonFilter struct {
	ID        string    `json:"id,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	TeacherID string    `json:"teacherId,omitempty"`
	GroupCode string    `json:"groupCode,omitempty"`
	Cabinet   int       `json:"cabinet,omitempty"`
	From      time.Time `json:"from,omitzero"`
	To        time.Time `json:"to,omitzero"`
}
