package store

import (
	"context"
	"errors"
	"time"

	"github.com/chalkboard-sys/registry/internal/registry/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Roles() Roles
	RevokedTokens() RevokedTokens
	Students() Students
	Teachers() Teachers
	Groups() Groups
	Subjects() Subjects
	Grades() Grades
	Schedule() Schedule

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back when fn returns an
	// error, committed otherwise. This is the recommended way to handle
	// multi-step operations that must be atomic (e.g. token rotation).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists on a name collision.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByCredentials matches (name, digest) as a single equality
	// lookup. The query itself encodes the whole credential check so no
	// digest ever leaves the store for comparison.
	GetUserByCredentials(ctx context.Context, name, digest string) (domain.User, error)

	// AddRole grants the named role to a user. No-op if already granted.
	AddRole(ctx context.Context, userID, roleName string) error

	// HasAnyRole reports whether the user currently holds membership in any
	// of the named roles (logical OR).
	HasAnyRole(ctx context.Context, userID string, roles []string) (bool, error)

	// ListUserRoles returns the role names the user holds.
	ListUserRoles(ctx context.Context, userID string) ([]string, error)
}

type Roles interface {
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	ListRoles(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a new role. Returns ErrAlreadyExists on collision.
	CreateRole(ctx context.Context, r domain.Role) error
}

// RevokedTokens is the revocation ledger: an append-only denylist of token
// fingerprints, plus purges of entries past their clear time. No live entry
// is ever mutated in place.
type RevokedTokens interface {
	// Insert records a revocation. The fingerprint is unique; inserting a
	// fingerprint that is already present returns ErrAlreadyExists, which is
	// what makes concurrent rotation of the same refresh token one-shot.
	Insert(ctx context.Context, t domain.RevokedToken) error

	// Exists reports whether the token's fingerprint is in the ledger.
	Exists(ctx context.Context, tokenHash string) (bool, error)

	// DeleteExpired purges entries with clear_at <= now.
	DeleteExpired(ctx context.Context, now time.Time) error
}

type Students interface {
	CreateStudents(ctx context.Context, students []domain.Student) error
	GetStudentByID(ctx context.Context, id string) (domain.Student, error)
	FindStudents(ctx context.Context, f domain.StudentFilter) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, s domain.Student) error
	// DeleteStudents removes every student matching any of the filters and
	// returns the number of rows deleted.
	DeleteStudents(ctx context.Context, filters []domain.StudentFilter) (int64, error)
}

type Teachers interface {
	CreateTeachers(ctx context.Context, teachers []domain.Teacher) error
	GetTeacherByID(ctx context.Context, id string) (domain.Teacher, error)
	FindTeachers(ctx context.Context, f domain.TeacherFilter) ([]domain.Teacher, error)
	UpdateTeacher(ctx context.Context, t domain.Teacher) error
	DeleteTeachers(ctx context.Context, filters []domain.TeacherFilter) (int64, error)
}

type Groups interface {
	CreateGroups(ctx context.Context, groups []domain.Group) error
	GetGroupByCode(ctx context.Context, code string) (domain.Group, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	UpdateGroup(ctx context.Context, g domain.Group) error
	DeleteGroups(ctx context.Context, codes []string) (int64, error)
}

type Subjects interface {
	CreateSubjects(ctx context.Context, subjects []domain.Subject) error
	ListSubjects(ctx context.Context) ([]domain.Subject, error)
	DeleteSubjects(ctx context.Context, names []string) (int64, error)
}

type Grades interface {
	CreateGrades(ctx context.Context, entries []domain.GradeEntry) error
	GetGradeByID(ctx context.Context, id string) (domain.GradeEntry, error)
	FindGrades(ctx context.Context, f domain.GradeFilter) ([]domain.GradeEntry, error)
	UpdateGrade(ctx context.Context, e domain.GradeEntry) error
	DeleteGrades(ctx context.Context, ids []string) (int64, error)
}

type Schedule interface {
	CreateLessons(ctx context.Context, lessons []domain.Lesson) error
	GetLessonByID(ctx context.Context, id string) (domain.Lesson, error)
	FindLessons(ctx context.Context, f domain.LessonFilter) ([]domain.Lesson, error)
	UpdateLesson(ctx context.Context, l domain.Lesson) error
	DeleteLessons(ctx context.Context, ids []string) (int64, error)
}
