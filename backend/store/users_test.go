package store

import (
	"context"
	"testing"

	"examportal/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersCreateDuplicateEmail(t *testing.T) {
	users := NewUsers(newTestDB(t))
	ctx := context.Background()

	seedStudent(t, users, "a@example.com")

	err := users.Create(ctx, &models.User{Name: "Other", Email: "a@example.com", Password: "x", Role: models.RoleStudent})
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "User already exists")
}

func TestUsersCreateUnknownTargetExam(t *testing.T) {
	users := NewUsers(newTestDB(t))
	missing := "missing-exam"

	err := users.Create(context.Background(), &models.User{Name: "S", Email: "s@example.com", Password: "x", Role: models.RoleStudent, TargetExamID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsersBlockUnblock(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	ctx := context.Background()
	student := seedStudent(t, users, "b@example.com")

	got, err := users.SetBlocked(ctx, student.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsBlocked)

	got, err = users.SetBlocked(ctx, student.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsBlocked)

	got, err = users.SetBlocked(ctx, student.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsBlocked)

	_, err = users.SetBlocked(ctx, "nobody", true)
	assert.ErrorIs(t, err, ErrNotFound)

	admin := &models.User{Name: "Admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))
	_, err = users.SetBlocked(ctx, admin.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsersListStudentsExcludesAdmins(t *testing.T) {
	users := NewUsers(newTestDB(t))
	ctx := context.Background()
	seedStudent(t, users, "s1@example.com")
	seedStudent(t, users, "s2@example.com")
	require.NoError(t, users.Create(ctx, &models.User{Name: "Admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin}))

	students, err := users.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)
	for _, s := range students {
		assert.Equal(t, models.RoleStudent, s.Role)
	}
}

func TestUsersSetTargetExam(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	fx := seedCurriculum(t, NewCurriculum(db))
	ctx := context.Background()
	student := seedStudent(t, users, "t@example.com")

	got, err := users.SetTargetExam(ctx, student.ID, fx.exam.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TargetExam)
	assert.Equal(t, "SSC", got.TargetExam.Name)

	_, err = users.SetTargetExam(ctx, student.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsersDeleteStudentCascadesProgress(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	progress := NewProgress(db)
	fx := seedCurriculum(t, NewCurriculum(db))
	ctx := context.Background()

	student := seedStudent(t, users, "d@example.com")
	other := seedStudent(t, users, "o@example.com")
	_, err := progress.RecordAttempt(ctx, student.ID, fx.topic.ID, AttemptInput{Score: 1, TotalQuestions: 2, Answers: []int{1, 1}})
	require.NoError(t, err)
	_, err = progress.MarkComplete(ctx, other.ID, fx.topic.ID)
	require.NoError(t, err)

	require.NoError(t, users.DeleteStudent(ctx, student.ID))

	_, err = users.FindByID(ctx, student.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := progress.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	var attempts int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).Count(&attempts).Error)
	assert.Zero(t, attempts)

	rows, err = progress.ListByStudent(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	assert.ErrorIs(t, users.DeleteStudent(ctx, student.ID), ErrNotFound)
}

func TestUsersUpdateProfile(t *testing.T) {
	users := NewUsers(newTestDB(t))
	ctx := context.Background()
	student := seedStudent(t, users, "p@example.com")

	got, err := users.UpdateProfile(ctx, student.ID, "Renamed", "newhash")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "newhash", got.Password)

	_, err = users.UpdateProfile(ctx, "missing", "x", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
