package store

import (
	"context"
	"testing"

	"examportal/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkCompleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	progress := NewProgress(db)
	fx := seedCurriculum(t, NewCurriculum(db))
	student := seedStudent(t, NewUsers(db), "m@example.com")
	ctx := context.Background()

	first, err := progress.MarkComplete(ctx, student.ID, fx.topic.ID)
	require.NoError(t, err)
	assert.True(t, first.IsCompleted)

	second, err := progress.MarkComplete(ctx, student.ID, fx.topic.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	rows, err := progress.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsCompleted)
	require.NotNil(t, rows[0].Topic)
	require.NotNil(t, rows[0].Topic.Subject)
	assert.Equal(t, "Maths", rows[0].Topic.Subject.Name)
}

func TestRecordAttemptAppendsWithoutCompleting(t *testing.T) {
	db := newTestDB(t)
	progress := NewProgress(db)
	fx := seedCurriculum(t, NewCurriculum(db))
	student := seedStudent(t, NewUsers(db), "r@example.com")
	ctx := context.Background()

	_, err := progress.RecordAttempt(ctx, student.ID, fx.topic.ID, AttemptInput{Score: 1, TotalQuestions: 2, Answers: []int{1, 1}})
	require.NoError(t, err)
	row, err := progress.RecordAttempt(ctx, student.ID, fx.topic.ID, AttemptInput{Score: 2, TotalQuestions: 2, Answers: []int{1, 0}})
	require.NoError(t, err)

	assert.False(t, row.IsCompleted)
	require.Len(t, row.QuizAttempts, 2)
	assert.Equal(t, 1, row.QuizAttempts[0].Score)
	assert.Equal(t, 2, row.QuizAttempts[1].Score)
	assert.Equal(t, []int{1, 0}, []int(row.QuizAttempts[1].Answers))
	assert.False(t, row.QuizAttempts[1].AttemptedAt.IsZero())

	var count int64
	require.NoError(t, db.Model(&models.Progress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProgressRequiresTopicAndStudent(t *testing.T) {
	db := newTestDB(t)
	progress := NewProgress(db)
	fx := seedCurriculum(t, NewCurriculum(db))
	student := seedStudent(t, NewUsers(db), "x@example.com")
	ctx := context.Background()

	_, err := progress.MarkComplete(ctx, student.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = progress.MarkComplete(ctx, "missing", fx.topic.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountsByStudent(t *testing.T) {
	db := newTestDB(t)
	c := NewCurriculum(db)
	progress := NewProgress(db)
	fx := seedCurriculum(t, c)
	student := seedStudent(t, NewUsers(db), "k@example.com")
	ctx := context.Background()

	other := &models.Topic{Name: "Geometry", SubjectID: fx.subject.ID}
	require.NoError(t, c.CreateTopic(ctx, other))

	_, err := progress.MarkComplete(ctx, student.ID, fx.topic.ID)
	require.NoError(t, err)
	_, err = progress.RecordAttempt(ctx, student.ID, other.ID, AttemptInput{Score: 0, TotalQuestions: 1})
	require.NoError(t, err)

	counts, err := progress.CountsByStudent(ctx)
	require.NoError(t, err)
	assert.Equal(t, CompletionCount{StudentID: student.ID, Completed: 1, Total: 2}, counts[student.ID])
}
