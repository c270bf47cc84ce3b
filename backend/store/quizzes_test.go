package store

import (
	"context"
	"testing"

	"examportal/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizLifecycle(t *testing.T) {
	db := newTestDB(t)
	c := NewCurriculum(db)
	quizzes := NewQuizzes(db)
	fx := seedCurriculum(t, c)
	ctx := context.Background()

	quiz := &models.Quiz{TopicID: fx.topic.ID, Questions: sampleQuestions()}
	require.NoError(t, quizzes.Create(ctx, quiz))
	assert.NotEmpty(t, quiz.ID)

	got, err := quizzes.GetByTopic(ctx, fx.topic.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Topic)
	assert.Equal(t, "Algebra", got.Topic.Name)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "1+1?", got.Questions[0].Text)
	assert.Equal(t, []string{"1", "2"}, []string(got.Questions[0].Options))

	topics, err := c.ListTopics(ctx, fx.subject.ID)
	require.NoError(t, err)
	require.Len(t, topics[0].Quizzes, 1)
	assert.Equal(t, quiz.ID, topics[0].Quizzes[0].ID)

	replaced, err := quizzes.ReplaceQuestions(ctx, quiz.ID, []models.Question{
		{Text: "new?", Options: []string{"a", "b", "c"}, CorrectAnswer: 2, Explanation: "c"},
	})
	require.NoError(t, err)
	require.Len(t, replaced.Questions, 1)
	assert.Equal(t, "new?", replaced.Questions[0].Text)

	var questionRows int64
	require.NoError(t, db.Model(&models.Question{}).Count(&questionRows).Error)
	assert.Equal(t, int64(1), questionRows)

	require.NoError(t, quizzes.Delete(ctx, quiz.ID))
	_, err = quizzes.GetByTopic(ctx, fx.topic.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Quiz not found")

	topics, err = c.ListTopics(ctx, fx.subject.ID)
	require.NoError(t, err)
	assert.Empty(t, topics[0].Quizzes)
}

func TestQuizCreateRules(t *testing.T) {
	db := newTestDB(t)
	quizzes := NewQuizzes(db)
	fx := seedCurriculum(t, NewCurriculum(db))
	ctx := context.Background()

	err := quizzes.Create(ctx, &models.Quiz{TopicID: "missing", Questions: sampleQuestions()})
	assert.ErrorIs(t, err, ErrNotFound)

	bad := []models.Question{{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: 5}}
	err = quizzes.Create(ctx, &models.Quiz{TopicID: fx.topic.ID, Questions: bad})
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, quizzes.Create(ctx, &models.Quiz{TopicID: fx.topic.ID, Questions: sampleQuestions()}))
	err = quizzes.Create(ctx, &models.Quiz{TopicID: fx.topic.ID, Questions: sampleQuestions()})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = quizzes.ReplaceQuestions(ctx, "missing", sampleQuestions())
	assert.ErrorIs(t, err, ErrNotFound)
}
