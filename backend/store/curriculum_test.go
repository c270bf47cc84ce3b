package store

import (
	"context"
	"testing"

	"examportal/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubjectAppearsUnderExam(t *testing.T) {
	c := NewCurriculum(newTestDB(t))
	ctx := context.Background()

	exam := &models.Exam{Name: "SSC"}
	require.NoError(t, c.CreateExam(ctx, exam))
	subject := &models.Subject{Name: "Maths", ExamID: exam.ID}
	require.NoError(t, c.CreateSubject(ctx, subject))

	subjects, err := c.ListSubjects(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Maths", subjects[0].Name)
	assert.NotNil(t, subjects[0].Topics)
	assert.Empty(t, subjects[0].Topics)

	got, err := c.GetExam(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, got.Subjects, 1)
	assert.Equal(t, subject.ID, got.Subjects[0].ID)

	require.NoError(t, c.DeleteSubject(ctx, subject.ID))

	got, err = c.GetExam(ctx, exam.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Subjects)
}

func TestCreateChildRequiresParent(t *testing.T) {
	c := NewCurriculum(newTestDB(t))
	ctx := context.Background()

	err := c.CreateSubject(ctx, &models.Subject{Name: "Orphan", ExamID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Exam not found")

	err = c.CreateTopic(ctx, &models.Topic{Name: "Orphan", SubjectID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateExamDuplicateName(t *testing.T) {
	c := NewCurriculum(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, c.CreateExam(ctx, &models.Exam{Name: "GATE"}))
	err := c.CreateExam(ctx, &models.Exam{Name: "GATE"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTopicPriorityDefaultAndValidation(t *testing.T) {
	db := newTestDB(t)
	c := NewCurriculum(db)
	fx := seedCurriculum(t, c)
	ctx := context.Background()

	topic := &models.Topic{Name: "Geometry", SubjectID: fx.subject.ID}
	require.NoError(t, c.CreateTopic(ctx, topic))
	assert.Equal(t, models.PriorityMedium, topic.Priority)

	err := c.CreateTopic(ctx, &models.Topic{Name: "Bad", SubjectID: fx.subject.ID, Priority: "Urgent"})
	assert.ErrorIs(t, err, ErrInvalid)

	bad := models.Priority("Urgent")
	_, err = c.UpdateTopic(ctx, topic.ID, TopicUpdate{Priority: &bad})
	assert.ErrorIs(t, err, ErrInvalid)

	low := models.PriorityLow
	material := "Read chapter 4"
	got, err := c.UpdateTopic(ctx, topic.ID, TopicUpdate{Priority: &low, StudyMaterial: &material})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityLow, got.Priority)
	assert.Equal(t, material, got.StudyMaterial)
	assert.Equal(t, "Geometry", got.Name)
}

func TestFilteredTopicsAreHighMediumSubset(t *testing.T) {
	c := NewCurriculum(newTestDB(t))
	fx := seedCurriculum(t, c)
	ctx := context.Background()

	for _, tp := range []struct {
		name     string
		priority models.Priority
	}{
		{"Trigonometry", models.PriorityLow},
		{"Geometry", models.PriorityMedium},
		{"Statistics", models.PriorityLow},
		{"Calculus", models.PriorityHigh},
	} {
		require.NoError(t, c.CreateTopic(ctx, &models.Topic{Name: tp.name, SubjectID: fx.subject.ID, Priority: tp.priority}))
	}

	all, err := c.ListTopics(ctx, fx.subject.ID)
	require.NoError(t, err)
	filtered, err := c.ListTopics(ctx, fx.subject.ID, models.StudentPriorities...)
	require.NoError(t, err)

	var want []string
	for _, tp := range all {
		if tp.Priority != models.PriorityLow {
			want = append(want, tp.Name)
		}
	}
	var got []string
	for _, tp := range filtered {
		got = append(got, tp.Name)
	}

	assert.Equal(t, []string{"Algebra", "Geometry", "Calculus"}, want)
	assert.Equal(t, want, got)
}

func TestDeleteExamCascades(t *testing.T) {
	db := newTestDB(t)
	c := NewCurriculum(db)
	users := NewUsers(db)
	quizzes := NewQuizzes(db)
	progress := NewProgress(db)
	fx := seedCurriculum(t, c)
	ctx := context.Background()

	require.NoError(t, quizzes.Create(ctx, &models.Quiz{TopicID: fx.topic.ID, Questions: sampleQuestions()}))
	student := seedStudent(t, users, "c@example.com")
	_, err := users.SetTargetExam(ctx, student.ID, fx.exam.ID)
	require.NoError(t, err)
	_, err = progress.RecordAttempt(ctx, student.ID, fx.topic.ID, AttemptInput{Score: 2, TotalQuestions: 2, Answers: []int{1, 0}})
	require.NoError(t, err)

	require.NoError(t, c.DeleteExam(ctx, fx.exam.ID))

	for _, m := range []interface{}{&models.Exam{}, &models.Subject{}, &models.Topic{}, &models.Quiz{}, &models.Question{}, &models.Progress{}, &models.QuizAttempt{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "rows left in %T", m)
	}

	got, err := users.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TargetExamID)

	assert.ErrorIs(t, c.DeleteExam(ctx, fx.exam.ID), ErrNotFound)
}

func TestDeleteTopicKeepsSiblings(t *testing.T) {
	c := NewCurriculum(newTestDB(t))
	fx := seedCurriculum(t, c)
	ctx := context.Background()

	sibling := &models.Topic{Name: "Geometry", SubjectID: fx.subject.ID}
	require.NoError(t, c.CreateTopic(ctx, sibling))

	require.NoError(t, c.DeleteTopic(ctx, fx.topic.ID))

	topics, err := c.ListTopics(ctx, fx.subject.ID)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, sibling.ID, topics[0].ID)

	_, err = c.GetTopic(ctx, fx.topic.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateExam(t *testing.T) {
	c := NewCurriculum(newTestDB(t))
	fx := seedCurriculum(t, c)
	ctx := context.Background()

	name := "SSC CGL"
	got, err := c.UpdateExam(ctx, fx.exam.ID, ExamUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "SSC CGL", got.Name)
	assert.Equal(t, "Staff Selection", got.Description)

	_, err = c.UpdateExam(ctx, "missing", ExamUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.CreateExam(ctx, &models.Exam{Name: "GATE"}))
	taken := "GATE"
	_, err = c.UpdateExam(ctx, fx.exam.ID, ExamUpdate{Name: &taken})
	assert.ErrorIs(t, err, ErrConflict)
}
