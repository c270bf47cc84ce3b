package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{DBDriver: "sqlite", DBPath: fmt.Sprintf("file:%s?mode=memory&cache=shared", name)}

	db, err := utils.InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { utils.CloseDB(db) })
	return db
}

// fixture builds exam -> subject -> topic and returns their ids.
type fixture struct {
	exam    *models.Exam
	subject *models.Subject
	topic   *models.Topic
}

func seedCurriculum(t *testing.T, c *Curriculum) fixture {
	t.Helper()
	ctx := context.Background()

	exam := &models.Exam{Name: "SSC", Description: "Staff Selection"}
	require.NoError(t, c.CreateExam(ctx, exam))
	subject := &models.Subject{Name: "Maths", ExamID: exam.ID}
	require.NoError(t, c.CreateSubject(ctx, subject))
	topic := &models.Topic{Name: "Algebra", SubjectID: subject.ID, Priority: models.PriorityHigh}
	require.NoError(t, c.CreateTopic(ctx, topic))

	return fixture{exam: exam, subject: subject, topic: topic}
}

func seedStudent(t *testing.T, u *Users, email string) *models.User {
	t.Helper()
	student := &models.User{Name: "Student", Email: email, Password: "hash", Role: models.RoleStudent}
	require.NoError(t, u.Create(context.Background(), student))
	return student
}

func sampleQuestions() []models.Question {
	return []models.Question{
		{Text: "1+1?", Options: []string{"1", "2"}, CorrectAnswer: 1, Explanation: "sum"},
		{Text: "2*2?", Options: []string{"4", "8"}, CorrectAnswer: 0, Explanation: "product"},
	}
}
