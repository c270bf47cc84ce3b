package seed

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/store"
	"examportal/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{DBDriver: "sqlite", DBPath: fmt.Sprintf("file:seed_%s?mode=memory&cache=shared", t.Name())}

	db, err := utils.InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { utils.CloseDB(db) })
	return db
}

const sampleYAML = `
exams:
  - name: SSC CGL
    description: Staff Selection Commission
    subjects:
      - name: Quantitative Aptitude
        topics:
          - name: Percentages
            priority: High
            studyMaterial: Percent means per hundred.
            quiz:
              - text: What is 15% of 200?
                options: ["20", "30", "40"]
                correctAnswer: 1
                explanation: 200 * 0.15 = 30
          - name: Mensuration
            priority: Low
      - name: English
        topics:
          - name: Idioms
`

func TestEnsureAdmin(t *testing.T) {
	users := store.NewUsers(newTestDB(t))
	cfg := &config.Config{
		AdminName:     "Admin User",
		AdminEmail:    "Admin@Example.com",
		AdminPassword: "Admin@123",
		BcryptCost:    bcrypt.MinCost,
	}
	ctx := context.Background()

	admin, created, err := EnsureAdmin(ctx, users, cfg)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("Admin@123")))

	again, created, err := EnsureAdmin(ctx, users, cfg)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.ID, again.ID)
}

func TestEnsureAdminRequiresCredentials(t *testing.T) {
	users := store.NewUsers(newTestDB(t))
	_, _, err := EnsureAdmin(context.Background(), users, &config.Config{AdminEmail: "a@example.com"})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, f.Exams, 1)
	require.Len(t, f.Exams[0].Subjects, 2)
	assert.Equal(t, "High", f.Exams[0].Subjects[0].Topics[0].Priority)
	assert.Equal(t, 1, f.Exams[0].Subjects[0].Topics[0].Quiz[0].CorrectAnswer)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "exams:\n  - name: A\n    colour: red\n"},
		{"missing exam name", "exams:\n  - description: x\n"},
		{"blank subject name", "exams:\n  - name: A\n    subjects:\n      - name: \"   \"\n"},
		{"duplicate exam", "exams:\n  - name: A\n  - name: A\n"},
		{"bad priority", "exams:\n  - name: A\n    subjects:\n      - name: S\n        topics:\n          - name: T\n            priority: Urgent\n"},
		{"answer out of range", "exams:\n  - name: A\n    subjects:\n      - name: S\n        topics:\n          - name: T\n            quiz:\n              - text: q\n                options: [a, b]\n                correctAnswer: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	f, err := Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	res, err := Apply(ctx, db, f)
	require.NoError(t, err)
	assert.Equal(t, Result{ExamsCreated: 1, Subjects: 2, Topics: 3, Quizzes: 1}, res)

	res, err = Apply(ctx, db, f)
	require.NoError(t, err)
	assert.Equal(t, Result{ExamsSkipped: 1}, res)

	var topics int64
	require.NoError(t, db.Model(&models.Topic{}).Count(&topics).Error)
	assert.Equal(t, int64(3), topics)

	c := store.NewCurriculum(db)
	exam, err := c.FindExamByName(ctx, "SSC CGL")
	require.NoError(t, err)
	subjects, err := c.ListSubjects(ctx, exam.ID)
	require.NoError(t, err)
	require.Len(t, subjects, 2)

	var idioms *models.Topic
	for _, s := range subjects {
		for i := range s.Topics {
			if s.Topics[i].Name == "Idioms" {
				idioms = &s.Topics[i]
			}
		}
	}
	require.NotNil(t, idioms)
	assert.Equal(t, models.PriorityMedium, idioms.Priority)
}
