package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"examportal/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Progress struct {
	db *gorm.DB
}

func NewProgress(db *gorm.DB) *Progress {
	return &Progress{db: db}
}

// ListByStudent loads every progress row of a student with topic, subject
// and quiz attempts populated.
func (s *Progress) ListByStudent(ctx context.Context, studentID string) ([]models.Progress, error) {
	var rows []models.Progress
	err := s.db.WithContext(ctx).
		Preload("Topic").
		Preload("Topic.Subject").
		Preload("QuizAttempts", func(db *gorm.DB) *gorm.DB { return db.Order("attempted_at, id") }).
		Where("student_id = ?", studentID).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return rows, nil
}

// MarkComplete sets the completion flag of (student, topic), creating the row if needed.
func (s *Progress) MarkComplete(ctx context.Context, studentID, topicID string) (*models.Progress, error) {
	var row *models.Progress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = findOrCreate(tx, studentID, topicID)
		if err != nil {
			return err
		}
		if row.IsCompleted {
			return nil
		}
		row.IsCompleted = true
		return tx.Model(row).Update("is_completed", true).Error
	})
	if err != nil {
		return nil, err
	}
	return s.get(ctx, row.ID)
}

type AttemptInput struct {
	Score          int
	TotalQuestions int
	Answers        []int
}

// RecordAttempt appends a quiz attempt to (student, topic) without touching completion.
func (s *Progress) RecordAttempt(ctx context.Context, studentID, topicID string, in AttemptInput) (*models.Progress, error) {
	var row *models.Progress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = findOrCreate(tx, studentID, topicID)
		if err != nil {
			return err
		}

		answers := in.Answers
		if answers == nil {
			answers = []int{}
		}
		attempt := models.QuizAttempt{
			ProgressID:     row.ID,
			Score:          in.Score,
			TotalQuestions: in.TotalQuestions,
			AttemptedAt:    time.Now().UTC(),
			Answers:        answers,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return fmt.Errorf("create quiz attempt: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.get(ctx, row.ID)
}

// CompletionCount is the per-student tally used by reports.
type CompletionCount struct {
	StudentID string
	Completed int
	Total     int
}

func (s *Progress) CountsByStudent(ctx context.Context) (map[string]CompletionCount, error) {
	var rows []CompletionCount
	err := s.db.WithContext(ctx).
		Model(&models.Progress{}).
		Select("student_id, SUM(CASE WHEN is_completed THEN 1 ELSE 0 END) AS completed, COUNT(*) AS total").
		Group("student_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count progress: %w", err)
	}

	counts := make(map[string]CompletionCount, len(rows))
	for _, r := range rows {
		counts[r.StudentID] = r
	}
	return counts, nil
}

func (s *Progress) get(ctx context.Context, id string) (*models.Progress, error) {
	var row models.Progress
	err := s.db.WithContext(ctx).
		Preload("QuizAttempts", func(db *gorm.DB) *gorm.DB { return db.Order("attempted_at, id") }).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, lookup(err, "Progress")
	}
	return &row, nil
}

// findOrCreate returns the unique (student, topic) row. A concurrent insert
// of the same key is absorbed by ON CONFLICT DO NOTHING and read back.
func findOrCreate(tx *gorm.DB, studentID, topicID string) (*models.Progress, error) {
	if err := exists(tx, &models.User{}, studentID, "Student"); err != nil {
		return nil, err
	}
	if err := exists(tx, &models.Topic{}, topicID, "Topic"); err != nil {
		return nil, err
	}

	var row models.Progress
	err := tx.Where("student_id = ? AND topic_id = ?", studentID, topicID).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query progress: %w", err)
	}

	row = models.Progress{StudentID: studentID, TopicID: topicID}
	res := tx.Omit("Topic", "QuizAttempts").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "topic_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("create progress: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		row = models.Progress{}
		if err := tx.Where("student_id = ? AND topic_id = ?", studentID, topicID).First(&row).Error; err != nil {
			return nil, fmt.Errorf("query progress: %w", err)
		}
	}
	return &row, nil
}
