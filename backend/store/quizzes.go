package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"examportal/backend/models"

	"gorm.io/gorm"
)

type Quizzes struct {
	db *gorm.DB
}

func NewQuizzes(db *gorm.DB) *Quizzes {
	return &Quizzes{db: db}
}

// GetByTopic returns the quiz of a topic with the topic populated.
func (s *Quizzes) GetByTopic(ctx context.Context, topicID string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Topic").
		Preload("Questions", byPosition).
		Where("topic_id = ?", topicID).
		First(&quiz).Error
	if err != nil {
		return nil, lookup(err, "Quiz")
	}
	return &quiz, nil
}

func (s *Quizzes) Get(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Questions", byPosition).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, lookup(err, "Quiz")
	}
	return &quiz, nil
}

// Create stores a quiz for a topic. A topic holds at most one quiz.
func (s *Quizzes) Create(ctx context.Context, quiz *models.Quiz) error {
	if err := models.ValidateQuestions(quiz.Questions); err != nil {
		return invalid("%s", err.Error())
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Topic{}, quiz.TopicID, "Topic"); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Quiz{}).Where("topic_id = ?", quiz.TopicID).Count(&count).Error; err != nil {
			return fmt.Errorf("query quiz: %w", err)
		}
		if count > 0 {
			return conflict("Quiz already exists for this topic")
		}

		questions := quiz.Questions
		quiz.Questions = nil
		if err := tx.Omit("Topic").Create(quiz).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("Quiz already exists for this topic")
			}
			return fmt.Errorf("create quiz: %w", err)
		}

		quiz.Questions = questions
		return insertQuestions(tx, quiz)
	})
	return err
}

// ReplaceQuestions swaps the full question list of a quiz.
func (s *Quizzes) ReplaceQuestions(ctx context.Context, id string, questions []models.Question) (*models.Quiz, error) {
	if err := models.ValidateQuestions(questions); err != nil {
		return nil, invalid("%s", err.Error())
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.First(&quiz, "id = ?", id).Error; err != nil {
			return lookup(err, "Quiz")
		}

		if err := tx.Where("quiz_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}

		quiz.Questions = questions
		if err := insertQuestions(tx, &quiz); err != nil {
			return err
		}
		return tx.Model(&quiz).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Quizzes) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Quiz{}, id, "Quiz"); err != nil {
			return err
		}
		return deleteQuizzes(tx, []string{id})
	})
}

func insertQuestions(tx *gorm.DB, quiz *models.Quiz) error {
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		q.ID = ""
		q.QuizID = quiz.ID
		q.Position = i
	}
	if err := tx.Create(&quiz.Questions).Error; err != nil {
		return fmt.Errorf("create questions: %w", err)
	}
	return nil
}
