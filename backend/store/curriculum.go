package store

import (
	"context"
	"errors"
	"fmt"

	"examportal/backend/models"

	"gorm.io/gorm"
)

// Curriculum manages exams, subjects and topics. Child lists are resolved
// from the child's foreign key, so a parent never holds a stale reference.
type Curriculum struct {
	db *gorm.DB
}

func NewCurriculum(db *gorm.DB) *Curriculum {
	return &Curriculum{db: db}
}

type ExamUpdate struct {
	Name        *string
	Description *string
}

type TopicUpdate struct {
	Name          *string
	Priority      *models.Priority
	StudyMaterial *string
}

func byCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, id")
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func (s *Curriculum) ListExams(ctx context.Context) ([]models.Exam, error) {
	var exams []models.Exam
	err := s.db.WithContext(ctx).
		Preload("Subjects", byCreation).
		Scopes(byCreation).
		Find(&exams).Error
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

// GetExam loads the exam with subjects and their topics.
func (s *Curriculum) GetExam(ctx context.Context, id string) (*models.Exam, error) {
	var exam models.Exam
	err := s.db.WithContext(ctx).
		Preload("Subjects", byCreation).
		Preload("Subjects.Topics", byCreation).
		First(&exam, "id = ?", id).Error
	if err != nil {
		return nil, lookup(err, "Exam")
	}
	return &exam, nil
}

func (s *Curriculum) FindExamByName(ctx context.Context, name string) (*models.Exam, error) {
	var exam models.Exam
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&exam).Error; err != nil {
		return nil, lookup(err, "Exam")
	}
	return &exam, nil
}

func (s *Curriculum) CreateExam(ctx context.Context, exam *models.Exam) error {
	if err := s.db.WithContext(ctx).Omit("Subjects").Create(exam).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflict("Exam already exists")
		}
		return fmt.Errorf("create exam: %w", err)
	}
	exam.Subjects = []models.Subject{}
	return nil
}

func (s *Curriculum) UpdateExam(ctx context.Context, id string, update ExamUpdate) (*models.Exam, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}

	if err := s.update(ctx, &models.Exam{}, id, updates, "Exam"); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Exam already exists")
		}
		return nil, err
	}
	return s.GetExam(ctx, id)
}

// DeleteExam removes the exam and everything below it, and clears it as a
// target exam of any student.
func (s *Curriculum) DeleteExam(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Exam{}, id, "Exam"); err != nil {
			return err
		}

		var subjectIDs []string
		if err := tx.Model(&models.Subject{}).Where("exam_id = ?", id).Pluck("id", &subjectIDs).Error; err != nil {
			return fmt.Errorf("query subjects: %w", err)
		}
		if err := deleteSubjects(tx, subjectIDs); err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("target_exam_id = ?", id).Update("target_exam_id", nil).Error; err != nil {
			return fmt.Errorf("clear target exam: %w", err)
		}
		if err := tx.Delete(&models.Exam{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete exam: %w", err)
		}
		return nil
	})
}

// ListSubjects returns the subjects of an exam with their topics.
func (s *Curriculum) ListSubjects(ctx context.Context, examID string) ([]models.Subject, error) {
	var subjects []models.Subject
	err := s.db.WithContext(ctx).
		Preload("Topics", byCreation).
		Where("exam_id = ?", examID).
		Scopes(byCreation).
		Find(&subjects).Error
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

func (s *Curriculum) CreateSubject(ctx context.Context, subject *models.Subject) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Exam{}, subject.ExamID, "Exam"); err != nil {
			return err
		}
		if err := tx.Omit("Exam", "Topics").Create(subject).Error; err != nil {
			return fmt.Errorf("create subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	subject.Topics = []models.Topic{}
	return nil
}

func (s *Curriculum) UpdateSubject(ctx context.Context, id, name string) (*models.Subject, error) {
	if err := s.update(ctx, &models.Subject{}, id, map[string]interface{}{"name": name}, "Subject"); err != nil {
		return nil, err
	}

	var subject models.Subject
	if err := s.db.WithContext(ctx).Preload("Topics", byCreation).First(&subject, "id = ?", id).Error; err != nil {
		return nil, lookup(err, "Subject")
	}
	return &subject, nil
}

func (s *Curriculum) DeleteSubject(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Subject{}, id, "Subject"); err != nil {
			return err
		}
		return deleteSubjects(tx, []string{id})
	})
}

// ListTopics returns the topics of a subject with their quizzes. When
// priorities is non-empty only topics with one of them are returned.
func (s *Curriculum) ListTopics(ctx context.Context, subjectID string, priorities ...models.Priority) ([]models.Topic, error) {
	query := s.db.WithContext(ctx).
		Preload("Quizzes", byCreation).
		Preload("Quizzes.Questions", byPosition).
		Where("subject_id = ?", subjectID)
	if len(priorities) > 0 {
		query = query.Where("priority IN ?", priorities)
	}

	var topics []models.Topic
	if err := query.Scopes(byCreation).Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// GetTopic loads a topic with its subject.
func (s *Curriculum) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	var topic models.Topic
	if err := s.db.WithContext(ctx).Preload("Subject").First(&topic, "id = ?", id).Error; err != nil {
		return nil, lookup(err, "Topic")
	}
	return &topic, nil
}

func (s *Curriculum) CreateTopic(ctx context.Context, topic *models.Topic) error {
	if topic.Priority == "" {
		topic.Priority = models.PriorityMedium
	}
	if _, err := models.ParsePriority(string(topic.Priority)); err != nil {
		return invalid("%s", err.Error())
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Subject{}, topic.SubjectID, "Subject"); err != nil {
			return err
		}
		if err := tx.Omit("Subject", "Quizzes").Create(topic).Error; err != nil {
			return fmt.Errorf("create topic: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	topic.Quizzes = []models.Quiz{}
	return nil
}

func (s *Curriculum) UpdateTopic(ctx context.Context, id string, update TopicUpdate) (*models.Topic, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Priority != nil {
		if _, err := models.ParsePriority(string(*update.Priority)); err != nil || *update.Priority == "" {
			return nil, invalid("priority must be one of High, Medium, Low")
		}
		updates["priority"] = *update.Priority
	}
	if update.StudyMaterial != nil {
		updates["study_material"] = *update.StudyMaterial
	}

	if err := s.update(ctx, &models.Topic{}, id, updates, "Topic"); err != nil {
		return nil, err
	}
	return s.GetTopic(ctx, id)
}

func (s *Curriculum) DeleteTopic(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Topic{}, id, "Topic"); err != nil {
			return err
		}
		return deleteTopics(tx, []string{id})
	})
}

func (s *Curriculum) update(ctx context.Context, model interface{}, id string, updates map[string]interface{}, entity string) error {
	db := s.db.WithContext(ctx)
	if len(updates) == 0 {
		return exists(db, model, id, entity)
	}

	res := db.Model(model).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return res.Error
		}
		return fmt.Errorf("update %s: %w", entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entity)
	}
	return nil
}

func deleteSubjects(tx *gorm.DB, subjectIDs []string) error {
	if len(subjectIDs) == 0 {
		return nil
	}

	var topicIDs []string
	if err := tx.Model(&models.Topic{}).Where("subject_id IN ?", subjectIDs).Pluck("id", &topicIDs).Error; err != nil {
		return fmt.Errorf("query topics: %w", err)
	}
	if err := deleteTopics(tx, topicIDs); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", subjectIDs).Delete(&models.Subject{}).Error; err != nil {
		return fmt.Errorf("delete subjects: %w", err)
	}
	return nil
}

// deleteTopics removes topics with their quizzes, questions and progress rows.
func deleteTopics(tx *gorm.DB, topicIDs []string) error {
	if len(topicIDs) == 0 {
		return nil
	}

	var quizIDs []string
	if err := tx.Model(&models.Quiz{}).Where("topic_id IN ?", topicIDs).Pluck("id", &quizIDs).Error; err != nil {
		return fmt.Errorf("query quizzes: %w", err)
	}
	if err := deleteQuizzes(tx, quizIDs); err != nil {
		return err
	}

	var progressIDs []string
	if err := tx.Model(&models.Progress{}).Where("topic_id IN ?", topicIDs).Pluck("id", &progressIDs).Error; err != nil {
		return fmt.Errorf("query progress: %w", err)
	}
	if len(progressIDs) > 0 {
		if err := tx.Where("progress_id IN ?", progressIDs).Delete(&models.QuizAttempt{}).Error; err != nil {
			return fmt.Errorf("delete quiz attempts: %w", err)
		}
		if err := tx.Where("id IN ?", progressIDs).Delete(&models.Progress{}).Error; err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
	}

	if err := tx.Where("id IN ?", topicIDs).Delete(&models.Topic{}).Error; err != nil {
		return fmt.Errorf("delete topics: %w", err)
	}
	return nil
}

func deleteQuizzes(tx *gorm.DB, quizIDs []string) error {
	if len(quizIDs) == 0 {
		return nil
	}
	if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Question{}).Error; err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	if err := tx.Where("id IN ?", quizIDs).Delete(&models.Quiz{}).Error; err != nil {
		return fmt.Errorf("delete quizzes: %w", err)
	}
	return nil
}
