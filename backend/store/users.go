package store

import (
	"context"
	"errors"
	"fmt"

	"examportal/backend/models"

	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create inserts u; a taken email yields ErrConflict.
func (s *Users) Create(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("query user: %w", err)
		}
		if count > 0 {
			return conflict("User already exists")
		}

		if u.TargetExamID != nil {
			if err := exists(tx, &models.Exam{}, *u.TargetExamID, "Exam"); err != nil {
				return err
			}
		}

		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("User already exists")
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, lookup(err, "User")
	}
	return &user, nil
}

// FindByID loads the user with the target exam populated.
func (s *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("TargetExam").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, lookup(err, "User")
	}
	return &user, nil
}

func (s *Users) ListStudents(ctx context.Context) ([]models.User, error) {
	var students []models.User
	err := s.db.WithContext(ctx).
		Preload("TargetExam").
		Where("role = ?", models.RoleStudent).
		Order("created_at").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// UpdateProfile changes the name and, when passwordHash is non-empty, the password.
func (s *Users) UpdateProfile(ctx context.Context, id, name, passwordHash string) (*models.User, error) {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if passwordHash != "" {
		updates["password"] = passwordHash
	}

	if len(updates) > 0 {
		res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("update user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, notFound("User")
		}
	}
	return s.FindByID(ctx, id)
}

// SetBlocked flips the block flag of a student. Admin ids are reported as not found.
func (s *Users) SetBlocked(ctx context.Context, studentID string, blocked bool) (*models.User, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND role = ?", studentID, models.RoleStudent).
		Update("is_blocked", blocked)
	if res.Error != nil {
		return nil, fmt.Errorf("update student: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, notFound("Student")
	}

	var student models.User
	if err := s.db.WithContext(ctx).First(&student, "id = ?", studentID).Error; err != nil {
		return nil, lookup(err, "Student")
	}
	return &student, nil
}

// SetTargetExam points the student at examID, which must exist.
func (s *Users) SetTargetExam(ctx context.Context, studentID, examID string) (*models.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Exam{}, examID, "Exam"); err != nil {
			return err
		}
		res := tx.Model(&models.User{}).Where("id = ?", studentID).Update("target_exam_id", examID)
		if res.Error != nil {
			return fmt.Errorf("update target exam: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("Student")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, studentID)
}

// DeleteStudent removes the student and all of their progress rows.
func (s *Users) DeleteStudent(ctx context.Context, studentID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx.Where("role = ?", models.RoleStudent), &models.User{}, studentID, "Student"); err != nil {
			return err
		}

		progressIDs := tx.Model(&models.Progress{}).Select("id").Where("student_id = ?", studentID)
		if err := tx.Where("progress_id IN (?)", progressIDs).Delete(&models.QuizAttempt{}).Error; err != nil {
			return fmt.Errorf("delete quiz attempts: %w", err)
		}
		if err := tx.Where("student_id = ?", studentID).Delete(&models.Progress{}).Error; err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if err := tx.Delete(&models.User{}, "id = ?", studentID).Error; err != nil {
			return fmt.Errorf("delete student: %w", err)
		}
		return nil
	})
}
