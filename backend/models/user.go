package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identifier and timestamps shared by every collection.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type User struct {
	Base
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Password     string  `gorm:"not null" json:"-"`
	Role         Role    `gorm:"type:varchar(16);not null;default:student;index" json:"role"`
	IsBlocked    bool    `gorm:"not null;default:false" json:"isBlocked"`
	TargetExamID *string `gorm:"type:varchar(36);index" json:"targetExamId"`
	TargetExam   *Exam   `gorm:"foreignKey:TargetExamID" json:"targetExam,omitempty"`
}

// PublicUser is the user view returned next to a freshly minted token.
type PublicUser struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	TargetExam *string `json:"targetExam,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		TargetExam: u.TargetExamID,
	}
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
