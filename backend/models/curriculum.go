package models

import "fmt"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// StudentPriorities are the priorities shown in the filtered topic list.
var StudentPriorities = []Priority{PriorityHigh, PriorityMedium}

// ParsePriority accepts the three known priorities; empty means Medium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityMedium, nil
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	}
	return "", fmt.Errorf("priority must be one of High, Medium, Low")
}

type Exam struct {
	Base
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	Subjects    []Subject `gorm:"foreignKey:ExamID" json:"subjects"`
}

type Subject struct {
	Base
	Name   string  `gorm:"not null" json:"name"`
	ExamID string  `gorm:"type:varchar(36);not null;index" json:"examId"`
	Exam   *Exam   `json:"exam,omitempty"`
	Topics []Topic `gorm:"foreignKey:SubjectID" json:"topics"`
}

type Topic struct {
	Base
	Name          string   `gorm:"not null" json:"name"`
	SubjectID     string   `gorm:"type:varchar(36);not null;index" json:"subjectId"`
	Subject       *Subject `json:"subject,omitempty"`
	Priority      Priority `gorm:"type:varchar(8);not null;default:Medium;index" json:"priority"`
	StudyMaterial string   `gorm:"type:text" json:"studyMaterial"`
	Quizzes       []Quiz   `gorm:"foreignKey:TopicID" json:"quizzes"`
}
