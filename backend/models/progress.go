package models

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

type Progress struct {
	Base
	StudentID    string        `gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_student_topic" json:"studentId"`
	TopicID      string        `gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_student_topic;index" json:"topicId"`
	Topic        *Topic        `json:"topic,omitempty"`
	IsCompleted  bool          `gorm:"not null;default:false" json:"isCompleted"`
	QuizAttempts []QuizAttempt `gorm:"foreignKey:ProgressID" json:"quizAttempts"`
}

type QuizAttempt struct {
	Base
	ProgressID     string                   `gorm:"type:varchar(36);not null;index" json:"-"`
	Score          int                      `json:"score"`
	TotalQuestions int                      `json:"totalQuestions"`
	AttemptedAt    time.Time                `json:"attemptedAt"`
	Answers        datatypes.JSONSlice[int] `json:"answers"`
}

type ProgressSummary struct {
	CompletedTopics    int        `json:"completedTopics"`
	TotalTopics        int        `json:"totalTopics"`
	ProgressPercentage float64    `json:"progressPercentage"`
	Progress           []Progress `json:"progress"`
}

// SummarizeProgress counts only the topics the student has a record for.
func SummarizeProgress(rows []Progress) ProgressSummary {
	summary := ProgressSummary{
		TotalTopics: len(rows),
		Progress:    rows,
	}
	if summary.Progress == nil {
		summary.Progress = []Progress{}
	}

	for _, p := range rows {
		if p.IsCompleted {
			summary.CompletedTopics++
		}
	}
	summary.ProgressPercentage = Percentage(summary.CompletedTopics, summary.TotalTopics)

	return summary
}

// Percentage returns part/total*100 rounded to two decimals, or 0 for an empty total.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
