package models

import (
	"fmt"
	"strconv"

	"gorm.io/datatypes"
)

type Quiz struct {
	Base
	TopicID   string     `gorm:"type:varchar(36);not null;uniqueIndex" json:"topicId"`
	Topic     *Topic     `json:"topic,omitempty"`
	Questions []Question `gorm:"foreignKey:QuizID" json:"questions"`
}

type Question struct {
	Base
	QuizID        string                      `gorm:"type:varchar(36);not null;index" json:"-"`
	Position      int                         `gorm:"not null" json:"-"`
	Text          string                      `gorm:"type:text;not null" json:"text"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer int                         `gorm:"not null" json:"correctAnswer"`
	Explanation   string                      `gorm:"type:text;not null" json:"explanation"`
}

// ValidateQuestions checks every question before a quiz is written.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("quiz needs at least one question")
	}
	for i, q := range questions {
		if q.Text == "" {
			return fmt.Errorf("question %d: text is required", i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: at least two options are required", i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d: correctAnswer must index into options", i+1)
		}
	}
	return nil
}

type QuestionResult struct {
	QuestionText  string  `json:"questionText"`
	UserAnswer    *string `json:"userAnswer"`
	CorrectAnswer string  `json:"correctAnswer"`
	Explanation   string  `json:"explanation"`
	IsCorrect     bool    `json:"isCorrect"`
}

type QuizResult struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Percentage     string           `json:"percentage"`
	Results        []QuestionResult `json:"results"`
}

// Grade scores answers positionally: answers[i] answers Questions[i].
// Missing, null or out-of-range answers count as wrong.
func (q *Quiz) Grade(answers []*int) QuizResult {
	result := QuizResult{
		TotalQuestions: len(q.Questions),
		Results:        make([]QuestionResult, 0, len(q.Questions)),
	}

	for i, question := range q.Questions {
		var selected *int
		if i < len(answers) {
			selected = answers[i]
		}

		isCorrect := selected != nil && *selected == question.CorrectAnswer
		if isCorrect {
			result.Score++
		}

		result.Results = append(result.Results, QuestionResult{
			QuestionText:  question.Text,
			UserAnswer:    optionAt(question.Options, selected),
			CorrectAnswer: question.Options[question.CorrectAnswer],
			Explanation:   question.Explanation,
			IsCorrect:     isCorrect,
		})
	}

	percentage := 0.0
	if result.TotalQuestions > 0 {
		percentage = float64(result.Score) / float64(result.TotalQuestions) * 100
	}
	result.Percentage = strconv.FormatFloat(percentage, 'f', 2, 64)

	return result
}

func optionAt(options []string, index *int) *string {
	if index == nil || *index < 0 || *index >= len(options) {
		return nil
	}
	return &options[*index]
}
