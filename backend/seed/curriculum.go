package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"examportal/backend/models"
	"examportal/backend/store"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// File is the YAML layout of a curriculum seed:
//
//	exams:
//	  - name: SSC CGL
//	    subjects:
//	      - name: Quantitative Aptitude
//	        topics:
//	          - name: Percentages
//	            priority: High
//	            quiz:
//	              - text: What is 15% of 200?
//	                options: ["20", "30", "40"]
//	                correctAnswer: 1
type File struct {
	Exams []Exam `yaml:"exams"`
}

type Exam struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Subjects    []Subject `yaml:"subjects"`
}

type Subject struct {
	Name   string  `yaml:"name"`
	Topics []Topic `yaml:"topics"`
}

type Topic struct {
	Name          string     `yaml:"name"`
	Priority      string     `yaml:"priority"`
	StudyMaterial string     `yaml:"studyMaterial"`
	Quiz          []Question `yaml:"quiz"`
}

type Question struct {
	Text          string   `yaml:"text"`
	Options       []string `yaml:"options"`
	CorrectAnswer int      `yaml:"correctAnswer"`
	Explanation   string   `yaml:"explanation"`
}

// Result counts what Apply wrote.
type Result struct {
	ExamsCreated int
	ExamsSkipped int
	Subjects     int
	Topics       int
	Quizzes      int
}

// Parse decodes and validates a curriculum file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parsing curriculum: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the curriculum file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening curriculum: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Validate checks names, priorities and answer indexes before anything is written.
func (f *File) Validate() error {
	seen := make(map[string]bool)
	for i, e := range f.Exams {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("exam %d: name is required", i+1)
		}
		if seen[e.Name] {
			return fmt.Errorf("exam %q: listed twice", e.Name)
		}
		seen[e.Name] = true

		for j, s := range e.Subjects {
			if strings.TrimSpace(s.Name) == "" {
				return fmt.Errorf("exam %q subject %d: name is required", e.Name, j+1)
			}
			for k, t := range s.Topics {
				if strings.TrimSpace(t.Name) == "" {
					return fmt.Errorf("subject %q topic %d: name is required", s.Name, k+1)
				}
				if _, err := models.ParsePriority(t.Priority); err != nil {
					return fmt.Errorf("topic %q: %w", t.Name, err)
				}
				if len(t.Quiz) > 0 {
					if err := models.ValidateQuestions(t.questions()); err != nil {
						return fmt.Errorf("topic %q: %w", t.Name, err)
					}
				}
			}
		}
	}
	return nil
}

func (t Topic) questions() []models.Question {
	questions := make([]models.Question, 0, len(t.Quiz))
	for _, q := range t.Quiz {
		questions = append(questions, models.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return questions
}

// Apply writes every exam whose name is not taken yet, in one transaction.
// Exams that already exist are skipped as a whole.
func Apply(ctx context.Context, db *gorm.DB, f *File) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res = Result{}
		curriculum := store.NewCurriculum(tx)
		quizzes := store.NewQuizzes(tx)

		for _, e := range f.Exams {
			_, err := curriculum.FindExamByName(ctx, e.Name)
			if err == nil {
				res.ExamsSkipped++
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			exam := models.Exam{Name: e.Name, Description: e.Description}
			if err := curriculum.CreateExam(ctx, &exam); err != nil {
				return fmt.Errorf("exam %q: %w", e.Name, err)
			}
			res.ExamsCreated++

			for _, s := range e.Subjects {
				subject := models.Subject{Name: s.Name, ExamID: exam.ID}
				if err := curriculum.CreateSubject(ctx, &subject); err != nil {
					return fmt.Errorf("subject %q: %w", s.Name, err)
				}
				res.Subjects++

				for _, t := range s.Topics {
					priority, _ := models.ParsePriority(t.Priority)
					topic := models.Topic{
						Name:          t.Name,
						SubjectID:     subject.ID,
						Priority:      priority,
						StudyMaterial: t.StudyMaterial,
					}
					if err := curriculum.CreateTopic(ctx, &topic); err != nil {
						return fmt.Errorf("topic %q: %w", t.Name, err)
					}
					res.Topics++

					if len(t.Quiz) == 0 {
						continue
					}
					quiz := models.Quiz{TopicID: topic.ID, Questions: t.questions()}
					if err := quizzes.Create(ctx, &quiz); err != nil {
						return fmt.Errorf("quiz for %q: %w", t.Name, err)
					}
					res.Quizzes++
				}
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
