package controllers

import (
	"log"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/store"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizController struct {
	Store  *store.Quizzes
	Cfg    *config.Config
	Logger *log.Logger
}

func NewQuizController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *QuizController {
	return &QuizController{Store: store.NewQuizzes(db), Cfg: cfg, Logger: logger}
}

type QuestionRequest struct {
	Text          string   `json:"text" validate:"required,notblank" example:"What is 15% of 200?"`
	Options       []string `json:"options" validate:"required,min=2" example:"20,30,40"`
	CorrectAnswer *int     `json:"correctAnswer" validate:"required" example:"1"`
	Explanation   string   `json:"explanation" example:"200 * 0.15 = 30"`
}

type CreateQuizRequest struct {
	Topic     string            `json:"topic" validate:"required"`
	Questions []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type UpdateQuizRequest struct {
	Questions []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// SubmitQuizRequest holds one answer per question, by position. null leaves a question unanswered.
type SubmitQuizRequest struct {
	Answers []*int `json:"answers"`
}

type QuizResponse struct {
	Message string       `json:"message"`
	Quiz    *models.Quiz `json:"quiz"`
}

func toQuestions(in []QuestionRequest) []models.Question {
	questions := make([]models.Question, 0, len(in))
	for _, q := range in {
		questions = append(questions, models.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: *q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return questions
}

// GetQuizByTopic godoc
// @Summary Get the quiz of a topic
// @Tags quiz
// @Produce json
// @Param topicId path string true "Topic ID"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} utils.ErrorResponse
// @Router /quiz/{topicId} [get]
func (qc *QuizController) GetQuizByTopic(c *fiber.Ctx) error {
	quiz, err := qc.Store.GetByTopic(c.UserContext(), c.Params("topicId"))
	if err != nil {
		return respondError(c, qc.Logger, err)
	}
	return c.JSON(quiz)
}

// CreateQuiz godoc
// @Summary Create quiz
// @Description A topic holds at most one quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body CreateQuizRequest true "Quiz"
// @Success 201 {object} QuizResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz [post]
func (qc *QuizController) CreateQuiz(c *fiber.Ctx) error {
	var input CreateQuizRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	quiz := models.Quiz{TopicID: input.Topic, Questions: toQuestions(input.Questions)}
	if err := qc.Store.Create(c.UserContext(), &quiz); err != nil {
		return respondError(c, qc.Logger, err)
	}
	return utils.Created(c, QuizResponse{Message: "Quiz created successfully", Quiz: &quiz})
}

// UpdateQuiz godoc
// @Summary Replace quiz questions
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body UpdateQuizRequest true "Questions"
// @Success 200 {object} QuizResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/{id} [put]
func (qc *QuizController) UpdateQuiz(c *fiber.Ctx) error {
	var input UpdateQuizRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	quiz, err := qc.Store.ReplaceQuestions(c.UserContext(), c.Params("id"), toQuestions(input.Questions))
	if err != nil {
		return respondError(c, qc.Logger, err)
	}
	return c.JSON(QuizResponse{Message: "Quiz updated successfully", Quiz: quiz})
}

// DeleteQuiz godoc
// @Summary Delete quiz
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/{id} [delete]
func (qc *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	if err := qc.Store.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, qc.Logger, err)
	}
	return c.JSON(utils.MessageResponse{Message: "Quiz deleted successfully"})
}

// SubmitQuiz godoc
// @Summary Grade answers
// @Description Scores the answers by position. Nothing is stored; use /quiz-attempt to record the attempt.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body SubmitQuizRequest true "Answers"
// @Success 200 {object} models.QuizResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/{id}/submit [post]
func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	var input SubmitQuizRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	quiz, err := qc.Store.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, qc.Logger, err)
	}
	return c.JSON(quiz.Grade(input.Answers))
}
