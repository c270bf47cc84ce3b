package controllers

import (
	"log"

	"examportal/backend/config"
	"examportal/backend/middleware"
	"examportal/backend/models"
	"examportal/backend/store"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	Progress *store.Progress
	Users    *store.Users
	Cfg      *config.Config
	Logger   *log.Logger
}

func NewProgressController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *ProgressController {
	return &ProgressController{
		Progress: store.NewProgress(db),
		Users:    store.NewUsers(db),
		Cfg:      cfg,
		Logger:   logger,
	}
}

type QuizAttemptRequest struct {
	Score          int    `json:"score" validate:"gte=0,ltefield=TotalQuestions" example:"2"`
	TotalQuestions int    `json:"totalQuestions" validate:"gte=0" example:"3"`
	Answers        []*int `json:"answers" validate:"dive,required" example:"0,1,0"`
}

type TargetExamRequest struct {
	ExamID string `json:"examId" validate:"required"`
}

type ProgressResponse struct {
	Message  string           `json:"message"`
	Progress *models.Progress `json:"progress"`
}

type StudentResponse struct {
	Message string       `json:"message"`
	Student *models.User `json:"student"`
}

// GetProgress godoc
// @Summary Progress of a student
// @Description Without studentId returns the caller's progress. Students may only read their own.
// @Tags progress
// @Produce json
// @Param studentId path string false "Student ID"
// @Success 200 {object} models.ProgressSummary
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/{studentId} [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	studentID, ok := pc.ownerOrAdmin(c)
	if !ok {
		return utils.Forbidden(c, "Access denied")
	}

	rows, err := pc.Progress.ListByStudent(c.UserContext(), studentID)
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return c.JSON(models.SummarizeProgress(rows))
}

// MarkComplete godoc
// @Summary Mark a topic completed
// @Description Idempotent. Students may only mark their own topics.
// @Tags progress
// @Produce json
// @Param studentId path string true "Student ID"
// @Param topicId path string true "Topic ID"
// @Success 200 {object} ProgressResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /mark-complete/{studentId}/{topicId} [post]
func (pc *ProgressController) MarkComplete(c *fiber.Ctx) error {
	studentID, ok := pc.ownerOrAdmin(c)
	if !ok {
		return utils.Forbidden(c, "Access denied")
	}

	progress, err := pc.Progress.MarkComplete(c.UserContext(), studentID, c.Params("topicId"))
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return c.JSON(ProgressResponse{Message: "Topic marked as completed", Progress: progress})
}

// RecordQuizAttempt godoc
// @Summary Record a quiz attempt
// @Description Appends an attempt to the caller's progress on the topic. Completion is not changed.
// @Tags progress
// @Accept json
// @Produce json
// @Param topicId path string true "Topic ID"
// @Param request body QuizAttemptRequest true "Attempt"
// @Success 200 {object} ProgressResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz-attempt/{topicId} [post]
func (pc *ProgressController) RecordQuizAttempt(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	var input QuizAttemptRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	progress, err := pc.Progress.RecordAttempt(c.UserContext(), claims.ID, c.Params("topicId"), store.AttemptInput{
		Score:          input.Score,
		TotalQuestions: input.TotalQuestions,
		Answers:        selectedAnswers(input.Answers),
	})
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return c.JSON(ProgressResponse{Message: "Quiz attempt recorded", Progress: progress})
}

// SetTargetExam godoc
// @Summary Choose target exam
// @Tags progress
// @Accept json
// @Produce json
// @Param request body TargetExamRequest true "Exam"
// @Success 200 {object} StudentResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /target-exam [post]
func (pc *ProgressController) SetTargetExam(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	var input TargetExamRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	student, err := pc.Users.SetTargetExam(c.UserContext(), claims.ID, input.ExamID)
	if err != nil {
		return respondError(c, pc.Logger, err)
	}
	return c.JSON(StudentResponse{Message: "Target exam updated", Student: student})
}

// ownerOrAdmin resolves the :studentId param, defaulting to the caller.
// ok is false when a student asks for someone else.
func (pc *ProgressController) ownerOrAdmin(c *fiber.Ctx) (string, bool) {
	claims := middleware.CurrentClaims(c)
	studentID := c.Params("studentId")
	if studentID == "" {
		return claims.ID, true
	}
	return studentID, studentID == claims.ID || claims.Role == models.RoleAdmin
}

// selectedAnswers unwraps answers that have already been checked for nulls.
func selectedAnswers(answers []*int) []int {
	if answers == nil {
		return nil
	}
	out := make([]int, len(answers))
	for i, a := range answers {
		out[i] = *a
	}
	return out
}
