package controllers

import (
	"log"
	"strings"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/store"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CurriculumController serves exams, subjects and topics.
type CurriculumController struct {
	Store  *store.Curriculum
	Cfg    *config.Config
	Logger *log.Logger
}

func NewCurriculumController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *CurriculumController {
	return &CurriculumController{Store: store.NewCurriculum(db), Cfg: cfg, Logger: logger}
}

type ExamRequest struct {
	Name        string `json:"name" validate:"required,notblank" example:"SSC CGL"`
	Description string `json:"description" example:"Staff Selection Commission"`
}

type UpdateExamRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Description *string `json:"description"`
}

type SubjectRequest struct {
	Name string `json:"name" validate:"required,notblank" example:"Quantitative Aptitude"`
	Exam string `json:"exam" validate:"required"`
}

type UpdateSubjectRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

type TopicRequest struct {
	Name          string `json:"name" validate:"required,notblank" example:"Percentages"`
	Subject       string `json:"subject" validate:"required"`
	Priority      string `json:"priority" example:"High" enums:"High,Medium,Low"`
	StudyMaterial string `json:"studyMaterial"`
}

type UpdateTopicRequest struct {
	Name          *string `json:"name" validate:"omitempty,notblank"`
	Priority      *string `json:"priority" enums:"High,Medium,Low"`
	StudyMaterial *string `json:"studyMaterial"`
}

type ExamResponse struct {
	Message string       `json:"message"`
	Exam    *models.Exam `json:"exam"`
}

type SubjectResponse struct {
	Message string          `json:"message"`
	Subject *models.Subject `json:"subject"`
}

type TopicResponse struct {
	Message string        `json:"message"`
	Topic   *models.Topic `json:"topic"`
}

// GetExams godoc
// @Summary List exams
// @Description Returns every exam with its subjects
// @Tags exams
// @Produce json
// @Success 200 {array} models.Exam
// @Failure 500 {object} utils.ErrorResponse
// @Router /exams [get]
func (cc *CurriculumController) GetExams(c *fiber.Ctx) error {
	exams, err := cc.Store.ListExams(c.UserContext())
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(exams)
}

// GetExam godoc
// @Summary Get exam
// @Description Returns the exam with subjects and their topics
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} models.Exam
// @Failure 404 {object} utils.ErrorResponse
// @Router /exams/{id} [get]
func (cc *CurriculumController) GetExam(c *fiber.Ctx) error {
	exam, err := cc.Store.GetExam(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(exam)
}

// CreateExam godoc
// @Summary Create exam
// @Tags exams
// @Accept json
// @Produce json
// @Param request body ExamRequest true "Exam"
// @Success 201 {object} ExamResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /exams [post]
func (cc *CurriculumController) CreateExam(c *fiber.Ctx) error {
	var input ExamRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	exam := models.Exam{Name: strings.TrimSpace(input.Name), Description: input.Description}
	if err := cc.Store.CreateExam(c.UserContext(), &exam); err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.Created(c, ExamResponse{Message: "Exam created successfully", Exam: &exam})
}

// UpdateExam godoc
// @Summary Update exam
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param request body UpdateExamRequest true "Fields to change"
// @Success 200 {object} ExamResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /exams/{id} [put]
func (cc *CurriculumController) UpdateExam(c *fiber.Ctx) error {
	var input UpdateExamRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	exam, err := cc.Store.UpdateExam(c.UserContext(), c.Params("id"), store.ExamUpdate{
		Name:        trimmed(input.Name),
		Description: input.Description,
	})
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(ExamResponse{Message: "Exam updated successfully", Exam: exam})
}

// DeleteExam godoc
// @Summary Delete exam
// @Description Deletes the exam with its subjects, topics, quizzes and progress
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /exams/{id} [delete]
func (cc *CurriculumController) DeleteExam(c *fiber.Ctx) error {
	if err := cc.Store.DeleteExam(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(utils.MessageResponse{Message: "Exam deleted successfully"})
}

// GetSubjectsByExam godoc
// @Summary List subjects of an exam
// @Tags subjects
// @Produce json
// @Param examId path string true "Exam ID"
// @Success 200 {array} models.Subject
// @Router /exams/{examId}/subjects [get]
func (cc *CurriculumController) GetSubjectsByExam(c *fiber.Ctx) error {
	subjects, err := cc.Store.ListSubjects(c.UserContext(), c.Params("examId"))
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(subjects)
}

// CreateSubject godoc
// @Summary Create subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body SubjectRequest true "Subject"
// @Success 201 {object} SubjectResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /subjects [post]
func (cc *CurriculumController) CreateSubject(c *fiber.Ctx) error {
	var input SubjectRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	subject := models.Subject{Name: strings.TrimSpace(input.Name), ExamID: input.Exam}
	if err := cc.Store.CreateSubject(c.UserContext(), &subject); err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.Created(c, SubjectResponse{Message: "Subject created successfully", Subject: &subject})
}

// UpdateSubject godoc
// @Summary Rename subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path string true "Subject ID"
// @Param request body UpdateSubjectRequest true "New name"
// @Success 200 {object} SubjectResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /subjects/{id} [put]
func (cc *CurriculumController) UpdateSubject(c *fiber.Ctx) error {
	var input UpdateSubjectRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	subject, err := cc.Store.UpdateSubject(c.UserContext(), c.Params("id"), strings.TrimSpace(input.Name))
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(SubjectResponse{Message: "Subject updated successfully", Subject: subject})
}

// DeleteSubject godoc
// @Summary Delete subject
// @Tags subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /subjects/{id} [delete]
func (cc *CurriculumController) DeleteSubject(c *fiber.Ctx) error {
	if err := cc.Store.DeleteSubject(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(utils.MessageResponse{Message: "Subject deleted successfully"})
}

// GetTopicsBySubject godoc
// @Summary List topics of a subject
// @Tags topics
// @Produce json
// @Param subjectId path string true "Subject ID"
// @Success 200 {array} models.Topic
// @Router /subjects/{subjectId}/topics [get]
func (cc *CurriculumController) GetTopicsBySubject(c *fiber.Ctx) error {
	topics, err := cc.Store.ListTopics(c.UserContext(), c.Params("subjectId"))
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(topics)
}

// GetPriorityTopics godoc
// @Summary List High and Medium priority topics
// @Description Same order as the full list, Low priority topics left out
// @Tags topics
// @Produce json
// @Param subjectId path string true "Subject ID"
// @Success 200 {array} models.Topic
// @Router /subjects/{subjectId}/topics/filtered [get]
func (cc *CurriculumController) GetPriorityTopics(c *fiber.Ctx) error {
	topics, err := cc.Store.ListTopics(c.UserContext(), c.Params("subjectId"), models.StudentPriorities...)
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(topics)
}

// GetTopic godoc
// @Summary Get topic
// @Description Returns the topic with its subject, used for the study material view
// @Tags topics
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} models.Topic
// @Failure 404 {object} utils.ErrorResponse
// @Router /topics/{id} [get]
func (cc *CurriculumController) GetTopic(c *fiber.Ctx) error {
	topic, err := cc.Store.GetTopic(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(topic)
}

// CreateTopic godoc
// @Summary Create topic
// @Tags topics
// @Accept json
// @Produce json
// @Param request body TopicRequest true "Topic"
// @Success 201 {object} TopicResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /topics [post]
func (cc *CurriculumController) CreateTopic(c *fiber.Ctx) error {
	var input TopicRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	priority, err := models.ParsePriority(input.Priority)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	topic := models.Topic{
		Name:          strings.TrimSpace(input.Name),
		SubjectID:     input.Subject,
		Priority:      priority,
		StudyMaterial: input.StudyMaterial,
	}
	if err := cc.Store.CreateTopic(c.UserContext(), &topic); err != nil {
		return respondError(c, cc.Logger, err)
	}
	return utils.Created(c, TopicResponse{Message: "Topic created successfully", Topic: &topic})
}

// UpdateTopic godoc
// @Summary Update topic
// @Tags topics
// @Accept json
// @Produce json
// @Param id path string true "Topic ID"
// @Param request body UpdateTopicRequest true "Fields to change"
// @Success 200 {object} TopicResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /topics/{id} [put]
func (cc *CurriculumController) UpdateTopic(c *fiber.Ctx) error {
	var input UpdateTopicRequest
	if ok, err := bind(c, &input); !ok {
		return err
	}

	update := store.TopicUpdate{Name: trimmed(input.Name), StudyMaterial: input.StudyMaterial}
	if input.Priority != nil {
		priority, err := models.ParsePriority(*input.Priority)
		if err != nil {
			return utils.BadRequest(c, err.Error())
		}
		update.Priority = &priority
	}

	topic, err := cc.Store.UpdateTopic(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(TopicResponse{Message: "Topic updated successfully", Topic: topic})
}

// DeleteTopic godoc
// @Summary Delete topic
// @Tags topics
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /topics/{id} [delete]
func (cc *CurriculumController) DeleteTopic(c *fiber.Ctx) error {
	if err := cc.Store.DeleteTopic(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, cc.Logger, err)
	}
	return c.JSON(utils.MessageResponse{Message: "Topic deleted successfully"})
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
