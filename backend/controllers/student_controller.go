package controllers

import (
	"bytes"
	"log"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/reports"
	"examportal/backend/store"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StudentController holds the admin student management endpoints.
type StudentController struct {
	Users    *store.Users
	Progress *store.Progress
	Cfg      *config.Config
	Logger   *log.Logger
}

func NewStudentController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *StudentController {
	return &StudentController{
		Users:    store.NewUsers(db),
		Progress: store.NewProgress(db),
		Cfg:      cfg,
		Logger:   logger,
	}
}

// GetStudents godoc
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /students [get]
func (sc *StudentController) GetStudents(c *fiber.Ctx) error {
	students, err := sc.Users.ListStudents(c.UserContext())
	if err != nil {
		return respondError(c, sc.Logger, err)
	}
	return c.JSON(students)
}

// BlockStudent godoc
// @Summary Block a student
// @Tags students
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} StudentResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /students/{studentId}/block [put]
func (sc *StudentController) BlockStudent(c *fiber.Ctx) error {
	return sc.setBlocked(c, true, "Student blocked successfully")
}

// UnblockStudent godoc
// @Summary Unblock a student
// @Tags students
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} StudentResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /students/{studentId}/unblock [put]
func (sc *StudentController) UnblockStudent(c *fiber.Ctx) error {
	return sc.setBlocked(c, false, "Student unblocked successfully")
}

func (sc *StudentController) setBlocked(c *fiber.Ctx, blocked bool, message string) error {
	student, err := sc.Users.SetBlocked(c.UserContext(), c.Params("studentId"), blocked)
	if err != nil {
		return respondError(c, sc.Logger, err)
	}
	return c.JSON(StudentResponse{Message: message, Student: student})
}

// DeleteStudent godoc
// @Summary Delete a student
// @Description Removes the student together with their progress
// @Tags students
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /students/{studentId} [delete]
func (sc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	if err := sc.Users.DeleteStudent(c.UserContext(), c.Params("studentId")); err != nil {
		return respondError(c, sc.Logger, err)
	}
	return c.JSON(utils.MessageResponse{Message: "Student deleted successfully"})
}

// ExportStudents godoc
// @Summary Export students
// @Description XLSX workbook with one row per student and their progress counts
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /students/export [get]
func (sc *StudentController) ExportStudents(c *fiber.Ctx) error {
	ctx := c.UserContext()

	students, err := sc.Users.ListStudents(ctx)
	if err != nil {
		return respondError(c, sc.Logger, err)
	}
	counts, err := sc.Progress.CountsByStudent(ctx)
	if err != nil {
		return respondError(c, sc.Logger, err)
	}

	var buf bytes.Buffer
	if err := reports.WriteStudents(&buf, studentRows(students, counts)); err != nil {
		return respondError(c, sc.Logger, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment("students.xlsx")
	return c.Send(buf.Bytes())
}

func studentRows(students []models.User, counts map[string]store.CompletionCount) []reports.StudentRow {
	rows := make([]reports.StudentRow, 0, len(students))
	for _, s := range students {
		row := reports.StudentRow{
			Name:      s.Name,
			Email:     s.Email,
			Blocked:   s.IsBlocked,
			Completed: counts[s.ID].Completed,
			Tracked:   counts[s.ID].Total,
		}
		if s.TargetExam != nil {
			row.TargetExam = s.TargetExam.Name
		}
		rows = append(rows, row)
	}
	return rows
}
