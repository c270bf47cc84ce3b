// Package reports renders admin exports.
package reports

import (
	"fmt"
	"io"

	"examportal/backend/models"

	"github.com/xuri/excelize/v2"
)

const StudentsSheet = "Students"

var studentHeader = []interface{}{
	"Name", "Email", "Blocked", "Target exam", "Completed topics", "Tracked topics", "Progress %",
}

// StudentRow is one line of the student export.
type StudentRow struct {
	Name       string
	Email      string
	Blocked    bool
	TargetExam string
	Completed  int
	Tracked    int
}

func (r StudentRow) values() []interface{} {
	blocked := "No"
	if r.Blocked {
		blocked = "Yes"
	}
	return []interface{}{
		r.Name, r.Email, blocked, r.TargetExam, r.Completed, r.Tracked,
		models.Percentage(r.Completed, r.Tracked),
	}
}

// WriteStudents writes a workbook with a header row and one row per student.
func WriteStudents(w io.Writer, rows []StudentRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StudentsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(StudentsSheet, "A1", &studentHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(StudentsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row.values()
		if err := f.SetSheetRow(StudentsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(StudentsSheet, "A", "D", 24); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
