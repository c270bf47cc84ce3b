package reports

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteStudents(t *testing.T) {
	rows := []StudentRow{
		{Name: "Asha", Email: "asha@example.com", TargetExam: "SSC", Completed: 2, Tracked: 3},
		{Name: "Ravi", Email: "ravi@example.com", Blocked: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStudents(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(StudentsSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Name", got[0][0])
	assert.Equal(t, "Progress %", got[0][6])
	assert.Equal(t, []string{"Asha", "asha@example.com", "No", "SSC", "2", "3", "66.67"}, got[1])
	assert.Equal(t, "Yes", got[2][2])
	assert.Equal(t, "0", got[2][6])
}

func TestWriteStudentsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStudents(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(StudentsSheet)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
