package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeProgress(t *testing.T) {
	rows := []Progress{
		{IsCompleted: true},
		{IsCompleted: false},
		{IsCompleted: true},
	}

	summary := SummarizeProgress(rows)

	assert.Equal(t, 2, summary.CompletedTopics)
	assert.Equal(t, 3, summary.TotalTopics)
	assert.Equal(t, 66.67, summary.ProgressPercentage)
	assert.Len(t, summary.Progress, 3)
}

func TestSummarizeProgressEmpty(t *testing.T) {
	summary := SummarizeProgress(nil)

	assert.Equal(t, 0, summary.TotalTopics)
	assert.Equal(t, float64(0), summary.ProgressPercentage)
	assert.NotNil(t, summary.Progress)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, float64(0), Percentage(0, 0))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 100.0, Percentage(4, 4))
}
