package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	assert.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	for _, s := range []string{"High", "Medium", "Low"} {
		p, err := ParsePriority(s)
		assert.NoError(t, err)
		assert.Equal(t, Priority(s), p)
	}

	_, err = ParsePriority("high")
	assert.Error(t, err)
}
