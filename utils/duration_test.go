package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeMinutes(t *testing.T) {
	assert.Equal(t, "0 minutes", HumanizeMinutes(0))
	assert.Equal(t, "0 minutes", HumanizeMinutes(-5))
	assert.Equal(t, "1 minute", HumanizeMinutes(1))
	assert.Equal(t, "45 minutes", HumanizeMinutes(45))
	assert.Equal(t, "1 hour", HumanizeMinutes(60))
	assert.Equal(t, "2 hours", HumanizeMinutes(120))
	assert.Equal(t, "2 hours 15 minutes", HumanizeMinutes(135))
	assert.Equal(t, "1 hour 1 minute", HumanizeMinutes(61))
}
