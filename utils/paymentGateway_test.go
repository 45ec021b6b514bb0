package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, 9000, toMinorUnits(90))
	assert.Equal(t, 0, toMinorUnits(0))
	// 16.99 has no exact binary representation; plain truncation gives 1698
	assert.Equal(t, 1699, toMinorUnits(16.99))
	assert.Equal(t, 5, toMinorUnits(0.05))
	assert.Equal(t, 12345, toMinorUnits(123.45))
}
