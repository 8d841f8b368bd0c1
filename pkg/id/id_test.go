package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUUIDWithoutDashes(t *testing.T) {
	one := GetUUIDWithoutDashes()
	two := GetUUIDWithoutDashes()

	assert.Len(t, one, 32)
	assert.NotContains(t, one, "-")
	assert.NotEqual(t, one, two)
}

func TestShortId(t *testing.T) {
	assert.NotEmpty(t, ShortId())
	assert.NotEqual(t, ShortId(), ShortId())
}
