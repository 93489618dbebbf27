package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidGroupName(t *testing.T) {
	valid := []string{"red", "red team", "Team-1", "émeraude", strings.Repeat("a", 64)}
	for _, name := range valid {
		assert.True(t, IsValidGroupName(name), "expected %q to be valid", name)
	}

	invalid := []string{"", "a.b", ".", "$inc", "pay$day", strings.Repeat("a", 65)}
	for _, name := range invalid {
		assert.False(t, IsValidGroupName(name), "expected %q to be invalid", name)
	}
}

func TestTranslateErrors_NonValidationError(t *testing.T) {
	fields := TranslateErrors(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), fields["detail"])
}
