package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplacePlaceholders(t *testing.T) {
	out := ReplacePlaceholders("Hi {leadName}, we wrote to {userEmail}.", "Asha", "asha@test.dev")
	assert.Equal(t, "Hi Asha, we wrote to asha@test.dev.", out)

	// Repeated and unknown tokens.
	out = ReplacePlaceholders("{leadName} {leadName} {unknown}", "Asha", "")
	assert.Equal(t, "Asha Asha {unknown}", out)

	out = ReplacePlaceholders("no tokens here", "Asha", "asha@test.dev")
	assert.Equal(t, "no tokens here", out)
}

func TestValidateRecipients(t *testing.T) {
	assert.NoError(t, ValidateRecipients([]string{"a@test.dev", "b@test.dev"}))
	assert.NoError(t, ValidateRecipients(nil))

	err := ValidateRecipients([]string{"a@test.dev", "not-an-email"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not-an-email")
}
