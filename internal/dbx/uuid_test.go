package dbx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID(uuid.NewString()))
	assert.True(t, IsUUID("6f1c2b0e-3f0a-4a57-9d2c-6a3b8e9f0d11"))

	for _, id := range []string{"", "abc", "p1", "6f1c2b0e-3f0a-4a57-9d2c", "6f1c2b0e-3f0a-4a57-9d2c-6a3b8e9f0d1z"} {
		assert.False(t, IsUUID(id), id)
	}
}
