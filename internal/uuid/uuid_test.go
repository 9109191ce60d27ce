package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TykTechnologies/tyk-rpc-router/internal/uuid"
)

func TestUUID(t *testing.T) {
	id := uuid.New()

	assert.NotEmpty(t, id)
	assert.True(t, uuid.Valid(id))
	assert.Contains(t, id, "-")
}

func TestUUIDHex(t *testing.T) {
	id := uuid.NewHex()

	assert.NotEmpty(t, id)
	assert.True(t, uuid.Valid(id))
	assert.NotContains(t, id, "-")
}

func TestOrNew(t *testing.T) {
	given := uuid.New()
	assert.Equal(t, given, uuid.OrNew(given))

	for _, id := range []string{"", "not-a-uuid"} {
		got := uuid.OrNew(id)
		assert.NotEqual(t, id, got)
		assert.True(t, uuid.Valid(got))
	}
}
