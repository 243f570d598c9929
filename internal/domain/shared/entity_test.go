package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseAggregateRoot(t *testing.T) {
	root := NewBaseAggregateRoot()

	assert.NotEqual(t, uuid.Nil, root.ID)
	assert.Equal(t, 1, root.Version)
	assert.Equal(t, root.CreatedAt, root.UpdatedAt)

	root.IncrementVersion()
	assert.Equal(t, 2, root.Version)
}
