package schedule_period

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	t.Run("should allow the forward lifecycle one step at a time", func(t *testing.T) {
		assert.True(t, StatusDraft.CanTransitionTo(StatusCollecting))
		assert.True(t, StatusCollecting.CanTransitionTo(StatusScheduling))
		assert.True(t, StatusScheduling.CanTransitionTo(StatusPublished))
		assert.True(t, StatusPublished.CanTransitionTo(StatusClosed))
	})

	t.Run("should allow stepping back to reopen a stage", func(t *testing.T) {
		assert.True(t, StatusCollecting.CanTransitionTo(StatusDraft))
		assert.True(t, StatusScheduling.CanTransitionTo(StatusCollecting))
	})

	t.Run("should refuse skipping stages", func(t *testing.T) {
		assert.False(t, StatusDraft.CanTransitionTo(StatusScheduling))
		assert.False(t, StatusDraft.CanTransitionTo(StatusPublished))
		assert.False(t, StatusCollecting.CanTransitionTo(StatusPublished))
	})

	t.Run("should refuse leaving a terminal or published state backwards", func(t *testing.T) {
		assert.False(t, StatusPublished.CanTransitionTo(StatusScheduling))
		assert.False(t, StatusPublished.CanTransitionTo(StatusDraft))
		assert.False(t, StatusClosed.CanTransitionTo(StatusPublished))
		assert.False(t, StatusClosed.CanTransitionTo(StatusDraft))
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should accept every known status", func(t *testing.T) {
		for _, raw := range []string{"draft", "collecting", "scheduling", "published", "closed"} {
			status, err := ParseStatus(raw)
			assert.NoError(t, err)
			assert.Equal(t, Status(raw), status)
		}
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		_, err := ParseStatus("archived")
		assert.Error(t, err)
	})
}
