package shutdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"greyscale-inspector/internal/logger"
)

func TestShutdownRunsHooksInReverseOrderOnce(t *testing.T) {
	m := NewManager(context.Background(), logger.Nop())

	var calls []string
	m.Register(func() { calls = append(calls, "first") })
	m.Register(func() { calls = append(calls, "second") })

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"second", "first"}, calls)
	assert.ErrorIs(t, m.Context().Err(), context.Canceled)
}

func TestContextFollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	m := NewManager(parent, logger.Nop())

	cancel()
	assert.ErrorIs(t, m.Context().Err(), context.Canceled)
}
