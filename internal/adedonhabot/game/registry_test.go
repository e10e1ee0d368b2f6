package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("one live room per chat", func(t *testing.T) {
		registry := NewRegistry()
		config := testConfig(newFakeGateway(), approveAllOracle(), &fakeStats{})

		session, err := registry.CreateLobby(config)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, 1, registry.Len())

		_, err = registry.CreateLobby(config)
		assert.ErrorIs(t, err, ErrRoomExists)

		got, ok := registry.Get(config.RoomID)
		require.True(t, ok)
		assert.Same(t, session, got)
	})

	t.Run("finished room frees the chat", func(t *testing.T) {
		registry := NewRegistry()
		gateway := newFakeGateway()
		doneCh := make(chan struct{})

		config := testConfig(gateway, approveAllOracle(), &fakeStats{})
		config.DoneFn = func(*Session) error {
			close(doneCh)
			return nil
		}

		session, err := registry.CreateLobby(config)
		require.NoError(t, err)

		session.Run(context.Background())
		defer session.Stop()

		require.NoError(t, session.Cancel(config.CreatorID, false))
		recvEvent(t, doneCh)

		assert.Eventually(t, func() bool {
			return registry.Len() == 0
		}, time.Second, 10*time.Millisecond)

		// the chat can host a new game now
		_, err = registry.CreateLobby(config)
		assert.NoError(t, err)
	})

	t.Run("remove unknown room is a no-op", func(t *testing.T) {
		registry := NewRegistry()
		registry.Remove(42)
		assert.Equal(t, 0, registry.Len())
	})
}
