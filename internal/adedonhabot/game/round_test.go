package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundAccept(t *testing.T) {
	t.Run("first submission arms the window", func(t *testing.T) {
		r := newRound(1, []string{"Name"}, 'C', time.Minute, time.Second, 0)
		defer r.close()

		first, err := r.accept(1, "Name: Carla")
		require.NoError(t, err)
		assert.True(t, first)
		assert.Equal(t, roundStateWindowOpen, r.state)
		assert.Nil(t, r.noSubmitTimer)
		assert.NotNil(t, r.windowTimer)
	})

	t.Run("second submission is not first", func(t *testing.T) {
		r := newRound(1, []string{"Name"}, 'C', time.Minute, time.Second, 0)
		defer r.close()

		_, err := r.accept(1, "Name: Carla")
		require.NoError(t, err)

		first, err := r.accept(2, "Name: Carl")
		require.NoError(t, err)
		assert.False(t, first)

		id, ok := r.firstSubmitter()
		require.True(t, ok)
		assert.Equal(t, int64(1), id)
	})

	t.Run("resubmission rejected", func(t *testing.T) {
		r := newRound(1, []string{"Name"}, 'C', time.Minute, time.Second, 0)
		defer r.close()

		_, err := r.accept(1, "Name: Carla")
		require.NoError(t, err)

		_, err = r.accept(1, "Name: Carlos")
		assert.ErrorIs(t, err, ErrAlreadySubmit)
		assert.Equal(t, "Name: Carla", r.submissions[1])
	})

	t.Run("closed round rejects", func(t *testing.T) {
		r := newRound(1, []string{"Name"}, 'C', time.Minute, time.Second, 0)
		r.close()

		_, err := r.accept(1, "Name: Carla")
		assert.ErrorIs(t, err, ErrRoundClosed)
	})

	t.Run("close stops every timer", func(t *testing.T) {
		r := newRound(1, []string{"Name"}, 'C', time.Minute, time.Second, time.Minute)
		_, err := r.accept(1, "Name: Carla")
		require.NoError(t, err)

		r.close()
		assert.Nil(t, r.noSubmitTimer)
		assert.Nil(t, r.windowTimer)
		assert.Nil(t, r.hardStopTimer)
		assert.Nil(t, timerC(r.windowTimer))
	})

	t.Run("hard stop armed only when positive", func(t *testing.T) {
		r := newRound(1, []string{"Name"}, 'C', time.Minute, time.Second, 0)
		defer r.close()
		assert.Nil(t, r.hardStopTimer)
	})
}
