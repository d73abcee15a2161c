package env

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandermeer/shootrange/internal/obs"
	"github.com/avandermeer/shootrange/internal/sim"
)

func newTestRollout(t *testing.T) *Rollout {
	t.Helper()
	return &Rollout{Env: newTestEnv(t)}
}

func oneHot(t *testing.T, r *Rollout, action int) []float64 {
	t.Helper()
	v := make([]float64, r.Env.ActionSpace().N)
	v[action] = 1
	return v
}

func TestRolloutReset(t *testing.T) {
	r := newTestRollout(t)

	v, err := r.Reset()
	require.NoError(t, err)
	assert.Len(t, v, obs.Height*obs.Width*obs.Channels)
}

func TestRolloutStepDecodesOneHot(t *testing.T) {
	r := newTestRollout(t)
	_, err := r.Reset()
	require.NoError(t, err)

	before := r.Env.Engine().Tic()
	v, reward, done, err := r.Step(oneHot(t, r, int(sim.ButtonMoveLeft)))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Len(t, v, obs.Height*obs.Width*obs.Channels)
	assert.Equal(t, before+FrameSkip, r.Env.Engine().Tic())
	assert.InDelta(t, -4.0, reward, 1e-6)
	assert.Equal(t, 1, r.Steps())
}

func TestRolloutCountsStepsAcrossEpisodes(t *testing.T) {
	r := newTestRollout(t)

	for ep := 0; ep < 2; ep++ {
		_, err := r.Reset()
		require.NoError(t, err)
		done := false
		for !done {
			_, _, d, err := r.Step(oneHot(t, r, int(sim.ButtonMoveLeft)))
			require.NoError(t, err)
			done = d
		}
	}
	// Two timeout episodes of 60 tics at frame-skip 4.
	assert.Equal(t, 30, r.Steps())
}

func TestRolloutOnStep(t *testing.T) {
	r := newTestRollout(t)

	var seen []int
	r.OnStep = func(total int) error {
		seen = append(seen, total)
		return nil
	}

	_, err := r.Reset()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, _, _, err := r.Step(oneHot(t, r, int(sim.ButtonMoveRight)))
		require.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestRolloutOnStepAborts(t *testing.T) {
	r := newTestRollout(t)

	boom := errors.New("stop the rollout")
	r.OnStep = func(int) error { return boom }

	_, err := r.Reset()
	require.NoError(t, err)
	_, _, _, err = r.Step(oneHot(t, r, int(sim.ButtonMoveLeft)))
	assert.ErrorIs(t, err, boom)
}
