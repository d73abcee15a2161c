// Package env presents the sim engine through a standard
// reset/step/close interface with declared observation and action spaces.
package env

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/avandermeer/shootrange/internal/obs"
	"github.com/avandermeer/shootrange/internal/sim"
)

// FrameSkip is the number of engine tics each action is applied for.
// Trades control granularity for throughput; standard practice for this
// class of simulator.
const FrameSkip = 4

// ErrClosed is returned when the adapter is used after Close.
var ErrClosed = errors.New("environment is closed")

// ObservationSpace describes the fixed shape and bounds of observations.
type ObservationSpace struct {
	Height   int
	Width    int
	Channels int
	Low      uint8
	High     uint8
}

// ActionSpace is a discrete action set of size N.
type ActionSpace struct {
	N int
}

// Info carries auxiliary per-step data read from the sim.
type Info struct {
	Ammo int
}

// StepResult is the outcome of a single adapter step.
type StepResult struct {
	Obs    *obs.Observation
	Reward float64
	Done   bool
	Info   Info
}

// Env wraps a sim engine behind the standard environment contract.
// It is not safe for concurrent use; exactly one goroutine drives it.
type Env struct {
	engine   *sim.Engine
	obsSpace ObservationSpace
	actSpace ActionSpace
	logger   zerolog.Logger
	closed   bool
}

// New opens the scenario at path and wraps it. The visible flag is fixed
// for the adapter's lifetime; Render is a no-op.
func New(scenarioPath string, visible bool, logger zerolog.Logger) (*Env, error) {
	cfg, err := sim.LoadScenario(scenarioPath)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, sim.Options{Visible: visible, Logger: logger}, logger)
}

// NewFromConfig wraps an engine built from an already-loaded scenario.
// Tests and the viewer use it to control seeding.
func NewFromConfig(cfg sim.ScenarioConfig, opts sim.Options, logger zerolog.Logger) (*Env, error) {
	engine, err := sim.New(cfg, opts)
	if err != nil {
		return nil, err
	}
	return &Env{
		engine: engine,
		obsSpace: ObservationSpace{
			Height:   obs.Height,
			Width:    obs.Width,
			Channels: obs.Channels,
			Low:      obs.PixelLow,
			High:     obs.PixelHigh,
		},
		actSpace: ActionSpace{N: engine.ButtonCount()},
		logger:   logger.With().Str("component", "env").Logger(),
	}, nil
}

// ObservationSpace returns the declared observation space.
func (e *Env) ObservationSpace() ObservationSpace { return e.obsSpace }

// ActionSpace returns the declared action space.
func (e *Env) ActionSpace() ActionSpace { return e.actSpace }

// Engine exposes the wrapped sim engine for the episode viewer.
func (e *Env) Engine() *sim.Engine { return e.engine }

// Reset starts a new episode and returns the preprocessed first frame.
func (e *Env) Reset() (*obs.Observation, error) {
	if e.closed {
		return nil, ErrClosed
	}
	e.engine.NewEpisode()
	return obs.Preprocess(e.engine.Frame()), nil
}

// Step applies the action for FrameSkip tics. While the episode runs it
// returns the preprocessed frame and the current ammo count. Once the
// episode has ended the sim state is no longer readable, so the result
// carries a zero observation of the declared shape and zero ammo.
func (e *Env) Step(action int) (StepResult, error) {
	if e.closed {
		return StepResult{}, ErrClosed
	}
	if action < 0 || action >= e.actSpace.N {
		return StepResult{}, fmt.Errorf("action %d outside discrete space of size %d", action, e.actSpace.N)
	}

	buttons := make([]bool, e.actSpace.N)
	buttons[action] = true
	reward := e.engine.MakeAction(buttons, FrameSkip)

	if e.engine.EpisodeFinished() {
		return StepResult{
			Obs:    obs.Zero(),
			Reward: reward,
			Done:   true,
		}, nil
	}
	return StepResult{
		Obs:    obs.Preprocess(e.engine.Frame()),
		Reward: reward,
		Info:   Info{Ammo: e.engine.Ammo()},
	}, nil
}

// Render is a no-op. Visibility is decided at construction time.
func (e *Env) Render() {}

// Close releases the underlying sim exactly once. There is no finalizer;
// callers own the lifetime.
func (e *Env) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true
	return e.engine.Close()
}
