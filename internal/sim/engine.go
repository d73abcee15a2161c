package sim

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/avandermeer/shootrange/internal/common"
)

var (
	// ErrInstanceActive is returned when a second engine is opened while
	// another one is still live. The engine is not designed for
	// concurrent instances; callers must Close one before opening the next.
	ErrInstanceActive = errors.New("another sim engine instance is active")
	// ErrClosed is returned when operations are attempted on a closed engine.
	ErrClosed = errors.New("sim engine is closed")
)

// One live engine per process. Mirrors the single-window constraint of
// the class of simulators this engine stands in for.
var (
	instanceMu   sync.Mutex
	instanceLive bool
)

// Options holds construction-time settings that are not part of the
// scenario itself.
type Options struct {
	// Visible marks the engine as intended for on-screen viewing. The
	// engine renders identically either way; the flag is read by the
	// episode viewer.
	Visible bool
	// Seed seeds target placement. Zero means time-based.
	Seed   int64
	Logger zerolog.Logger
}

// Engine runs the shooting-range scenario: the player strafes along the
// near edge of the arena and fires at a single target on the far wall.
type Engine struct {
	cfg     ScenarioConfig
	visible bool
	rng     *rand.Rand
	logger  zerolog.Logger

	playerX     int
	targetX     int
	targetAlive bool
	ammo        int
	tic         int
	cooldown    int
	muzzleTic   int
	finished    bool
	episodes    int
	closed      bool
}

// New creates an engine for the given scenario. It claims the process-wide
// instance slot; Close releases it.
func New(cfg ScenarioConfig, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instanceLive {
		return nil, ErrInstanceActive
	}
	instanceLive = true

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		cfg:       cfg,
		visible:   opts.Visible,
		rng:       rand.New(rand.NewSource(seed)),
		logger:    opts.Logger.With().Str("component", "sim").Str("scenario", cfg.Name).Logger(),
		muzzleTic: -1,
	}
	e.startEpisode()

	e.logger.Info().
		Bool("visible", opts.Visible).
		Int("timeout", cfg.EpisodeTimeout).
		Int("ammo", cfg.Ammo).
		Msg("Sim engine opened")
	return e, nil
}

// NewEpisode resets the range for a fresh episode.
func (e *Engine) NewEpisode() {
	if e.closed {
		return
	}
	e.startEpisode()
	e.logger.Debug().Int("episode", e.episodes).Msg("New episode")
}

func (e *Engine) startEpisode() {
	e.playerX = ScreenWidth / 2
	// Keep the target fully on screen.
	margin := targetWidth
	e.targetX = margin + e.rng.Intn(ScreenWidth-2*margin)
	e.targetAlive = true
	e.ammo = e.cfg.Ammo
	e.tic = 0
	e.cooldown = 0
	e.muzzleTic = -1
	e.finished = false
	e.episodes++
}

// MakeAction applies the given button state for tics consecutive engine
// tics and returns the reward accumulated over them. Once the episode
// finishes mid-skip, the remaining tics are not simulated.
func (e *Engine) MakeAction(buttons []bool, tics int) float64 {
	if e.closed || e.finished {
		return 0
	}
	var reward float64
	for i := 0; i < tics && !e.finished; i++ {
		reward += e.advance(buttons)
	}
	return reward
}

// advance simulates a single tic.
func (e *Engine) advance(buttons []bool) float64 {
	e.tic++
	if e.cooldown > 0 {
		e.cooldown--
	}

	reward := e.cfg.LivingReward

	if pressed(buttons, ButtonMoveLeft) && !pressed(buttons, ButtonMoveRight) {
		e.playerX = common.Clamp(e.playerX-e.cfg.MoveSpeed, 0, ScreenWidth-1)
	} else if pressed(buttons, ButtonMoveRight) && !pressed(buttons, ButtonMoveLeft) {
		e.playerX = common.Clamp(e.playerX+e.cfg.MoveSpeed, 0, ScreenWidth-1)
	}

	if pressed(buttons, ButtonAttack) && e.cooldown == 0 && e.ammo > 0 {
		e.ammo--
		e.cooldown = e.cfg.AttackCooldown
		e.muzzleTic = e.tic
		if common.Abs(e.targetApparentX()-ScreenWidth/2) <= e.cfg.HitTolerance {
			e.targetAlive = false
			e.finished = true
			reward += e.cfg.KillReward
			e.logger.Debug().Int("tic", e.tic).Int("ammo", e.ammo).Msg("Target down")
		} else {
			reward += e.cfg.MissPenalty
		}
	}

	if e.tic >= e.cfg.EpisodeTimeout {
		e.finished = true
	}
	return reward
}

// targetApparentX is the target's on-screen column: the view tracks the
// player, so strafing shifts the target across the screen.
func (e *Engine) targetApparentX() int {
	return e.targetX - e.playerX + ScreenWidth/2
}

// Frame renders the current state into a fresh buffer. The caller owns
// the result.
func (e *Engine) Frame() *Frame {
	return render(e)
}

// Ammo returns the rounds remaining in the current episode.
func (e *Engine) Ammo() int { return e.ammo }

// EpisodeFinished reports whether the current episode has ended.
func (e *Engine) EpisodeFinished() bool { return e.finished }

// ButtonCount returns the size of the control set.
func (e *Engine) ButtonCount() int { return NumButtons }

// Tic returns the current tic within the episode.
func (e *Engine) Tic() int { return e.tic }

// Visible reports the construction-time visibility flag.
func (e *Engine) Visible() bool { return e.visible }

// Close releases the engine and frees the process-wide instance slot.
// Calling it twice is an error.
func (e *Engine) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true

	instanceMu.Lock()
	instanceLive = false
	instanceMu.Unlock()

	e.logger.Info().Int("episodes", e.episodes).Msg("Sim engine closed")
	return nil
}

func pressed(buttons []bool, idx int) bool {
	return idx < len(buttons) && buttons[idx]
}
