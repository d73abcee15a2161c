package env

import (
	"fmt"

	"github.com/avandermeer/shootrange/internal/obs"
)

// Check validates that an adapter honors its declared contract before it
// is handed to a training loop: sane spaces, reset and step observations
// of the declared shape, and a zero terminal observation convention.
// It consumes sim episodes; run it before training, not during.
func Check(e *Env) error {
	os := e.ObservationSpace()
	if os.Height != obs.Height || os.Width != obs.Width || os.Channels != obs.Channels {
		return fmt.Errorf("observation space (%d,%d,%d) does not match preprocessor output (%d,%d,%d)",
			os.Height, os.Width, os.Channels, obs.Height, obs.Width, obs.Channels)
	}
	if os.Low >= os.High {
		return fmt.Errorf("observation bounds [%d,%d] are empty", os.Low, os.High)
	}
	if e.ActionSpace().N <= 0 {
		return fmt.Errorf("action space must be non-empty, got %d", e.ActionSpace().N)
	}

	o, err := e.Reset()
	if err != nil {
		return fmt.Errorf("reset probe: %w", err)
	}
	if err := checkShape(o, os); err != nil {
		return fmt.Errorf("reset observation: %w", err)
	}

	for a := 0; a < e.ActionSpace().N; a++ {
		res, err := e.Step(a)
		if err != nil {
			return fmt.Errorf("step probe with action %d: %w", a, err)
		}
		if err := checkShape(res.Obs, os); err != nil {
			return fmt.Errorf("step observation for action %d: %w", a, err)
		}
		if res.Done {
			if !res.Obs.IsZero() {
				return fmt.Errorf("terminal observation is not zero-filled")
			}
			if res.Info.Ammo != 0 {
				return fmt.Errorf("terminal info reports ammo %d, want 0", res.Info.Ammo)
			}
			if _, err := e.Reset(); err != nil {
				return fmt.Errorf("reset after terminal probe: %w", err)
			}
		}
	}
	return nil
}

func checkShape(o *obs.Observation, os ObservationSpace) error {
	if o == nil {
		return fmt.Errorf("observation is nil")
	}
	want := os.Height * os.Width * os.Channels
	if o.Len() != want {
		return fmt.Errorf("observation has %d elements, want %d", o.Len(), want)
	}
	return nil
}
