package env

// Rollout adapts an *Env to the anyrl.Env interface so the training
// library's rollers can drive it. Actions arrive one-hot from the
// sampler and are collapsed to an index; observations leave as raw
// [0,255] float slices (the network scales them itself).
//
// The bridge also keeps the cumulative step count across episodes and
// invokes OnStep after every environment step, which is where the
// checkpoint cadence hangs off the training loop.
type Rollout struct {
	Env *Env

	// OnStep, if set, is called with the cumulative step count after
	// each step. An error aborts the rollout.
	OnStep func(totalSteps int) error

	steps int
}

// Reset starts a new episode.
func (r *Rollout) Reset() ([]float64, error) {
	o, err := r.Env.Reset()
	if err != nil {
		return nil, err
	}
	return o.Float64s(), nil
}

// Step decodes the sampled action and advances the environment.
func (r *Rollout) Step(action []float64) ([]float64, float64, bool, error) {
	res, err := r.Env.Step(argmax(action))
	if err != nil {
		return nil, 0, false, err
	}
	r.steps++
	if r.OnStep != nil {
		if err := r.OnStep(r.steps); err != nil {
			return nil, 0, false, err
		}
	}
	return res.Obs.Float64s(), res.Reward, res.Done, nil
}

// Steps returns the cumulative environment steps taken through this
// bridge.
func (r *Rollout) Steps() int { return r.steps }

func argmax(v []float64) int {
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}
