// Package policy holds the agent's network: a convolutional trunk with
// separate actor and critic heads.
package policy

import (
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyconv"
	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"

	"github.com/avandermeer/shootrange/internal/obs"
)

// HiddenSize is the width of the trunk's final fully-connected layer.
const HiddenSize = 512

// Policy bundles the shared convolutional trunk with the actor and
// critic heads. The trunk takes raw [0,255] grayscale observations; the
// first markup layer rescales them.
type Policy struct {
	Creator anyvec.Creator
	Trunk   anynet.Net
	Actor   anynet.Net
	Critic  anynet.Net
}

// New builds a fresh randomly-initialized policy for a discrete action
// space of size numActions.
func New(c anyvec.Creator, numActions int) (*Policy, error) {
	if numActions <= 0 {
		return nil, fmt.Errorf("numActions must be positive, got %d", numActions)
	}
	markup := fmt.Sprintf(`
		Input(w=%d, h=%d, d=%d)

		Linear(scale=0.00392156862745098, bias=-0.5)

		Conv(w=8, h=8, n=32, sx=4, sy=4)
		ReLU
		Conv(w=4, h=4, n=64, sx=2, sy=2)
		ReLU
		Conv(w=3, h=3, n=64, sx=1, sy=1)
		ReLU
		FC(out=%d)
		ReLU
	`, obs.Width, obs.Height, obs.Channels, HiddenSize)
	convNet, err := anyconv.FromMarkup(c, markup)
	if err != nil {
		return nil, fmt.Errorf("build trunk: %w", err)
	}
	trunk, ok := convNet.(anynet.Net)
	if !ok {
		return nil, fmt.Errorf("unexpected trunk type %T", convNet)
	}
	return &Policy{
		Creator: c,
		Trunk:   trunk,
		// A zero actor head starts the policy near-uniform, which keeps
		// early exploration alive.
		Actor:  anynet.Net{anynet.NewFCZero(c, HiddenSize, numActions)},
		Critic: anynet.Net{anynet.NewFC(c, HiddenSize, 1)},
	}, nil
}

// Parameters returns every trainable variable across trunk and heads.
func (p *Policy) Parameters() []*anydiff.Var {
	return anynet.AllParameters(p.Trunk, p.Actor, p.Critic)
}

// Block exposes the full actor path (trunk + actor head) as a stateless
// recurrent block for the rollout roller.
func (p *Policy) Block() anyrnn.Block {
	full := append(append(anynet.Net{}, p.Trunk...), p.Actor...)
	return &anyrnn.LayerBlock{Layer: full}
}

// ActorOut runs the actor path on a single observation and returns the
// raw action logits.
func (p *Policy) ActorOut(o *obs.Observation) anyvec.Vector {
	in := anydiff.NewConst(p.Creator.MakeVectorData(p.Creator.MakeNumericList(o.Float64s())))
	out := p.Actor.Apply(p.Trunk.Apply(in, 1), 1)
	return out.Output()
}

// GreedyAgent selects the highest-logit action. Used for evaluation,
// where action sampling is turned off.
type GreedyAgent struct {
	Policy *Policy
}

// Act returns the argmax action for the observation.
func (a *GreedyAgent) Act(o *obs.Observation) (int, error) {
	if o == nil {
		return 0, fmt.Errorf("nil observation")
	}
	return anyvec.MaxIndex(a.Policy.ActorOut(o)), nil
}
