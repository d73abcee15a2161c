package policy

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec/anyvec32"

	"github.com/avandermeer/shootrange/internal/obs"
	"github.com/avandermeer/shootrange/internal/testutil"
)

func TestNewRejectsBadActionCount(t *testing.T) {
	c := anyvec32.CurrentCreator()
	_, err := New(c, 0)
	assert.Error(t, err)
	_, err = New(c, -3)
	assert.Error(t, err)
}

func TestActorOutShape(t *testing.T) {
	c := anyvec32.CurrentCreator()
	p, err := New(c, 3)
	require.NoError(t, err)

	out := p.ActorOut(obs.Zero())
	assert.Equal(t, 3, out.Len())
}

func TestZeroActorHeadIsUniform(t *testing.T) {
	c := anyvec32.CurrentCreator()
	p, err := New(c, 3)
	require.NoError(t, err)

	// The actor head starts at zero, so all logits match.
	out := p.ActorOut(obs.Zero())
	logits := out.Data().([]float32)
	require.Len(t, logits, 3)
	assert.Equal(t, logits[0], logits[1])
	assert.Equal(t, logits[1], logits[2])
}

func TestParametersCoverAllNets(t *testing.T) {
	c := anyvec32.CurrentCreator()
	p, err := New(c, 3)
	require.NoError(t, err)

	params := p.Parameters()
	// The heads contribute a weight+bias pair each on top of the trunk.
	assert.Len(t, params, len(anynet.AllParameters(p.Trunk))+4)
}

func TestGreedyAgent(t *testing.T) {
	c := anyvec32.CurrentCreator()
	p, err := New(c, 3)
	require.NoError(t, err)

	agent := &GreedyAgent{Policy: p}
	action, err := agent.Act(obs.Zero())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, action, 0)
	assert.Less(t, action, 3)

	_, err = agent.Act(nil)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := anyvec32.CurrentCreator()
	p, err := New(c, 3)
	require.NoError(t, err)

	o := obs.Zero()
	for i := range o.Pix {
		o.Pix[i] = uint8(i % 251)
	}
	want := p.ActorOut(o).Data().([]float32)

	path := filepath.Join(t.TempDir(), "policy")
	require.NoError(t, p.Save(path))

	loaded, err := Load(path, c)
	require.NoError(t, err)
	got := loaded.ActorOut(o).Data().([]float32)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), anyvec32.CurrentCreator())
	assert.Error(t, err)
}

func TestLoadOrCreate(t *testing.T) {
	c := anyvec32.CurrentCreator()

	p, err := LoadOrCreate("", c, 3, testutil.NopLogger())
	require.NoError(t, err)
	require.NotNil(t, p)

	path := filepath.Join(t.TempDir(), "policy")
	require.NoError(t, p.Save(path))

	loaded, err := LoadOrCreate(path, c, 3, testutil.NopLogger())
	require.NoError(t, err)
	assert.Len(t, loaded.Parameters(), len(p.Parameters()))

	// A bad path falls back to a fresh network instead of failing.
	fresh, err := LoadOrCreate(filepath.Join(t.TempDir(), "missing"), c, 3, testutil.NopLogger())
	require.NoError(t, err)
	require.NotNil(t, fresh)
}
