package obs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandermeer/shootrange/internal/sim"
)

func solidFrame(b, g, r uint8) *sim.Frame {
	f := sim.NewFrame()
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			f.SetBGR(y, x, b, g, r)
		}
	}
	return f
}

func TestPreprocessShape(t *testing.T) {
	o := Preprocess(sim.NewFrame())
	h, w, c := o.Shape()
	assert.Equal(t, 100, h)
	assert.Equal(t, 160, w)
	assert.Equal(t, 1, c)
	assert.Equal(t, h*w*c, o.Len())
}

func TestPreprocessZeroFrame(t *testing.T) {
	o := Preprocess(sim.NewFrame())
	assert.True(t, o.IsZero())
}

func TestPreprocessGrayscaleWeights(t *testing.T) {
	tests := []struct {
		name    string
		b, g, r uint8
		want    uint8
	}{
		{"white", 255, 255, 255, 255},
		{"pure red", 0, 0, 255, 76},
		{"pure green", 0, 255, 0, 150},
		{"pure blue", 255, 0, 0, 29},
		{"mid gray", 128, 128, 128, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Preprocess(solidFrame(tt.b, tt.g, tt.r))
			// Solid input stays solid through the resize.
			for _, p := range o.Pix {
				require.Equal(t, tt.want, p)
			}
		})
	}
}

func TestPreprocessDeterministic(t *testing.T) {
	f := sim.NewFrame()
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			f.SetBGR(y, x, uint8(x), uint8(y), uint8(x+y))
		}
	}

	a := Preprocess(f)
	b := Preprocess(f)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestPreprocessDoesNotMutateFrame(t *testing.T) {
	f := solidFrame(10, 20, 30)
	before := make([]uint8, len(f.Pix))
	copy(before, f.Pix)

	Preprocess(f)
	assert.Equal(t, before, f.Pix)
}

func TestZeroObservation(t *testing.T) {
	z := Zero()
	assert.Equal(t, Height*Width*Channels, z.Len())
	assert.True(t, z.IsZero())

	z.Pix[0] = 1
	assert.False(t, z.IsZero())
}

func TestFloat64s(t *testing.T) {
	o := Zero()
	o.Pix[0] = 255
	o.Pix[1] = 7

	fs := o.Float64s()
	require.Len(t, fs, o.Len())
	assert.Equal(t, 255.0, fs[0])
	assert.Equal(t, 7.0, fs[1])
	assert.Equal(t, 0.0, fs[2])
}
