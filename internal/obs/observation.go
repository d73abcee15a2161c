// Package obs converts raw sim frames into the fixed observation format
// the agent trains on.
package obs

// Observation dimensions. These never change for the lifetime of an
// environment: terminal steps get a zero-filled observation of the same
// shape instead of no observation at all.
const (
	Height   = 100
	Width    = 160
	Channels = 1

	PixelLow  = 0
	PixelHigh = 255
)

// Observation is a single-channel grayscale image, row-major, one byte
// per pixel with values in [PixelLow, PixelHigh].
type Observation struct {
	Pix []uint8
}

// Zero returns the all-zero observation used for terminal steps.
func Zero() *Observation {
	return &Observation{Pix: make([]uint8, Height*Width*Channels)}
}

// Shape returns (height, width, channels).
func (o *Observation) Shape() (int, int, int) {
	return Height, Width, Channels
}

// Len returns the flat element count.
func (o *Observation) Len() int {
	return len(o.Pix)
}

// At returns the pixel at row y, column x.
func (o *Observation) At(y, x int) uint8 {
	return o.Pix[y*Width+x]
}

// Float64s returns the pixels as raw float64 values in [0,255], the
// layout the network's input scaling layer expects.
func (o *Observation) Float64s() []float64 {
	out := make([]float64, len(o.Pix))
	for i, p := range o.Pix {
		out[i] = float64(p)
	}
	return out
}

// IsZero reports whether every pixel is zero.
func (o *Observation) IsZero() bool {
	for _, p := range o.Pix {
		if p != 0 {
			return false
		}
	}
	return true
}
