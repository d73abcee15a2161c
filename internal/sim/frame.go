package sim

// Frame is a raw rendered screen buffer in channel-first BGR layout:
// Pix[c*W*H + y*W + x] holds channel c (0=blue, 1=green, 2=red) of the
// pixel at (x, y). This matches what downstream preprocessing expects.
type Frame struct {
	W   int
	H   int
	Pix []uint8
}

// NewFrame allocates a zeroed frame of the engine's screen resolution.
func NewFrame() *Frame {
	return &Frame{
		W:   ScreenWidth,
		H:   ScreenHeight,
		Pix: make([]uint8, ScreenChannels*ScreenWidth*ScreenHeight),
	}
}

// At returns channel c of the pixel at (x, y).
func (f *Frame) At(c, y, x int) uint8 {
	return f.Pix[c*f.W*f.H+y*f.W+x]
}

// Set writes channel c of the pixel at (x, y).
func (f *Frame) Set(c, y, x int, v uint8) {
	f.Pix[c*f.W*f.H+y*f.W+x] = v
}

// SetBGR writes all three channels of the pixel at (x, y) at once.
func (f *Frame) SetBGR(y, x int, b, g, r uint8) {
	plane := f.W * f.H
	idx := y*f.W + x
	f.Pix[idx] = b
	f.Pix[plane+idx] = g
	f.Pix[2*plane+idx] = r
}
