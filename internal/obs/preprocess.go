package obs

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/avandermeer/shootrange/internal/sim"
)

// Preprocess turns a raw channel-first BGR frame into the observation
// the agent sees: grayscale, resized to Width x Height with Catmull-Rom
// (cubic) interpolation, single trailing channel. It is a pure function;
// the same frame always produces the same bytes. A frame that does not
// match the sim's native layout is a caller contract violation.
func Preprocess(f *sim.Frame) *Observation {
	gray := image.NewGray(image.Rect(0, 0, f.W, f.H))
	plane := f.W * f.H
	for y := 0; y < f.H; y++ {
		row := y * f.W
		for x := 0; x < f.W; x++ {
			idx := row + x
			b := int(f.Pix[idx])
			g := int(f.Pix[plane+idx])
			r := int(f.Pix[2*plane+idx])
			// BT.601 luma, same weighting the usual BGR->gray
			// conversions apply.
			gray.Pix[gray.Stride*y+x] = uint8((299*r + 587*g + 114*b + 500) / 1000)
		}
	}

	dst := image.NewGray(image.Rect(0, 0, Width, Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Src, nil)

	out := make([]uint8, Height*Width)
	for y := 0; y < Height; y++ {
		copy(out[y*Width:(y+1)*Width], dst.Pix[y*dst.Stride:y*dst.Stride+Width])
	}
	return &Observation{Pix: out}
}
