package sim

import (
	"image/color"

	"github.com/avandermeer/shootrange/internal/common"
)

// This file contains all frame rendering for the sim engine. Rendering
// is deterministic given engine state.

const (
	targetWidth  = 26
	targetHeight = 52

	gunWidth  = 40
	gunHeight = 34
	barrelLen = 22
)

func render(e *Engine) *Frame {
	f := NewFrame()

	drawBackdrop(f)
	if e.targetAlive {
		drawTarget(f, e.targetApparentX())
	}
	drawGun(f, e.tic > 0 && e.muzzleTic == e.tic)
	drawCrosshair(f)

	return f
}

// drawBackdrop paints sky, far wall and floor with simple vertical
// shading so the bands survive grayscale conversion.
func drawBackdrop(f *Frame) {
	for y := 0; y < f.H; y++ {
		var c color.RGBA
		switch {
		case y < horizonY:
			c = shade(common.SkyColor, -y/3)
		case y < wallBottomY:
			c = common.WallColor
		default:
			c = shade(common.FloorColor, (y-wallBottomY)/4)
		}
		for x := 0; x < f.W; x++ {
			f.SetBGR(y, x, c.B, c.G, c.R)
		}
	}
}

// drawTarget paints the target as a blocky silhouette standing against
// the far wall, centered at screen column cx.
func drawTarget(f *Frame, cx int) {
	top := wallBottomY - targetHeight
	left := cx - targetWidth/2

	// Torso and head.
	fillRect(f, left, top+targetHeight/4, targetWidth, targetHeight*3/4, common.TargetColor)
	headW := targetWidth * 2 / 3
	fillRect(f, cx-headW/2, top, headW, targetHeight/4, common.TargetColor)

	// Eyes, two bright pixels wide each.
	eyeY := top + targetHeight/8
	fillRect(f, cx-headW/4-1, eyeY, 3, 3, common.TargetEyeColor)
	fillRect(f, cx+headW/4-1, eyeY, 3, 3, common.TargetEyeColor)
}

func drawGun(f *Frame, flash bool) {
	cx := f.W / 2
	gunTop := f.H - gunHeight
	fillRect(f, cx-gunWidth/2, gunTop, gunWidth, gunHeight, common.GunColor)
	fillRect(f, cx-3, gunTop-barrelLen, 6, barrelLen, common.BarrelColor)
	if flash {
		// Muzzle flash widens toward the barrel tip.
		tip := gunTop - barrelLen
		for i := 0; i < 10; i++ {
			w := 2 + i
			fillRect(f, cx-w/2, tip-10+i, w, 1, common.FlashColor)
		}
	}
}

func drawCrosshair(f *Frame) {
	cx, cy := f.W/2, f.H/2
	c := common.CrosshairColor
	for d := -6; d <= 6; d++ {
		if d >= -2 && d <= 2 {
			continue // open center
		}
		f.SetBGR(cy, common.Clamp(cx+d, 0, f.W-1), c.B, c.G, c.R)
		f.SetBGR(common.Clamp(cy+d, 0, f.H-1), cx, c.B, c.G, c.R)
	}
}

func fillRect(f *Frame, x, y, w, h int, c color.RGBA) {
	x0 := common.Clamp(x, 0, f.W)
	y0 := common.Clamp(y, 0, f.H)
	x1 := common.Clamp(x+w, 0, f.W)
	y1 := common.Clamp(y+h, 0, f.H)
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			f.SetBGR(yy, xx, c.B, c.G, c.R)
		}
	}
}

func shade(c color.RGBA, delta int) color.RGBA {
	return color.RGBA{
		R: uint8(common.Clamp(int(c.R)+delta, 0, 255)),
		G: uint8(common.Clamp(int(c.G)+delta, 0, 255)),
		B: uint8(common.Clamp(int(c.B)+delta, 0, 255)),
		A: c.A,
	}
}
