// Package ui renders evaluation episodes in a window so a trained policy
// can be watched playing the range.
package ui

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/avandermeer/shootrange/internal/common"
	"github.com/avandermeer/shootrange/internal/env"
	"github.com/avandermeer/shootrange/internal/eval"
	"github.com/avandermeer/shootrange/internal/obs"
	"github.com/avandermeer/shootrange/internal/sim"
)

// Viewer is an Ebitengine game that steps the adapter with an agent and
// draws the raw sim frame plus a small HUD.
type Viewer struct {
	env   *env.Env
	agent eval.Agent

	scale    int
	interval atomic.Int32 // ebiten ticks between env steps
	tick     int

	cur         *obs.Observation
	frame       *ebiten.Image
	rgba        *image.RGBA
	episode     int
	totalReward float64
	done        bool

	defaultFont font.Face
}

// NewViewer starts the first episode and prepares the draw surfaces.
func NewViewer(e *env.Env, agent eval.Agent, scale, interval int) (*Viewer, error) {
	o, err := e.Reset()
	if err != nil {
		return nil, fmt.Errorf("reset for viewing: %w", err)
	}
	v := &Viewer{
		env:         e,
		agent:       agent,
		scale:       scale,
		cur:         o,
		frame:       ebiten.NewImage(sim.ScreenWidth, sim.ScreenHeight),
		rgba:        image.NewRGBA(image.Rect(0, 0, sim.ScreenWidth, sim.ScreenHeight)),
		episode:     1,
		defaultFont: basicfont.Face7x13,
	}
	v.interval.Store(int32(interval))
	v.blit()
	return v, nil
}

// SetInterval changes how many ebiten ticks pass between env steps.
// The config reload hook calls this from the fsnotify goroutine while
// Update reads the value on the game loop, so the field is atomic.
func (v *Viewer) SetInterval(interval int) {
	if interval > 0 {
		v.interval.Store(int32(interval))
	}
}

// Update advances the environment by one step every interval ticks.
func (v *Viewer) Update() error {
	v.tick++
	if v.tick < int(v.interval.Load()) {
		return nil
	}
	v.tick = 0

	if v.done {
		o, err := v.env.Reset()
		if err != nil {
			return err
		}
		v.cur = o
		v.done = false
		v.episode++
		v.totalReward = 0
		v.blit()
		return nil
	}

	action, err := v.agent.Act(v.cur)
	if err != nil {
		return err
	}
	res, err := v.env.Step(action)
	if err != nil {
		return err
	}
	v.totalReward += res.Reward
	v.done = res.Done
	if !res.Done {
		v.cur = res.Obs
	}
	v.blit()
	return nil
}

// Draw renders the current frame scaled up, with the HUD on top.
func (v *Viewer) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(v.scale), float64(v.scale))
	screen.DrawImage(v.frame, op)

	hud := fmt.Sprintf("episode %d  reward %.1f  ammo %d",
		v.episode, v.totalReward, v.env.Engine().Ammo())
	text.Draw(screen, hud, v.defaultFont, 8, 16, common.HUDTextColor)
}

// Layout reports the scaled screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return sim.ScreenWidth * v.scale, sim.ScreenHeight * v.scale
}

// blit converts the engine's channel-first BGR frame into the RGBA
// surface ebiten draws from.
func (v *Viewer) blit() {
	f := v.env.Engine().Frame()
	plane := f.W * f.H
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			idx := y*f.W + x
			o := v.rgba.PixOffset(x, y)
			v.rgba.Pix[o] = f.Pix[2*plane+idx] // R
			v.rgba.Pix[o+1] = f.Pix[plane+idx] // G
			v.rgba.Pix[o+2] = f.Pix[idx]       // B
			v.rgba.Pix[o+3] = 0xff
		}
	}
	v.frame.WritePixels(v.rgba.Pix)
}
