package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandermeer/shootrange/internal/common"
)

func TestFrameDimensions(t *testing.T) {
	e := newTestEngine(t)
	f := e.Frame()
	assert.Equal(t, ScreenWidth, f.W)
	assert.Equal(t, ScreenHeight, f.H)
	assert.Len(t, f.Pix, ScreenChannels*ScreenWidth*ScreenHeight)
}

func TestFrameChannelOrder(t *testing.T) {
	e := newTestEngine(t)
	f := e.Frame()

	// Top-left pixel is sky; the layout is channel-first BGR.
	assert.Equal(t, common.SkyColor.B, f.At(0, 0, 0))
	assert.Equal(t, common.SkyColor.G, f.At(1, 0, 0))
	assert.Equal(t, common.SkyColor.R, f.At(2, 0, 0))
}

func TestFrameBands(t *testing.T) {
	e := newTestEngine(t)
	f := e.Frame()

	// Far wall band, away from the target silhouette.
	assert.Equal(t, common.WallColor.B, f.At(0, horizonY+4, 0))
	assert.Equal(t, common.WallColor.R, f.At(2, horizonY+4, 0))

	// Floor starts below the wall.
	assert.Equal(t, common.FloorColor.B, f.At(0, wallBottomY, 0))
}

func TestCrosshairDrawn(t *testing.T) {
	e := newTestEngine(t)
	f := e.Frame()

	cx, cy := ScreenWidth/2, ScreenHeight/2
	c := common.CrosshairColor
	assert.Equal(t, c.G, f.At(1, cy, cx+6))
	assert.Equal(t, c.G, f.At(1, cy, cx-6))
	assert.Equal(t, c.G, f.At(1, cy+6, cx))
	// The center stays open.
	assert.NotEqual(t, c.G, f.At(1, cy, cx))
}

func TestTargetTracksPlayer(t *testing.T) {
	e := newTestEngine(t)
	e.targetX = e.playerX // target dead center

	f := e.Frame()
	cx := ScreenWidth / 2
	torsoY := wallBottomY - targetHeight/2
	assert.Equal(t, common.TargetColor.R, f.At(2, torsoY, cx-targetWidth/2+1))

	// Strafing right shifts the target left on screen.
	right := make([]bool, NumButtons)
	right[ButtonMoveRight] = true
	e.advance(right)
	f = e.Frame()
	assert.Equal(t, common.TargetColor.R, f.At(2, torsoY, cx-e.cfg.MoveSpeed))
	assert.NotEqual(t, common.TargetColor.R, f.At(2, torsoY, cx+targetWidth/2+1))
}

func TestDeadTargetNotDrawn(t *testing.T) {
	e := newTestEngine(t)
	e.targetX = e.playerX

	attack := make([]bool, NumButtons)
	attack[ButtonAttack] = true
	e.MakeAction(attack, 1)
	require.False(t, e.targetAlive)

	f := e.Frame()
	torsoY := wallBottomY - targetHeight/2
	assert.Equal(t, common.WallColor.R, f.At(2, torsoY, ScreenWidth/2-targetWidth/2+1))
}

func TestMuzzleFlash(t *testing.T) {
	e := newTestEngine(t)
	e.targetX = e.playerX + 100 // miss so the episode keeps going

	before := e.Frame()

	attack := make([]bool, NumButtons)
	attack[ButtonAttack] = true
	e.advance(attack)
	during := e.Frame()

	e.advance(nil)
	after := e.Frame()

	cx := ScreenWidth / 2
	flashY := ScreenHeight - gunHeight - barrelLen - 6
	assert.NotEqual(t, common.FlashColor.R, before.At(2, flashY, cx))
	assert.Equal(t, common.FlashColor.R, during.At(2, flashY, cx))
	assert.NotEqual(t, common.FlashColor.R, after.At(2, flashY, cx))
}
