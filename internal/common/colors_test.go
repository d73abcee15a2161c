package common

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSceneColorsOpaque(t *testing.T) {
	scene := map[string]color.RGBA{
		"sky":       SkyColor,
		"wall":      WallColor,
		"floor":     FloorColor,
		"target":    TargetColor,
		"eye":       TargetEyeColor,
		"gun":       GunColor,
		"barrel":    BarrelColor,
		"flash":     FlashColor,
		"crosshair": CrosshairColor,
	}

	for name, c := range scene {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, uint8(255), c.A, "scene colors are drawn without blending")
		})
	}
}

func TestSceneColorsDistinct(t *testing.T) {
	// The preprocessor collapses the scene to grayscale; the bands and
	// the target must stay separable afterwards. BT.601 luma per color:
	luma := func(c color.RGBA) int {
		return (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
	}

	wall := luma(WallColor)
	assert.NotEqual(t, wall, luma(TargetColor))
	assert.Greater(t, Abs(wall-luma(TargetColor)), 10,
		"target must stand out from the wall in grayscale")
	assert.Greater(t, Abs(luma(SkyColor)-wall), 10)
	assert.Greater(t, Abs(luma(FloorColor)-wall), 10)
}

func TestCrosshairVisibility(t *testing.T) {
	// The crosshair sits over the wall band at screen center.
	assert.Greater(t, int(CrosshairColor.G), int(WallColor.G)+50)
}

func TestHUDColors(t *testing.T) {
	assert.Equal(t, color.White, HUDTextColor)
	assert.Less(t, HUDBackgroundColor.A, uint8(255), "HUD backdrop is translucent")
}
