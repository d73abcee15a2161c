package common

import (
	"image/color"
)

// Scene colors used by the range renderer. Kept in one place so the
// viewer HUD can match the palette.
var (
	SkyColor       = color.RGBA{40, 60, 140, 255}
	WallColor      = color.RGBA{105, 100, 95, 255}
	FloorColor     = color.RGBA{90, 70, 50, 255}
	TargetColor    = color.RGBA{170, 40, 30, 255}
	TargetEyeColor = color.RGBA{250, 230, 60, 255}
	GunColor       = color.RGBA{55, 55, 60, 255}
	BarrelColor    = color.RGBA{30, 30, 35, 255}
	FlashColor     = color.RGBA{255, 220, 90, 255}
	CrosshairColor = color.RGBA{70, 230, 70, 255}
)

// HUD colors
var (
	HUDTextColor       = color.White
	HUDBackgroundColor = color.RGBA{0, 0, 0, 180}
)
