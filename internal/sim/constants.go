package sim

// Screen geometry. The engine always renders at this fixed resolution;
// callers that want something smaller resize downstream.
const (
	ScreenWidth    = 320
	ScreenHeight   = 240
	ScreenChannels = 3
)

// Button indices. The control set is fixed per scenario class: strafe
// left, strafe right, fire.
const (
	ButtonMoveLeft = iota
	ButtonMoveRight
	ButtonAttack

	NumButtons
)

// Scene layout rows, in screen pixels.
const (
	horizonY    = 96  // bottom of the sky band
	wallBottomY = 168 // bottom of the far wall, where the floor starts
)
