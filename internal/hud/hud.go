package hud

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rollcage/internal/sim"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the FPS text every N frames to reduce allocations.
	updateInterval = 30
)

var (
	panelColor = rl.NewColor(0, 0, 0, 120)
	textColor  = rl.RayWhite
	pauseColor = rl.Gold
)

// HUD draws the driving readout top-left and, when enabled, the FPS counter top-right.
type HUD struct {
	Visible    bool
	ShowFPS    bool
	frameCount uint32
	fpsText    string
}

// New returns a visible HUD with the FPS counter hidden.
func New() *HUD {
	return &HUD{Visible: true}
}

// Draw renders the overlay for f. Call after the 3D scene.
func (h *HUD) Draw(f sim.Frame) {
	if !h.Visible {
		return
	}
	lines := f.Readout()
	width := int32(0)
	for _, l := range lines {
		if w := rl.MeasureText(l, fontSize); w > width {
			width = w
		}
	}
	rl.DrawRectangle(padding/2, padding/2, width+padding, int32(len(lines)*lineHeight+padding), panelColor)
	for i, l := range lines {
		c := textColor
		if f.Paused && i == len(lines)-1 {
			c = pauseColor
		}
		rl.DrawText(l, padding, int32(padding+i*lineHeight), fontSize, c)
	}

	if !h.ShowFPS {
		return
	}
	h.frameCount++
	if h.fpsText == "" || h.frameCount%updateInterval == 0 {
		h.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	w := rl.MeasureText(h.fpsText, fontSize)
	rl.DrawText(h.fpsText, int32(rl.GetScreenWidth())-w-padding, padding, fontSize, rl.Green)
}
