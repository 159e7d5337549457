package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options describes the window.
type Options struct {
	Title      string
	Width      int
	Height     int
	TargetFPS  int
	Fullscreen bool
	// OnClose runs after the last frame, while the GL context still exists.
	OnClose func()
}

var skyColor = rl.NewColor(135, 190, 235, 255)

// Run opens the window and runs the main loop until it is closed. Each frame it calls update
// with the seconds elapsed since the previous frame, then clears the screen and calls draw.
// ESC belongs to nothing: the console uses the grave key, and the window closes via its button.
func Run(opts Options, update func(dt float64), draw func()) {
	w, h := int32(opts.Width), int32(opts.Height)
	if opts.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	}
	rl.InitWindow(w, h, opts.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(opts.TargetFPS))

	for !rl.WindowShouldClose() {
		update(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(skyColor)
		draw()
		rl.EndDrawing()
	}
	if opts.OnClose != nil {
		opts.OnClose()
	}
}
