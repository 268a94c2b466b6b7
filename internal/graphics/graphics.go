package graphics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options configures the window.
type Options struct {
	Width     int
	Height    int
	Title     string
	TargetFPS int
}

// Run opens the window, which creates the OpenGL context, and runs the main loop on the
// calling goroutine (lock it to its OS thread first). setup is called once after the context
// exists and before the first frame; an error aborts before any frame is drawn. Each frame it
// calls update with the frame time in seconds, then clears the screen and calls draw. teardown
// runs after the loop while the context is still current.
func Run(opts Options, setup func() error, update func(dt float32), draw func(), teardown func()) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("graphics: window not ready")
	}
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(opts.TargetFPS))
	}

	if teardown != nil {
		defer teardown()
	}
	if setup != nil {
		if err := setup(); err != nil {
			return err
		}
	}

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 32, 255))
		draw()
		rl.EndDrawing()
	}
	return nil
}

// Aspect returns the current screen width/height.
func Aspect() float32 {
	h := rl.GetScreenHeight()
	if h == 0 {
		return 1
	}
	return float32(rl.GetScreenWidth()) / float32(h)
}
