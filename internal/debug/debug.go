package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"render-core/internal/resource"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds runtime debugging overlays. All overlays are off by default.
type Debug struct {
	ShowFPS   bool
	ShowStats bool
	ShowMem   bool

	cache      *resource.Cache
	frameCount uint32
	fpsText    string
	statsText  []string
	memText    string
	memStats   runtime.MemStats
}

// New returns a Debug system with all overlays hidden. cache may be nil, which hides stats.
func New(cache *resource.Cache) *Debug {
	return &Debug{cache: cache}
}

// StatsLines formats cache statistics, one line per resource type.
func StatsLines(s resource.Stats) []string {
	return []string{
		fmt.Sprintf("Meshes: %d (%d verts, %d tris)", s.Meshes, s.Vertices, s.Indices/3),
		fmt.Sprintf("Materials: %d", s.Materials),
		fmt.Sprintf("Textures: %d (%d texels)", s.Textures, s.Texels),
	}
}

// Draw renders any enabled overlays at the top-right in green. Call after the scene in the
// draw loop. Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 || d.frameCount == 1

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	line := func(text string) {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowFPS {
		if update || d.fpsText == "" {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		line(d.fpsText)
	}
	if d.ShowStats && d.cache != nil {
		if update || d.statsText == nil {
			d.statsText = StatsLines(d.cache.Stats())
		}
		for _, s := range d.statsText {
			line(s)
		}
	}
	if d.ShowMem {
		if update || d.memText == "" {
			runtime.ReadMemStats(&d.memStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		line(d.memText)
	}
}
