package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (loading screen, menu, platformer level).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被替换（切换或重启）前调用 Dispose 释放资源
type Disposable interface {
	Dispose()
}
