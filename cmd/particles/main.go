// Package main provides a particle effect viewer for the emitter configs in
// data/particles.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	-assets <dir>     Directory with kenny-particles.json (default: assets)
//	-effect <name>    Start with a specific emitter (e.g. -effect=landing)
//	-verbose          Enable debug logging
//
// Controls:
//
//	Mouse Click       - Burst the current emitter at the cursor
//	Left/Right Arrow  - Switch to previous/next emitter
//	Space             - Toggle flowing emission at screen centre
//	R                 - Remove all particles
//	Q/Escape          - Quit
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/coinquest/internal/particle"
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/systems"
	"github.com/gonewx/coinquest/pkg/utils"
)

const (
	screenWidth  = 1024
	screenHeight = 768
	burstSize    = 10
)

var (
	assetsFlag  = flag.String("assets", "assets", "Directory containing particle textures")
	effectFlag  = flag.String("effect", "", "Start with specific emitter name")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// particleViewer implements ebiten.Game for the particle viewer
type particleViewer struct {
	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	renderSystem   *systems.RenderSystem
	library        *particle.Library
	logger         *log.Logger

	names        []string
	currentIndex int
	emitter      ecs.EntityID
}

func newParticleViewer() (*particleViewer, error) {
	utils.SetupLogger(os.Stderr, *verboseFlag)

	data := os.DirFS(".")
	lib, err := particle.LoadDir(data, config.ParticlesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load particle configs: %w", err)
	}
	names := lib.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("no emitters found in %s", config.ParticlesDir)
	}

	// 无音频上下文，音效不会排队
	rm := game.NewResourceManager(os.DirFS(*assetsFlag), data, nil)
	if err := rm.LoadResourceConfig(config.ResourcesConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load resource config: %w", err)
	}
	rm.LoadAll()

	em := ecs.NewEntityManager()
	v := &particleViewer{
		entityManager:  em,
		particleSystem: systems.NewParticleSystem(em, 1),
		renderSystem:   systems.NewRenderSystem(em, rm),
		library:        lib,
		logger:         utils.Logger("ParticleViewer"),
		names:          names,
	}
	for i, name := range names {
		if name == *effectFlag {
			v.currentIndex = i
		}
	}
	v.selectEmitter(v.currentIndex)
	return v, nil
}

// selectEmitter 销毁当前发射器并在屏幕中心创建新的
func (v *particleViewer) selectEmitter(i int) {
	if v.emitter != ecs.InvalidEntity {
		v.clearParticles()
		v.entityManager.DestroyEntity(v.emitter)
	}
	v.currentIndex = (i + len(v.names)) % len(v.names)
	cfg, err := v.library.Get(v.names[v.currentIndex])
	if err != nil {
		v.logger.Error("failed to select emitter", "err", err)
		return
	}
	v.emitter = v.particleSystem.CreateEmitter(cfg, screenWidth/2, screenHeight/2)
	v.logger.Info("emitter selected", "name", cfg.Name, "frequency", cfg.Frequency, "quantity", cfg.Quantity)
}

func (v *particleViewer) clearParticles() {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](v.entityManager) {
		v.entityManager.DestroyEntity(id)
	}
}

func (v *particleViewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.selectEmitter(v.currentIndex - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.selectEmitter(v.currentIndex + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if v.particleSystem.IsEmitting(v.emitter) {
			v.particleSystem.Stop(v.emitter)
		} else {
			v.particleSystem.Start(v.emitter)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.clearParticles()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		v.particleSystem.Explode(v.emitter, burstSize, float64(x), float64(y))
	}

	v.particleSystem.Update(1.0 / config.TickRate)
	v.entityManager.RemoveMarkedEntities()
	return nil
}

func (v *particleViewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x00, G: 0x00, B: 0x33, A: 0xff})
	v.renderSystem.Draw(screen, nil)

	status := fmt.Sprintf("[%d/%d] %s  emitting=%v  particles=%d\n<-/-> switch  click burst  space toggle  R clear",
		v.currentIndex+1, len(v.names), v.names[v.currentIndex],
		v.particleSystem.IsEmitting(v.emitter), v.particleSystem.ParticleCount(v.emitter))
	ebitenutil.DebugPrint(screen, status)
}

func (v *particleViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	viewer, err := newParticleViewer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Particle Viewer")
	if err := ebiten.RunGame(viewer); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
