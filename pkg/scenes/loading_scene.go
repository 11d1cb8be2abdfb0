package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coinquest/internal/atlas"
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/entities"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/systems"
	"github.com/gonewx/coinquest/pkg/utils"
)

// LoadingScene represents the loading screen shown when the game starts.
// It loads one queued asset per tick and draws a progress bar between them.
// When the queue is done it registers the character clips and starts the menu.
type LoadingScene struct {
	svc    *Services
	logger *log.Logger

	entityManager *ecs.EntityManager
	renderSystem  *systems.RenderSystem
	barFill       ecs.EntityID
	label         ecs.EntityID

	progress float64
	failed   int
	done     bool
}

// NewLoadingScene creates a new loading scene.
func NewLoadingScene(svc *Services) *LoadingScene {
	s := &LoadingScene{
		svc:           svc,
		logger:        utils.Logger("LoadingScene"),
		entityManager: ecs.NewEntityManager(),
	}
	s.renderSystem = systems.NewRenderSystem(s.entityManager, svc.Resources)

	cx := float64(config.ScreenWidth) / 2
	barLeft := cx - config.LoadingBarWidth/2
	entities.NewRectEntity(s.entityManager, cx, config.LoadingBarY, config.LoadingBarWidth+4, config.LoadingBarHeight+4, entities.RectStyle{
		Color:   color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 255},
		OriginX: 0.5,
		OriginY: 0.5,
	})
	s.barFill = entities.NewRectEntity(s.entityManager, barLeft, config.LoadingBarY, 0, config.LoadingBarHeight, entities.RectStyle{
		Color:   color.RGBA{R: 0x00, G: 0xcc, B: 0x00, A: 255},
		OriginY: 0.5,
		Depth:   1,
	})
	s.label = entities.NewTextEntity(s.entityManager, cx, config.LoadingBarY+config.LoadingTextOffsetY, loadingText(0), entities.TextStyle{
		FontSize: config.LoadingTextFontSize,
		Centered: true,
	})

	svc.Resources.SetLoadEvents(game.LoadEvents{
		OnProgress: func(p float64) {
			s.logger.Debug(loadingText(p))
		},
		// 单个资源失败已由 ResourceManager 记录，这里只计数
		OnFileError: func(src string, err error) {
			s.failed++
		},
		OnComplete: func() {
			s.logger.Debug("loading finished", "failed", s.failed)
		},
	})
	return s
}

// FailedAssets 加载失败被跳过的资源数
func (s *LoadingScene) FailedAssets() int {
	return s.failed
}

// loadingText 进度提示文字
func loadingText(progress float64) string {
	return fmt.Sprintf("Loading: %d%%", int(math.Round(progress*100)))
}

// Update loads the next assets and switches scene once everything is processed.
func (s *LoadingScene) Update(deltaTime float64) {
	if s.done {
		return
	}

	complete := false
	for i := 0; i < config.LoadingAssetsPerFrame && !complete; i++ {
		complete = s.svc.Resources.LoadNext()
	}
	s.progress = s.svc.Resources.Progress()

	if fill, ok := ecs.GetComponent[*components.RectComponent](s.entityManager, s.barFill); ok {
		fill.Width = config.LoadingBarWidth * s.progress
	}
	if label, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, s.label); ok {
		label.Text = loadingText(s.progress)
	}

	if !complete {
		return
	}
	s.done = true

	s.logger.Debug("Creating animations...")
	if err := RegisterClips(s.svc.Animations); err != nil {
		s.logger.Error("failed to register animations", "err", err)
	}

	next := SceneMenu
	if s.svc.SkipMenu {
		next = ScenePlatformer
	}
	s.logger.Debug("Starting scene", "scene", next)
	if err := s.svc.Scenes.Start(next); err != nil {
		s.logger.Error("failed to start scene", "scene", next, "err", err)
	}
}

// Draw renders the progress bar.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	s.renderSystem.Draw(screen, nil)
}

// RegisterClips 注册角色动画：walk、idle、jump。已存在的 key 跳过。
func RegisterClips(reg *game.AnimationRegistry) error {
	clips := []game.Clip{
		{
			Key:       systems.ClipWalk,
			Texture:   entities.CharacterTexture,
			Frames:    atlas.GenerateFrameNames("tile_", 0, 1, ".png", 4),
			FrameRate: 15,
			Repeat:    -1,
		},
		{
			Key:     systems.ClipIdle,
			Texture: entities.CharacterTexture,
			Frames:  []string{"tile_0000.png"},
			Repeat:  -1,
		},
		{
			Key:     systems.ClipJump,
			Texture: entities.CharacterTexture,
			Frames:  []string{"tile_0001.png"},
		},
	}
	for _, clip := range clips {
		if _, exists := reg.Get(clip.Key); exists {
			continue
		}
		if err := reg.Create(clip); err != nil {
			return fmt.Errorf("failed to create clip %q: %w", clip.Key, err)
		}
	}
	return nil
}
