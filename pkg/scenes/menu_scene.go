package scenes

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/entities"
	"github.com/gonewx/coinquest/pkg/systems"
	"github.com/gonewx/coinquest/pkg/utils"
)

// MenuState 主菜单状态
type MenuState int

const (
	MenuIdle MenuState = iota
	MenuFading
	MenuTransitioned
)

const menuStartTimer = "menu_start"

// MenuScene 主菜单：背景、魔法粒子、呼吸标题、故事文字和开始按钮
//
// 点击开始后镜头淡出，同时启动延迟计时器，计时结束进入关卡。
// 淡出期间的点击被忽略。
type MenuScene struct {
	svc    *Services
	logger *log.Logger

	entityManager *ecs.EntityManager
	camera        *systems.CameraSystem
	buttons       *systems.ButtonSystem
	tweens        *systems.TweenSystem
	timers        *systems.TimerSystem
	particles     *systems.ParticleSystem
	renderSystem  *systems.RenderSystem

	playButton entities.MenuButton
	state      MenuState
}

// NewMenuScene 创建主菜单
func NewMenuScene(svc *Services) (*MenuScene, error) {
	em := ecs.NewEntityManager()
	s := &MenuScene{
		svc:           svc,
		logger:        utils.Logger("MenuScene"),
		entityManager: em,
		camera:        systems.NewCameraSystem(em, config.ScreenWidth, config.ScreenHeight, svc.Seed),
		buttons:       systems.NewButtonSystem(em, svc.Input),
		tweens:        systems.NewTweenSystem(em),
		timers:        systems.NewTimerSystem(em),
		particles:     systems.NewParticleSystem(em, svc.Seed),
		renderSystem:  systems.NewRenderSystem(em, svc.Resources),
	}

	w, h := float64(config.ScreenWidth), float64(config.ScreenHeight)

	entities.NewRectEntity(em, 0, 0, w, h, entities.RectStyle{
		Color: utils.HexColor(config.MenuBackgroundColor),
	})

	if _, err := entities.NewEmitter(s.particles, svc.Particles, entities.EmitterMenuMagic, 0, 0); err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}

	title := entities.NewTextEntity(em, w/2, h*config.MenuTitleY, config.MenuTitleText, entities.TextStyle{
		FontSize: config.MenuTitleFontSize,
		Bold:     true,
		Centered: true,
		Depth:    2,
	})
	s.tweens.Add(title, components.Tween{
		Property: components.TweenAlpha,
		From:     1,
		To:       config.MenuTitlePulseAlpha,
		Duration: config.MenuTitlePulseMs / 1000,
		Easing:   "Sine.easeInOut",
		Yoyo:     true,
		Repeat:   -1,
	})

	entities.NewTextEntity(em, w/2, h*config.MenuStoryY, config.MenuStoryText, entities.TextStyle{
		FontSize: config.MenuStoryFontSize,
		Centered: true,
		Depth:    2,
	})

	s.playButton = entities.NewMenuButton(em, w/2, h*config.MenuButtonY, config.MenuButtonLabel)
	if button, ok := ecs.GetComponent[*components.ButtonComponent](em, s.playButton.Button); ok {
		button.OnOver = s.onPointerOver
		button.OnOut = s.onPointerOut
		button.OnDown = s.onPointerDown
	}
	return s, nil
}

// State 当前菜单状态
func (s *MenuScene) State() MenuState {
	return s.state
}

func (s *MenuScene) onPointerOver() {
	s.setButtonLook(config.MenuButtonHoverColor, config.MenuGlowHoverAlpha)
	s.svc.Audio.PlaySound(systems.SoundHover, config.MenuHoverVolume)
	s.scaleButton(config.MenuHoverScale)
}

func (s *MenuScene) onPointerOut() {
	s.setButtonLook(config.MenuButtonColor, config.MenuGlowAlpha)
	s.scaleButton(1)
}

func (s *MenuScene) onPointerDown() {
	if s.state != MenuIdle {
		return
	}
	s.state = MenuFading
	s.logger.Debug("play clicked")

	s.svc.Audio.PlaySound(systems.SoundClick, config.MenuClickVolume)
	s.camera.FadeOut(config.MenuFadeMs / 1000)
	s.timers.After(menuStartTimer, config.MenuStartDelayMs/1000, func() {
		s.state = MenuTransitioned
		if err := s.svc.Scenes.Start(ScenePlatformer); err != nil {
			s.logger.Error("failed to start level", "err", err)
		}
	})
}

func (s *MenuScene) setButtonLook(fill uint32, glowAlpha float64) {
	if rect, ok := ecs.GetComponent[*components.RectComponent](s.entityManager, s.playButton.Button); ok {
		rect.Color = utils.HexColor(fill)
	}
	if glow, ok := ecs.GetComponent[*components.RectComponent](s.entityManager, s.playButton.Glow); ok {
		glow.Alpha = glowAlpha
	}
}

// scaleButton 按钮和文字一起缩放
func (s *MenuScene) scaleButton(to float64) {
	d := config.MenuHoverTweenMs / 1000
	s.tweens.To(s.playButton.Button, components.TweenScale, to, d, "linear")
	s.tweens.To(s.playButton.Label, components.TweenScale, to, d, "linear")
}

// Update 更新菜单
func (s *MenuScene) Update(deltaTime float64) {
	if s.svc.Input.IsKeyJustPressed(utils.KeyQuit) && s.svc.Quit != nil {
		s.svc.Quit()
		return
	}

	if s.state == MenuIdle {
		s.buttons.Update(deltaTime)
	}
	s.tweens.Update(deltaTime)
	s.timers.Update(deltaTime)
	s.particles.Update(deltaTime)
	s.camera.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制菜单
func (s *MenuScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen, s.camera.Camera())
}
