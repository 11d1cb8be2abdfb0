// Package app 提供游戏应用的核心包装器
//
// 该包把启动流程从 main 包提取出来：创建服务、注册场景、驱动帧循环。
package app

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/coinquest/internal/particle"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/scenes"
	"github.com/gonewx/coinquest/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用 DEBUG 日志
	Verbose bool
	// LogOutput 日志输出，为 nil 时写 stderr
	LogOutput io.Writer

	// Assets 图片和音效所在的文件系统
	Assets fs.FS
	// Data 嵌入的关卡、清单和调优配置
	Data fs.FS
	// LevelFile 替换内置关卡的 .tmj 文件路径，为空使用内置关卡
	LevelFile string

	// SkipMenu 加载完成后直接进入关卡
	SkipMenu bool
	// SaveSettings 用 gdata 持久化设置
	SaveSettings bool
	// Mute 不创建音频上下文
	Mute bool
	// Seed 粒子和震屏的随机种子
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	input        utils.InputSource
	logger       *log.Logger

	quit                     bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 嵌入配置解析失败直接返回错误；单个资源加载失败只在加载阶段记录。
func NewApp(cfg Config) (*App, error) {
	utils.SetupLogger(cfg.LogOutput, cfg.Verbose)
	logger := utils.Logger("App")

	if cfg.Data == nil {
		return nil, fmt.Errorf("data filesystem is required")
	}
	if cfg.Assets == nil {
		cfg.Assets = os.DirFS(".")
	}

	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(config.AudioSampleRate)
	}

	gameplay, err := config.LoadGameplayConfig(cfg.Data, config.GameplayConfigPath)
	if err != nil {
		return nil, fmt.Errorf("gameplay config: %w", err)
	}

	resourceManager := game.NewResourceManager(cfg.Assets, cfg.Data, audioContext)
	if cfg.LevelFile != "" {
		dir, file := filepath.Split(cfg.LevelFile)
		if dir == "" {
			dir = "."
		}
		resourceManager.OverrideTilemap(gameplay.Level.Map, os.DirFS(dir), filepath.ToSlash(file))
		logger.Info("level override", "file", cfg.LevelFile)
	}
	if err := resourceManager.LoadResourceConfig(config.ResourcesConfigPath); err != nil {
		return nil, fmt.Errorf("resource config: %w", err)
	}

	particles, err := particle.LoadDir(cfg.Data, config.ParticlesDir)
	if err != nil {
		return nil, fmt.Errorf("particle configs: %w", err)
	}
	logger.Debug("particle configs loaded", "emitters", particles.Names())

	var store *gdata.Manager
	if cfg.SaveSettings {
		store, err = gdata.Open(gdata.Config{AppName: "coinquest"})
		if err != nil {
			logger.Warn("settings storage unavailable, running memory-only", "err", err)
			store = nil
		}
	}
	settings := game.NewSettingsManager(store)

	sceneManager := game.NewSceneManager()
	a := &App{
		sceneManager: sceneManager,
		settings:     settings,
		input:        utils.EbitenInput{},
		logger:       logger,
	}

	scenes.Register(&scenes.Services{
		Resources:  resourceManager,
		Scenes:     sceneManager,
		Audio:      game.NewAudioManager(resourceManager, settings),
		Animations: game.NewAnimationRegistry(),
		Particles:  particles,
		Gameplay:   gameplay,
		Input:      a.input,
		Seed:       cfg.Seed,
		SkipMenu:   cfg.SkipMenu,
		Quit:       a.Quit,
	})
	if err := sceneManager.Start(scenes.SceneLoad); err != nil {
		return nil, err
	}

	logger.Info("app ready",
		"assets", resourceManager.TotalAssets(),
		"muted", cfg.Mute,
		"persistentSettings", settings.Persistent())
	return a, nil
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Quit 请求在下一帧结束游戏循环
func (a *App) Quit() {
	a.quit = true
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（每秒 config.TickRate 次）
func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if a.input.IsKeyJustPressed(utils.KeyFullscreen) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / config.TickRate)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	a.settings.SetFullscreen(fullscreen)
	if a.settings.Persistent() {
		if err := a.settings.Save(); err != nil {
			a.logger.Warn("failed to save settings", "err", err)
		}
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	// 像素风素材用最近邻
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回固定的逻辑画布尺寸，缩放由 Ebitengine 处理
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}
