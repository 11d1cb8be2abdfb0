package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gonewx/coinquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数，每次启动场景都会得到一个全新实例
type SceneFactory func() (Scene, error)

// SceneManager 按名字注册场景，同一时间只有一个场景处于活动状态。
//
// Start/Restart 只记录切换请求，真正的切换发生在下一次 Update 开头，
// 这样场景可以在自己的 Update 里安全地请求切换。
type SceneManager struct {
	factories   map[string]SceneFactory
	current     Scene
	currentName string
	pending     string
	logger      *log.Logger
}

// NewSceneManager creates an empty SceneManager.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[string]SceneFactory),
		logger:    utils.Logger("SceneManager"),
	}
}

// Register 注册场景工厂，同名覆盖
func (sm *SceneManager) Register(name string, factory SceneFactory) {
	sm.factories[name] = factory
}

// Start 请求切换到指定场景
func (sm *SceneManager) Start(name string) error {
	if _, ok := sm.factories[name]; !ok {
		return fmt.Errorf("scene %q is not registered", name)
	}
	sm.pending = name
	return nil
}

// Restart 请求以全新实例重启当前场景
func (sm *SceneManager) Restart() {
	if sm.currentName != "" {
		sm.pending = sm.currentName
	}
}

// Current 返回当前活动场景，可能为 nil
func (sm *SceneManager) Current() Scene {
	return sm.current
}

// CurrentName 返回当前场景名
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

func (sm *SceneManager) applyPending() {
	if sm.pending == "" {
		return
	}
	name := sm.pending
	sm.pending = ""

	scene, err := sm.factories[name]()
	if err != nil {
		sm.logger.Error("failed to create scene", "scene", name, "err", err)
		return
	}

	if d, ok := sm.current.(Disposable); ok {
		d.Dispose()
	}
	sm.current = scene
	sm.currentName = name
	sm.logger.Info("scene started", "scene", name)
}

// Update applies a pending switch and updates the active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	sm.applyPending()
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

// Draw renders the active scene. If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
