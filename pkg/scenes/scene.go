// Package scenes 实现加载、主菜单和关卡三个场景
package scenes

import (
	"github.com/gonewx/coinquest/internal/particle"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 场景名
const (
	SceneLoad       = "load"
	SceneMenu       = "menu"
	ScenePlatformer = "platformer"
)

// Services 所有场景共享的服务，由 app 创建
type Services struct {
	Resources  *game.ResourceManager
	Scenes     *game.SceneManager
	Audio      *game.AudioManager
	Animations *game.AnimationRegistry
	Particles  *particle.Library
	Gameplay   *config.GameplayConfig
	Input      utils.InputSource

	// Seed 粒子和震屏的随机种子
	Seed int64
	// SkipMenu 加载完成后直接进入关卡
	SkipMenu bool
	// Quit 请求退出游戏，可为 nil
	Quit func()
}

// Register 把三个场景注册到场景管理器
func Register(svc *Services) {
	svc.Scenes.Register(SceneLoad, func() (game.Scene, error) {
		return NewLoadingScene(svc), nil
	})
	svc.Scenes.Register(SceneMenu, func() (game.Scene, error) {
		return NewMenuScene(svc)
	})
	svc.Scenes.Register(ScenePlatformer, func() (game.Scene, error) {
		return NewPlatformerScene(svc)
	})
}
