package scenes

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coinquest/internal/tiled"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/systems"
	"github.com/gonewx/coinquest/pkg/utils"
)

// PlatformerScene 关卡场景
//
// 每一帧的顺序：
//  1. 物理步（含金币、敌人重叠回调）
//  2. 玩家控制、镜头控制、HUD、敌人巡逻
//  3. R 键重启
//  4. 计时器、补间、粒子、动画、镜头
//
// 重启时整个场景连同 EntityManager 一起丢弃并重新创建。
type PlatformerScene struct {
	svc    *Services
	logger *log.Logger

	entityManager *ecs.EntityManager
	ctx           *game.PlayContext
	tilemap       *tiled.Map
	ground        *tiled.TileLayer

	physics          *systems.PhysicsSystem
	controller       *systems.PlayerControllerSystem
	cameraController *systems.CameraControllerSystem
	hud              *systems.HUDSystem
	patrol           *systems.EnemyPatrolSystem
	coins            *systems.CoinSystem
	damage           *systems.DamageSystem
	timers           *systems.TimerSystem
	tweens           *systems.TweenSystem
	particles        *systems.ParticleSystem
	animations       *systems.AnimationSystem
	camera           *systems.CameraSystem
	renderSystem     *systems.RenderSystem
}

// Context 当前对局状态
func (s *PlatformerScene) Context() *game.PlayContext {
	return s.ctx
}

// EntityManager 场景的实体管理器
func (s *PlatformerScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Update 推进一帧
func (s *PlatformerScene) Update(deltaTime float64) {
	s.physics.Update(deltaTime)

	s.controller.Update(deltaTime)
	s.cameraController.Update(deltaTime)
	s.hud.Update(deltaTime)
	s.patrol.Update(deltaTime)

	if s.svc.Input.IsKeyJustPressed(utils.KeyRestart) {
		s.logger.Info("restart requested")
		s.svc.Scenes.Restart()
	}

	s.timers.Update(deltaTime)
	s.tweens.Update(deltaTime)
	s.particles.Update(deltaTime)
	s.animations.Update(deltaTime)
	s.camera.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制关卡
func (s *PlatformerScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	s.renderSystem.Draw(screen, s.camera.Camera())
}
