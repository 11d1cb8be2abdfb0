package systems

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

// CoinText 金币计数文字
func CoinText(collected, total int) string {
	return fmt.Sprintf("Coins: %d/%d", collected, total)
}

// CoinSystem 金币收集与胜利结算
//
// 通过物理系统的重叠回调驱动，本身没有每帧逻辑。
type CoinSystem struct {
	entityManager *ecs.EntityManager
	ctx           *game.PlayContext
	physics       *PhysicsSystem
	camera        *CameraSystem
	particles     *ParticleSystem
	sound         SoundPlayer
	logger        *log.Logger
}

// NewCoinSystem 创建金币系统并注册玩家与金币的重叠回调
func NewCoinSystem(
	em *ecs.EntityManager,
	ctx *game.PlayContext,
	physics *PhysicsSystem,
	camera *CameraSystem,
	particles *ParticleSystem,
	sound SoundPlayer,
) *CoinSystem {
	cs := &CoinSystem{
		entityManager: em,
		ctx:           ctx,
		physics:       physics,
		camera:        camera,
		particles:     particles,
		sound:         sound,
		logger:        utils.Logger("CoinSystem"),
	}
	physics.AddOverlap(components.TagPlayer, components.TagCoin, cs.handleOverlap)
	return cs
}

func (cs *CoinSystem) handleOverlap(player, coinID ecs.EntityID) {
	coin, ok := ecs.GetComponent[*components.CoinComponent](cs.entityManager, coinID)
	if !ok || coin.Collected {
		return
	}
	cs.Collect(coinID)
}

// Collect 收集一枚金币，返回是否因此获胜
func (cs *CoinSystem) Collect(coinID ecs.EntityID) bool {
	coin, ok := ecs.GetComponent[*components.CoinComponent](cs.entityManager, coinID)
	if !ok || coin.Collected {
		return false
	}

	// 移除金币前后保持镜头位置不变
	cam := cs.camera.Camera()
	scrollX, scrollY := cam.ScrollX, cam.ScrollY

	cs.sound.PlaySound(SoundCoin, config.CoinVolume)
	coin.Collected = true
	cs.physics.RemoveBody(coinID)
	cs.entityManager.DestroyEntity(coinID)

	won := cs.ctx.AddCoin()
	if text, ok := ecs.GetComponent[*components.TextComponent](cs.entityManager, cs.ctx.HUD.CoinText); ok {
		text.Text = CoinText(cs.ctx.CoinsCollected, cs.ctx.TotalCoins)
	}
	cam.ScrollX, cam.ScrollY = scrollX, scrollY

	cs.logger.Debug("coin collected", "collected", cs.ctx.CoinsCollected, "total", cs.ctx.TotalCoins)

	if won {
		cs.showWinScreen()
	}
	return won
}

func (cs *CoinSystem) showWinScreen() {
	cs.logger.Info("all coins collected")
	cs.sound.PlaySound(SoundVictory, config.VictoryVolume)

	setVisible(cs.entityManager, cs.ctx.HUD.WinOverlay, true)
	setVisible(cs.entityManager, cs.ctx.HUD.WinText, true)
	setVisible(cs.entityManager, cs.ctx.HUD.RestartText, true)

	for _, id := range cs.ctx.Emitters.All() {
		cs.particles.Stop(id)
	}

	cs.physics.Pause()

	if body, ok := ecs.GetComponent[*components.BodyComponent](cs.entityManager, cs.ctx.Player); ok {
		body.VelocityX, body.VelocityY = 0, 0
	}
}

// setVisible 切换精灵、文字或矩形的可见性
func setVisible(em *ecs.EntityManager, id ecs.EntityID, visible bool) {
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id); ok {
		sprite.Visible = visible
	}
	if text, ok := ecs.GetComponent[*components.TextComponent](em, id); ok {
		text.Visible = visible
	}
	if rect, ok := ecs.GetComponent[*components.RectComponent](em, id); ok {
		rect.Visible = visible
	}
}
