package systems

import (
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

// clearTintTimer 受伤闪红结束的计时器名
const clearTintTimer = "clear_tint"

// DamageSystem 玩家受伤与失败结算
type DamageSystem struct {
	entityManager *ecs.EntityManager
	ctx           *game.PlayContext
	physics       *PhysicsSystem
	camera        *CameraSystem
	timers        *TimerSystem
	logger        *log.Logger
}

// NewDamageSystem 创建受伤系统并注册玩家与敌人的重叠回调
func NewDamageSystem(
	em *ecs.EntityManager,
	ctx *game.PlayContext,
	physics *PhysicsSystem,
	camera *CameraSystem,
	timers *TimerSystem,
) *DamageSystem {
	ds := &DamageSystem{
		entityManager: em,
		ctx:           ctx,
		physics:       physics,
		camera:        camera,
		timers:        timers,
		logger:        utils.Logger("DamageSystem"),
	}
	physics.AddOverlap(components.TagPlayer, components.TagEnemy, func(player, enemy ecs.EntityID) {
		ds.DamagePlayer()
	})
	return ds
}

func damageTint() *color.RGBA {
	c := utils.HexColor(config.DamageTintColor)
	return &c
}

// DamagePlayer 扣一次血。对局结束后不再受伤，生命值不会低于 0。
func (ds *DamageSystem) DamagePlayer() {
	// 同一步里先收集最后一枚金币时，胜利优先
	if ds.ctx.Finished() {
		return
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](ds.entityManager, ds.ctx.Player)
	if !ok {
		return
	}

	cfg := ds.ctx.Config
	health.CurrentHealth -= cfg.Player.DamageAmount
	if health.CurrentHealth < 0 {
		health.CurrentHealth = 0
	}

	sprite, _ := ecs.GetComponent[*components.SpriteComponent](ds.entityManager, ds.ctx.Player)
	if sprite != nil {
		sprite.Tint = damageTint()
	}
	ds.camera.Shake(cfg.Camera.DamageShakeMs/1000, cfg.Camera.DamageShakeIntensity)

	if health.CurrentHealth <= 0 {
		ds.gameOver(sprite)
		return
	}

	ds.timers.After(clearTintTimer, cfg.Player.DamageTintMs/1000, func() {
		if sprite != nil {
			sprite.Tint = nil
		}
	})
}

func (ds *DamageSystem) gameOver(sprite *components.SpriteComponent) {
	if !ds.ctx.MarkGameOver() {
		return
	}
	ds.logger.Info("player died")

	ds.physics.Pause()
	// 之前的闪红计时器不能清掉失败时的红色
	ds.timers.Cancel(clearTintTimer)
	if sprite != nil {
		sprite.Tint = damageTint()
	}
	setVisible(ds.entityManager, ds.ctx.HUD.GameOverText, true)
}
