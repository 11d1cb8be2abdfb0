package entities

import (
	"image/color"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
)

// 角色图集
const (
	CharacterTexture = "platformer_characters"
	PlayerFrame      = "tile_0000.png"

	// characterSize 图集缺失时角色的默认尺寸（tilemap-characters-packed 为 24x24）
	characterSize = 24
)

var (
	playerPlaceholder = color.RGBA{R: 0x3c, G: 0x8d, B: 0xff, A: 255}
	enemyPlaceholder  = color.RGBA{R: 0xd0, G: 0x3a, B: 0x3a, A: 255}
)

// frameSize 从资源管理器取帧尺寸，取不到时返回 fallback
func frameSize(rm *game.ResourceManager, texture, frame string, fallback float64) (float64, float64) {
	if rm != nil {
		if w, h, ok := rm.FrameSize(texture, frame); ok {
			return float64(w), float64(h)
		}
	}
	return fallback, fallback
}

// NewPlayerEntity 创建玩家实体
//
// 碰撞体宽度为精灵宽度乘以 BodyWidthScale，高度与精灵相同；
// 生命值、跳跃次数取自配置。rm 可为 nil。
func NewPlayerEntity(em *ecs.EntityManager, rm *game.ResourceManager, cfg config.PlayerConfig, x, y float64) ecs.EntityID {
	w, h := frameSize(rm, CharacterTexture, PlayerFrame, characterSize)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.BodyComponent{
		Width:              w * cfg.BodyWidthScale,
		Height:             h,
		MaxVelocityX:       cfg.MaxVelocity.X,
		MaxVelocityY:       cfg.MaxVelocity.Y,
		AllowGravity:       true,
		CollideWorldBounds: true,
		CollideTiles:       true,
	})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Texture:      CharacterTexture,
		Frame:        PlayerFrame,
		Width:        w,
		Height:       h,
		Visible:      true,
		Alpha:        1,
		ScaleX:       1,
		ScaleY:       1,
		Depth:        config.DepthPlayer,
		ScrollFactor: 1,
		Placeholder:  playerPlaceholder,
	})
	ecs.AddComponent(em, id, &components.AnimationComponent{})
	ecs.AddComponent(em, id, &components.PlayerComponent{
		JumpsLeft:   cfg.MaxJumps,
		WasOnGround: true,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: cfg.MaxHealth,
		MaxHealth:     cfg.MaxHealth,
	})
	return id
}

// NewEnemyEntity 创建巡逻敌人，初始向右移动
func NewEnemyEntity(em *ecs.EntityManager, rm *game.ResourceManager, cfg config.EnemyConfig, x, y float64) ecs.EntityID {
	w, h := frameSize(rm, CharacterTexture, cfg.Frame, characterSize)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.BodyComponent{
		Width:              w,
		Height:             h,
		VelocityX:          cfg.Speed,
		AllowGravity:       true,
		CollideWorldBounds: true,
		CollideTiles:       true,
	})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Texture:      CharacterTexture,
		Frame:        cfg.Frame,
		Width:        w,
		Height:       h,
		Visible:      true,
		Alpha:        1,
		ScaleX:       1,
		ScaleY:       1,
		Depth:        config.DepthEnemies,
		ScrollFactor: 1,
		Placeholder:  enemyPlaceholder,
	})
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Direction:      1,
		StartX:         x,
		PatrolDistance: cfg.PatrolDistance,
		Speed:          cfg.Speed,
	})
	return id
}
