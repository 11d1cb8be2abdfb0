package game

import (
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
)

// CameraState 垂直回正状态
type CameraState struct {
	IsTransitioning bool
	TargetY         float64
	PreviousPlayerY float64
}

// PlayerEmitters 跟随玩家的四个粒子发射器
type PlayerEmitters struct {
	WallSlide ecs.EntityID
	Running   ecs.EntityID
	Jumping   ecs.EntityID
	Landing   ecs.EntityID
}

// All 返回全部发射器实体
func (e PlayerEmitters) All() []ecs.EntityID {
	return []ecs.EntityID{e.WallSlide, e.Running, e.Jumping, e.Landing}
}

// HUDEntities HUD 中需要被系统更新的实体
type HUDEntities struct {
	CoinText      ecs.EntityID
	HealthBarBG   ecs.EntityID
	HealthBarFill ecs.EntityID
	Hearts        []ecs.EntityID
	WinOverlay    ecs.EntityID
	WinText       ecs.EntityID
	RestartText   ecs.EntityID
	GameOverText  ecs.EntityID
}

// PlayContext 一局游戏的共享状态
//
// 由关卡场景创建并传给所有玩法系统；重启时随场景一起丢弃。
type PlayContext struct {
	Config *config.GameplayConfig

	Player       ecs.EntityID
	CameraEntity ecs.EntityID
	Emitters     PlayerEmitters
	HUD          HUDEntities

	CoinsCollected int
	TotalCoins     int
	Won            bool
	GameOver       bool

	// Movement 玩家控制器每帧写入的移动状态
	Movement    components.MovementState
	CameraState CameraState
}

// NewPlayContext 创建空的对局状态
func NewPlayContext(cfg *config.GameplayConfig) *PlayContext {
	return &PlayContext{
		Config:       cfg,
		Player:       ecs.InvalidEntity,
		CameraEntity: ecs.InvalidEntity,
		Emitters: PlayerEmitters{
			WallSlide: ecs.InvalidEntity,
			Running:   ecs.InvalidEntity,
			Jumping:   ecs.InvalidEntity,
			Landing:   ecs.InvalidEntity,
		},
		HUD: HUDEntities{
			CoinText:      ecs.InvalidEntity,
			HealthBarBG:   ecs.InvalidEntity,
			HealthBarFill: ecs.InvalidEntity,
			WinOverlay:    ecs.InvalidEntity,
			WinText:       ecs.InvalidEntity,
			RestartText:   ecs.InvalidEntity,
			GameOverText:  ecs.InvalidEntity,
		},
	}
}

// Finished 对局是否已结束（胜利或失败）
func (pc *PlayContext) Finished() bool {
	return pc.Won || pc.GameOver
}

// AddCoin 记一枚金币，返回本次是否刚好凑齐（胜利只触发一次）
func (pc *PlayContext) AddCoin() bool {
	if pc.CoinsCollected < pc.TotalCoins {
		pc.CoinsCollected++
	}
	if pc.Won || pc.CoinsCollected != pc.TotalCoins {
		return false
	}
	pc.Won = true
	return true
}

// MarkGameOver 标记失败，返回本次是否首次触发
func (pc *PlayContext) MarkGameOver() bool {
	if pc.GameOver {
		return false
	}
	pc.GameOver = true
	return true
}
