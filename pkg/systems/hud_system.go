package systems

import (
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
)

// HUDSystem 同步血条位置、血条长度与心形图标
type HUDSystem struct {
	entityManager *ecs.EntityManager
	ctx           *game.PlayContext
}

// NewHUDSystem 创建 HUD 系统
func NewHUDSystem(em *ecs.EntityManager, ctx *game.PlayContext) *HUDSystem {
	return &HUDSystem{entityManager: em, ctx: ctx}
}

// Update 血条跟随玩家头顶，长度按生命比例缩放
func (s *HUDSystem) Update(dt float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.ctx.Player)
	if !ok {
		return
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, s.ctx.Player)
	if !ok {
		return
	}

	x, y := pos.X, pos.Y+config.HealthBarOffsetY
	for _, id := range []ecs.EntityID{s.ctx.HUD.HealthBarBG, s.ctx.HUD.HealthBarFill} {
		if p, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
			p.X, p.Y = x, y
		}
	}
	if fill, ok := ecs.GetComponent[*components.RectComponent](s.entityManager, s.ctx.HUD.HealthBarFill); ok {
		fill.Width = config.HealthBarWidth * health.Fraction()
	}

	for i, id := range s.ctx.HUD.Hearts {
		setVisible(s.entityManager, id, i < health.CurrentHealth)
	}
}
