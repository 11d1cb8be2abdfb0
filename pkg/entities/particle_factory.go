package entities

import (
	"fmt"

	"github.com/gonewx/coinquest/internal/particle"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/systems"
)

// 粒子配置名（data/particles/*.yaml）
const (
	EmitterMenuMagic   = "menu_magic"
	EmitterAmbientDust = "ambient_dust"
	EmitterWallSlide   = "wall_slide"
	EmitterRunning     = "running"
	EmitterJumping     = "jumping"
	EmitterLanding     = "landing"
)

// NewEmitter 在 (x, y) 创建指定配置的发射器
func NewEmitter(ps *systems.ParticleSystem, lib *particle.Library, name string, x, y float64) (ecs.EntityID, error) {
	cfg, err := lib.Get(name)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to create emitter: %w", err)
	}
	return ps.CreateEmitter(cfg, x, y), nil
}

// NewPlayerEmitters 创建跟随玩家的四个发射器（初始都不发射）
func NewPlayerEmitters(ps *systems.ParticleSystem, lib *particle.Library) (game.PlayerEmitters, error) {
	var e game.PlayerEmitters
	var err error
	targets := []struct {
		name string
		id   *ecs.EntityID
	}{
		{EmitterWallSlide, &e.WallSlide},
		{EmitterRunning, &e.Running},
		{EmitterJumping, &e.Jumping},
		{EmitterLanding, &e.Landing},
	}
	for _, t := range targets {
		if *t.id, err = NewEmitter(ps, lib, t.name, 0, 0); err != nil {
			return game.PlayerEmitters{}, err
		}
		ps.Stop(*t.id)
	}
	return e, nil
}

// NewAmbientEmitter 创建覆盖整张地图的环境尘埃
//
// 生成范围取地图尺寸，配置里的 x/y 范围被覆盖。
func NewAmbientEmitter(ps *systems.ParticleSystem, lib *particle.Library, worldW, worldH float64) (ecs.EntityID, error) {
	cfg, err := lib.Get(EmitterAmbientDust)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to create ambient emitter: %w", err)
	}
	ambient := *cfg
	ambient.X = &particle.Range{Min: 0, Max: worldW}
	ambient.Y = &particle.Range{Min: 0, Max: worldH}
	return ps.CreateEmitter(&ambient, 0, 0), nil
}
