package scenes

import (
	"fmt"
	"image/color"

	"github.com/gonewx/coinquest/internal/tiled"
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/entities"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/systems"
	"github.com/gonewx/coinquest/pkg/utils"
)

// groundPlaceholder 地形图块图片缺失时的填充色
var groundPlaceholder = color.RGBA{R: 0x5a, G: 0x8f, B: 0x3c, A: 255}

// NewPlatformerScene 按关卡地图搭建一局游戏
//
// 地图和地面图层是必需的；天空、树木图层缺失时只记警告。
func NewPlatformerScene(svc *Services) (*PlatformerScene, error) {
	cfg := svc.Gameplay
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	rm := svc.Resources

	m, ok := rm.Tilemap(cfg.Level.Map)
	if !ok {
		return nil, fmt.Errorf("tilemap %q is not loaded", cfg.Level.Map)
	}

	em := ecs.NewEntityManager()
	s := &PlatformerScene{
		svc:           svc,
		logger:        utils.Logger("PlatformerScene"),
		entityManager: em,
		ctx:           game.NewPlayContext(cfg),
		tilemap:       m,
	}

	if err := s.buildLayers(); err != nil {
		return nil, err
	}

	worldW, worldH := float64(m.PixelWidth()), float64(m.PixelHeight())
	s.physics = systems.NewPhysicsSystem(em, worldW, worldH, m.TileWidth, cfg.Physics.Gravity)
	s.physics.AddSolidTiles(s.ground)

	s.timers = systems.NewTimerSystem(em)
	s.tweens = systems.NewTweenSystem(em)
	s.particles = systems.NewParticleSystem(em, svc.Seed)
	s.animations = systems.NewAnimationSystem(em, svc.Animations)
	s.camera = systems.NewCameraSystem(em, config.ScreenWidth, config.ScreenHeight, svc.Seed)
	s.renderSystem = systems.NewRenderSystem(em, rm)

	if _, err := entities.NewAmbientEmitter(s.particles, svc.Particles, worldW, worldH); err != nil {
		return nil, fmt.Errorf("platformer: %w", err)
	}

	s.spawnCoins()
	s.ctx.HUD = entities.NewHUD(em, systems.CoinText(0, s.ctx.TotalCoins), cfg.Player.MaxHealth,
		config.ScreenWidth, config.ScreenHeight)

	if err := s.spawnPlayer(); err != nil {
		return nil, err
	}

	s.ctx.CameraEntity = s.camera.Entity()
	s.cameraController = systems.NewCameraControllerSystem(em, s.ctx, s.camera)
	s.cameraController.Init(worldW, worldH)

	s.spawnEnemies()

	s.controller = systems.NewPlayerControllerSystem(em, s.ctx, svc.Input, s.animations, s.particles, s.camera, svc.Audio)
	s.hud = systems.NewHUDSystem(em, s.ctx)
	s.patrol = systems.NewEnemyPatrolSystem(em, s.ground, cfg.Enemy.EdgeProbe)
	// 重叠回调按注册顺序触发：先金币后敌人
	s.coins = systems.NewCoinSystem(em, s.ctx, s.physics, s.camera, s.particles, svc.Audio)
	s.damage = systems.NewDamageSystem(em, s.ctx, s.physics, s.camera, s.timers)

	s.logger.Info("level ready",
		"map", cfg.Level.Map,
		"size", fmt.Sprintf("%.0fx%.0f", worldW, worldH),
		"coins", s.ctx.TotalCoins,
		"enemies", len(cfg.Enemy.Spawns))
	return s, nil
}

// buildLayers 创建三层地图并开启地面碰撞
func (s *PlatformerScene) buildLayers() error {
	lv := s.ctx.Config.Level

	for _, name := range []string{lv.TilesetTerrain, lv.TilesetSky} {
		if name != "" && s.tilemap.Tileset(name) == nil {
			s.logger.Warn("tileset missing from map", "tileset", name)
		}
	}

	if sky, err := tiled.NewTileLayer(s.tilemap, lv.SkyLayer); err != nil {
		s.logger.Warn("sky layer unavailable", "layer", lv.SkyLayer, "err", err)
	} else {
		s.addLayer(sky, lv.SkyTextureID, lv.SkyScale, lv.SkyScrollFactor, config.DepthSky, color.RGBA{})
	}

	if trees, err := tiled.NewTileLayer(s.tilemap, lv.TreesLayer); err != nil {
		s.logger.Warn("trees layer unavailable", "layer", lv.TreesLayer, "err", err)
	} else {
		s.addLayer(trees, lv.TerrainTextureID, 1, 1, config.DepthTrees, color.RGBA{})
	}

	ground, err := tiled.NewTileLayer(s.tilemap, lv.GroundLayer)
	if err != nil {
		return fmt.Errorf("ground layer: %w", err)
	}
	s.ground = ground
	s.addLayer(ground, lv.TerrainTextureID, 1, 1, config.DepthGround, groundPlaceholder)

	n := ground.SetCollisionByProperty(map[string]interface{}{lv.CollideProperty: true})
	if n == 0 {
		s.logger.Warn("no colliding tiles in ground layer", "property", lv.CollideProperty)
	}
	return nil
}

func (s *PlatformerScene) addLayer(layer *tiled.TileLayer, texture string, scale, scrollFactor, depth float64, placeholder color.RGBA) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TileLayerComponent{
		Layer:        layer,
		Texture:      texture,
		Scale:        scale,
		ScrollFactor: scrollFactor,
		Depth:        depth,
		Visible:      true,
		Placeholder:  placeholder,
	})
	return id
}

// spawnCoins 把对象层里的金币对象变成可收集的金币
func (s *PlatformerScene) spawnCoins() {
	coins := s.ctx.Config.Coins
	objects := s.tilemap.ObjectsByName(coins.ObjectLayer, coins.ObjectName)
	for _, obj := range objects {
		id := entities.NewCoinEntity(s.entityManager, s.svc.Resources, obj, coins.Frame)
		if !s.physics.AddBody(id, components.TagCoin) {
			s.logger.Warn("coin has no body", "object", obj.ID)
			continue
		}
		s.ctx.TotalCoins++
	}
	if len(objects) == 0 {
		s.logger.Warn("no coins found", "layer", coins.ObjectLayer, "name", coins.ObjectName)
	}
}

func (s *PlatformerScene) spawnPlayer() error {
	cfg := s.ctx.Config.Player
	s.ctx.Player = entities.NewPlayerEntity(s.entityManager, s.svc.Resources, cfg, cfg.Spawn.X, cfg.Spawn.Y)
	if !s.physics.AddBody(s.ctx.Player, components.TagPlayer) {
		return fmt.Errorf("failed to add player body")
	}

	emitters, err := entities.NewPlayerEmitters(s.particles, s.svc.Particles)
	if err != nil {
		return fmt.Errorf("platformer: %w", err)
	}
	s.ctx.Emitters = emitters
	return nil
}

func (s *PlatformerScene) spawnEnemies() {
	cfg := s.ctx.Config.Enemy
	for _, spawn := range cfg.Spawns {
		id := entities.NewEnemyEntity(s.entityManager, s.svc.Resources, cfg, spawn.X, spawn.Y)
		if !s.physics.AddBody(id, components.TagEnemy) {
			s.logger.Warn("enemy has no body", "x", spawn.X, "y", spawn.Y)
		}
	}
}
