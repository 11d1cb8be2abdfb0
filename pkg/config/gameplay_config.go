package config

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// GameplayConfig 关卡玩法调优参数
//
// 配置文件位置: data/config/gameplay.yaml
type GameplayConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Camera  CameraConfig  `yaml:"camera"`
	Enemy   EnemyConfig   `yaml:"enemy"`
	Coins   CoinConfig    `yaml:"coins"`
	Level   LevelConfig   `yaml:"level"`
}

// Vec2 二维数值
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Size 宽高
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig 物理世界参数
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"` // 重力加速度（像素/秒²）
}

// PlayerConfig 玩家移动与生命参数
type PlayerConfig struct {
	Spawn              Vec2    `yaml:"spawn"`
	Acceleration       float64 `yaml:"acceleration"`
	Drag               float64 `yaml:"drag"`
	JumpVelocity       float64 `yaml:"jumpVelocity"` // 负值向上
	WallJumpVelocity   Vec2    `yaml:"wallJumpVelocity"`
	MaxJumps           int     `yaml:"maxJumps"`
	WallSlideSpeed     float64 `yaml:"wallSlideSpeed"`
	WallSlideThreshold float64 `yaml:"wallSlideThreshold"`
	ShakeThreshold     float64 `yaml:"shakeThreshold"` // 落地震屏的最小下落距离
	MaxVelocity        Vec2    `yaml:"maxVelocity"`
	BodyWidthScale     float64 `yaml:"bodyWidthScale"` // 碰撞体宽度相对精灵宽度的比例
	MaxHealth          int     `yaml:"maxHealth"`
	DamageAmount       int     `yaml:"damageAmount"`
	DamageTintMs       float64 `yaml:"damageTintMs"`
}

// CameraConfig 镜头跟随参数
type CameraConfig struct {
	Zoom                    float64 `yaml:"zoom"`
	Lerp                    float64 `yaml:"lerp"`
	DeadzoneBasic           Size    `yaml:"deadzoneBasic"`
	DeadzoneRunning         Size    `yaml:"deadzoneRunning"`
	VerticalTransitionSpeed float64 `yaml:"verticalTransitionSpeed"`
	PanSpeed                float64 `yaml:"panSpeed"`
	LookAhead               float64 `yaml:"lookAhead"`
	LandingShakeMs          float64 `yaml:"landingShakeMs"`
	LandingShakeIntensity   float64 `yaml:"landingShakeIntensity"`
	DamageShakeMs           float64 `yaml:"damageShakeMs"`
	DamageShakeIntensity    float64 `yaml:"damageShakeIntensity"`
}

// EnemyConfig 巡逻敌人参数
type EnemyConfig struct {
	Speed          float64 `yaml:"speed"`
	PatrolDistance float64 `yaml:"patrolDistance"`
	EdgeProbe      Vec2    `yaml:"edgeProbe"` // 前方地面探测偏移
	Frame          string  `yaml:"frame"`
	Spawns         []Vec2  `yaml:"spawns"`
}

// CoinConfig 金币对象参数
type CoinConfig struct {
	ObjectLayer string `yaml:"objectLayer"`
	ObjectName  string `yaml:"objectName"`
	Frame       int    `yaml:"frame"` // tilemap_sheet 帧序号
}

// LevelConfig 地图图层命名
type LevelConfig struct {
	Map              string  `yaml:"map"`
	SkyLayer         string  `yaml:"skyLayer"`
	SkyScale         float64 `yaml:"skyScale"`
	SkyScrollFactor  float64 `yaml:"skyScrollFactor"`
	TreesLayer       string  `yaml:"treesLayer"`
	GroundLayer      string  `yaml:"groundLayer"`
	CollideProperty  string  `yaml:"collideProperty"`
	TilesetTerrain   string  `yaml:"tilesetTerrain"`
	TilesetSky       string  `yaml:"tilesetSky"`
	TerrainTextureID string  `yaml:"terrainTexture"`
	SkyTextureID     string  `yaml:"skyTexture"`
}

// DefaultGameplayConfig 返回内置默认值
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Physics: PhysicsConfig{Gravity: 1500},
		Player: PlayerConfig{
			Spawn:              Vec2{X: 30, Y: 345},
			Acceleration:       400,
			Drag:               500,
			JumpVelocity:       -600,
			WallJumpVelocity:   Vec2{X: 300, Y: -500},
			MaxJumps:           2,
			WallSlideSpeed:     100,
			WallSlideThreshold: 150,
			ShakeThreshold:     100,
			MaxVelocity:        Vec2{X: 300, Y: 1000},
			BodyWidthScale:     0.7,
			MaxHealth:          10,
			DamageAmount:       1,
			DamageTintMs:       100,
		},
		Camera: CameraConfig{
			Zoom:                    2,
			Lerp:                    0.1,
			DeadzoneBasic:           Size{Width: 200, Height: 100},
			DeadzoneRunning:         Size{Width: 300, Height: 150},
			VerticalTransitionSpeed: 0.5,
			PanSpeed:                0.05,
			LookAhead:               100,
			LandingShakeMs:          100,
			LandingShakeIntensity:   0.005,
			DamageShakeMs:           100,
			DamageShakeIntensity:    0.01,
		},
		Enemy: EnemyConfig{
			Speed:          75,
			PatrolDistance: 150,
			EdgeProbe:      Vec2{X: 32, Y: 40},
			Frame:          "tile_0024.png",
			Spawns:         []Vec2{{X: 400, Y: 200}, {X: 800, Y: 300}, {X: 1200, Y: 200}},
		},
		Coins: CoinConfig{ObjectLayer: "Objects", ObjectName: "coin", Frame: 151},
		Level: LevelConfig{
			Map:              "platformer-level-1",
			SkyLayer:         "sky",
			SkyScale:         1.5,
			SkyScrollFactor:  0.85,
			TreesLayer:       "trees",
			GroundLayer:      "Ground-n-Platforms",
			CollideProperty:  "collides",
			TilesetTerrain:   "kenny_tilemap_packed",
			TilesetSky:       "tilemap-backgrounds_packed",
			TerrainTextureID: "tilemap_tiles",
			SkyTextureID:     "background_tiles",
		},
	}
}

// ParseGameplayConfig 解析 YAML，缺省字段保留默认值
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	cfg := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}
	return cfg, nil
}

// LoadGameplayConfig 从文件系统加载玩法配置
//
// 参数:
//   - fsys: 配置所在文件系统（通常是嵌入的 data 目录）
//   - path: 配置文件路径（如 "data/config/gameplay.yaml"）
func LoadGameplayConfig(fsys fs.FS, path string) (*GameplayConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config: %w", err)
	}
	return ParseGameplayConfig(data)
}

// Validate 验证配置有效性
func (c *GameplayConfig) Validate() error {
	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %.1f", c.Physics.Gravity)
	}

	p := c.Player
	if p.Acceleration <= 0 || p.Drag < 0 {
		return fmt.Errorf("player acceleration must be positive and drag non-negative")
	}
	if p.JumpVelocity >= 0 || p.WallJumpVelocity.Y >= 0 {
		return fmt.Errorf("jump velocities must be negative (upwards)")
	}
	if p.MaxJumps < 1 {
		return fmt.Errorf("maxJumps must be at least 1, got %d", p.MaxJumps)
	}
	if p.MaxHealth < 1 || p.DamageAmount < 1 {
		return fmt.Errorf("maxHealth and damageAmount must be at least 1")
	}
	if p.MaxVelocity.X <= 0 || p.MaxVelocity.Y <= 0 {
		return fmt.Errorf("maxVelocity must be positive")
	}
	if p.BodyWidthScale <= 0 || p.BodyWidthScale > 1 {
		return fmt.Errorf("bodyWidthScale must be in (0, 1], got %.2f", p.BodyWidthScale)
	}

	cam := c.Camera
	if cam.Zoom <= 0 {
		return fmt.Errorf("camera zoom must be positive, got %.2f", cam.Zoom)
	}
	for name, f := range map[string]float64{"lerp": cam.Lerp, "verticalTransitionSpeed": cam.VerticalTransitionSpeed, "panSpeed": cam.PanSpeed} {
		if f <= 0 || f > 1 {
			return fmt.Errorf("camera %s must be in (0, 1], got %.3f", name, f)
		}
	}

	if c.Enemy.Speed <= 0 || c.Enemy.PatrolDistance <= 0 {
		return fmt.Errorf("enemy speed and patrolDistance must be positive")
	}
	if c.Enemy.Frame == "" {
		return fmt.Errorf("enemy frame is required")
	}
	if c.Coins.ObjectLayer == "" || c.Coins.ObjectName == "" {
		return fmt.Errorf("coin object layer and name are required")
	}
	if c.Level.GroundLayer == "" || c.Level.Map == "" {
		return fmt.Errorf("level map and ground layer are required")
	}
	return nil
}
