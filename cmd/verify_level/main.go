// Package main 检查关卡地图与玩法配置是否匹配
//
// Usage:
//
//	go run ./cmd/verify_level [flags]
//
// Flags:
//
//	-level <path>    Tiled 地图（默认 data/levels/platformer-level-1.tmj）
//	-config <path>   玩法配置（默认 data/config/gameplay.yaml）
//	-verbose         打印每个金币和图块统计
//
// 输出地图尺寸、金币数量、可碰撞图块数，并检查玩家和每个敌人的出生点下方
// 是否有地面、敌人站稳后前方探测点是否落在地面里。有问题时退出码为 1。
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gonewx/coinquest/internal/tiled"
	"github.com/gonewx/coinquest/pkg/config"
)

var (
	levelPath  = flag.String("level", "data/levels/platformer-level-1.tmj", "Tiled 地图路径")
	configPath = flag.String("config", config.GameplayConfigPath, "玩法配置路径")
	verbose    = flag.Bool("verbose", false, "显示详细信息")
)

// 角色碰撞体的默认高度（与 entities 中的精灵尺寸一致）
const characterHeight = 24

// spawnCheck 单个出生点的检查结果
type spawnCheck struct {
	Name     string
	X, Y     float64
	GroundY  float64 // 地面顶边，未找到时为 -1
	ProbeL   bool
	ProbeR   bool
	Problems []string
}

// report 整张地图的检查结果
type report struct {
	Width, Height  int
	PixelW, PixelH int
	Coins          int
	SolidTiles     int
	Spawns         []spawnCheck
}

func (r *report) ok() bool {
	for _, s := range r.Spawns {
		if len(s.Problems) > 0 {
			return false
		}
	}
	return r.Coins > 0 && r.SolidTiles > 0
}

func main() {
	flag.Parse()

	m, err := tiled.Load(os.DirFS(filepath.Dir(*levelPath)), filepath.Base(*levelPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载地图失败: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadGameplayConfig(os.DirFS("."), *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	r, err := verify(m, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "检查失败: %v\n", err)
		os.Exit(1)
	}
	printReport(r)
	if !r.ok() {
		os.Exit(1)
	}
}

// verify 对地图执行全部检查
func verify(m *tiled.Map, cfg *config.GameplayConfig) (*report, error) {
	ground, err := tiled.NewTileLayer(m, cfg.Level.GroundLayer)
	if err != nil {
		return nil, err
	}
	ground.SetCollisionByProperty(map[string]interface{}{cfg.Level.CollideProperty: true})

	r := &report{
		Width:      m.Width,
		Height:     m.Height,
		PixelW:     m.PixelWidth(),
		PixelH:     m.PixelHeight(),
		Coins:      len(m.ObjectsByName(cfg.Coins.ObjectLayer, cfg.Coins.ObjectName)),
		SolidTiles: len(ground.CollidingTiles()),
	}

	p := cfg.Player.Spawn
	player := checkSpawn(ground, float64(r.PixelH), "player", p.X, p.Y, nil)
	r.Spawns = append(r.Spawns, player)

	for i, s := range cfg.Enemy.Spawns {
		probe := cfg.Enemy.EdgeProbe
		r.Spawns = append(r.Spawns, checkSpawn(ground, float64(r.PixelH), fmt.Sprintf("enemy #%d", i+1), s.X, s.Y, &probe))
	}
	return r, nil
}

// checkSpawn 从出生点向下找地面，probe 不为空时检查站稳后的前方探测点
func checkSpawn(ground *tiled.TileLayer, worldH float64, name string, x, y float64, probe *config.Vec2) spawnCheck {
	c := spawnCheck{Name: name, X: x, Y: y, GroundY: -1}

	if ground.IsSolidAt(x, y) {
		c.Problems = append(c.Problems, "出生点在地面内部")
		return c
	}

	step := float64(ground.TileHeight)
	for gy := y; gy < worldH; gy += step {
		if ground.IsSolidAt(x, gy) {
			tx, ty := ground.WorldToTile(x, gy)
			if t := ground.TileAt(tx, ty); t != nil {
				_, top, _, _ := t.WorldRect(ground.TileWidth, ground.TileHeight, ground.OriginX, ground.OriginY)
				c.GroundY = top
			}
			break
		}
	}
	if c.GroundY < 0 {
		c.Problems = append(c.Problems, "下方没有地面")
		return c
	}
	if probe == nil {
		return c
	}

	restY := c.GroundY - characterHeight/2
	c.ProbeR = ground.TileAtWorld(x+probe.X, restY+probe.Y) != nil
	c.ProbeL = ground.TileAtWorld(x-probe.X, restY+probe.Y) != nil
	if !c.ProbeL && !c.ProbeR {
		c.Problems = append(c.Problems, "两侧探测点都没有图块，敌人会原地来回掉头")
	}
	return c
}

func printReport(r *report) {
	fmt.Printf("地图: %dx%d 格 (%dx%d 像素)\n", r.Width, r.Height, r.PixelW, r.PixelH)
	fmt.Printf("金币: %d\n", r.Coins)
	fmt.Printf("可碰撞图块: %d\n", r.SolidTiles)
	fmt.Println()

	for _, s := range r.Spawns {
		status := "OK"
		if len(s.Problems) > 0 {
			status = "FAIL"
		}
		fmt.Printf("[%s] %-10s (%.0f, %.0f)", status, s.Name, s.X, s.Y)
		if s.GroundY >= 0 {
			fmt.Printf("  地面 y=%.0f", s.GroundY)
		}
		if *verbose {
			fmt.Printf("  probeL=%v probeR=%v", s.ProbeL, s.ProbeR)
		}
		fmt.Println()
		for _, p := range s.Problems {
			fmt.Printf("       - %s\n", p)
		}
	}
}
