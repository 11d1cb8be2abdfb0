package main

import (
	"os"
	"testing"

	"github.com/gonewx/coinquest/internal/tiled"
	"github.com/gonewx/coinquest/pkg/config"
)

func loadShippedLevel(t *testing.T) (*tiled.Map, *config.GameplayConfig) {
	t.Helper()
	root := os.DirFS("../..")
	m, err := tiled.Load(root, "data/levels/platformer-level-1.tmj")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	cfg, err := config.LoadGameplayConfig(root, config.GameplayConfigPath)
	if err != nil {
		t.Fatalf("load gameplay config: %v", err)
	}
	return m, cfg
}

func TestShippedLevelPasses(t *testing.T) {
	m, cfg := loadShippedLevel(t)
	r, err := verify(m, cfg)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if r.Coins != 7 {
		t.Errorf("coins = %d, want 7", r.Coins)
	}
	if len(r.Spawns) != 1+len(cfg.Enemy.Spawns) {
		t.Fatalf("spawns = %d", len(r.Spawns))
	}
	for _, s := range r.Spawns {
		if len(s.Problems) > 0 {
			t.Errorf("%s: %v", s.Name, s.Problems)
		}
		if s.GroundY != 378 {
			t.Errorf("%s: ground y = %v, want 378", s.Name, s.GroundY)
		}
	}
	if !r.ok() {
		t.Error("report should be ok")
	}
}

func TestSpawnOverPitFails(t *testing.T) {
	m, cfg := loadShippedLevel(t)
	// 36-39 列是一直到底的坑
	cfg.Enemy.Spawns = []config.Vec2{{X: 684, Y: 200}}
	r, err := verify(m, cfg)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	enemy := r.Spawns[1]
	if len(enemy.Problems) == 0 || enemy.GroundY != -1 {
		t.Errorf("spawn over the pit should fail: %+v", enemy)
	}
	if r.ok() {
		t.Error("report should not be ok")
	}
}
