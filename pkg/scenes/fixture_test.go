package scenes

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gonewx/coinquest/internal/particle"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

const testDT = 1.0 / 60

const (
	levelCols = 80
	levelRows = 24
	// 最下面两行是地面，顶边 y=396
	groundTopRow = 22
)

const testManifest = `
version: "1.0"
groups:
  platformer:
    tilemaps:
      - id: platformer-level-1
        path: data/levels/level.tmj
`

const testParticles = `
emitters:
  - {name: menu_magic, texture: kenny-particles, frames: [circle_05.png], lifespan: 4000, quantity: 2, frequency: 500}
  - {name: ambient_dust, texture: kenny-particles, frames: [smoke_01.png], lifespan: 6000, quantity: 1, frequency: 2000, depth: 1.5}
  - {name: wall_slide, texture: kenny-particles, frames: [smoke_01.png], lifespan: 200, quantity: 1, frequency: 100, emitting: false}
  - {name: running, texture: kenny-particles, frames: [smoke_01.png], lifespan: 200, quantity: 1, frequency: 100, emitting: false}
  - {name: jumping, texture: kenny-particles, frames: [circle_05.png], lifespan: 400, quantity: 8, frequency: -1}
  - {name: landing, texture: kenny-particles, frames: [circle_03.png], lifespan: 300, quantity: 10, frequency: -1}
`

// testLevel 80x24 格的关卡：两行地面，两枚金币
func testLevel() string {
	data := make([]string, 0, levelCols*levelRows)
	for row := 0; row < levelRows; row++ {
		for col := 0; col < levelCols; col++ {
			if row >= groundTopRow {
				data = append(data, "1")
			} else {
				data = append(data, "0")
			}
		}
	}
	return fmt.Sprintf(`{
	"width": %d, "height": %d, "tilewidth": 18, "tileheight": 18,
	"orientation": "orthogonal", "renderorder": "right-down",
	"layers": [
		{"id": 1, "name": "Ground-n-Platforms", "type": "tilelayer", "width": %d, "height": %d,
		 "data": [%s], "visible": true, "opacity": 1},
		{"id": 2, "name": "Objects", "type": "objectgroup", "visible": true, "opacity": 1, "objects": [
			{"id": 1, "name": "coin", "gid": 152, "x": 600, "y": 380, "width": 18, "height": 18, "visible": true},
			{"id": 2, "name": "coin", "gid": 152, "x": 1000, "y": 380, "width": 18, "height": 18, "visible": true}
		]}
	],
	"tilesets": [
		{"firstgid": 1, "name": "kenny_tilemap_packed", "image": "tilemap_packed.png",
		 "imagewidth": 360, "imageheight": 162, "tilewidth": 18, "tileheight": 18,
		 "columns": 20, "tilecount": 180,
		 "tiles": [{"id": 0, "properties": [{"name": "collides", "type": "bool", "value": true}]}]}
	]
}`, levelCols, levelRows, levelCols, levelRows, strings.Join(data, ","))
}

type sceneFixture struct {
	svc   *Services
	input *utils.FakeInput
	quits int
}

func newSceneFixture(t *testing.T, loaded bool) *sceneFixture {
	t.Helper()
	data := fstest.MapFS{
		"data/config/resources.yaml": {Data: []byte(testManifest)},
		"data/levels/level.tmj":      {Data: []byte(testLevel())},
	}
	rm := game.NewResourceManager(fstest.MapFS{}, data, nil)
	if err := rm.LoadResourceConfig("data/config/resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}

	configs, err := particle.Parse([]byte(testParticles))
	if err != nil {
		t.Fatalf("particle.Parse: %v", err)
	}
	lib := particle.NewLibrary()
	if err := lib.Add(configs...); err != nil {
		t.Fatalf("lib.Add: %v", err)
	}

	f := &sceneFixture{input: utils.NewFakeInput()}
	f.svc = &Services{
		Resources:  rm,
		Scenes:     game.NewSceneManager(),
		Audio:      game.NewAudioManager(nil, nil),
		Animations: game.NewAnimationRegistry(),
		Particles:  lib,
		Gameplay:   config.DefaultGameplayConfig(),
		Input:      f.input,
		Seed:       1,
		Quit:       func() { f.quits++ },
	}
	Register(f.svc)

	if loaded {
		rm.LoadAll()
		if err := RegisterClips(f.svc.Animations); err != nil {
			t.Fatalf("RegisterClips: %v", err)
		}
	}
	return f
}

// frame 推进一帧场景管理器并清除单帧输入
func (f *sceneFixture) frame() {
	f.svc.Scenes.Update(testDT)
	f.input.EndFrame()
}

func (f *sceneFixture) frames(n int) {
	for i := 0; i < n; i++ {
		f.frame()
	}
}
