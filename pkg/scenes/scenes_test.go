package scenes

import (
	"testing"
	"testing/fstest"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

func TestLoadingText(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "Loading: 0%"},
		{0.333, "Loading: 33%"},
		{1, "Loading: 100%"},
	}
	for _, tt := range tests {
		if got := loadingText(tt.progress); got != tt.want {
			t.Errorf("loadingText(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestLoadingSceneStartsMenu(t *testing.T) {
	f := newSceneFixture(t, false)
	if err := f.svc.Scenes.Start(SceneLoad); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < 10 && f.svc.Scenes.CurrentName() != SceneMenu; i++ {
		f.frame()
	}
	if got := f.svc.Scenes.CurrentName(); got != SceneMenu {
		t.Fatalf("current scene = %q, want %q", got, SceneMenu)
	}
	if _, ok := f.svc.Animations.Get("walk"); !ok {
		t.Errorf("walk clip should be registered after loading")
	}
	if f.svc.Resources.Progress() != 1 {
		t.Errorf("progress = %v, want 1", f.svc.Resources.Progress())
	}
}

func TestLoadingSceneCountsMissingAssets(t *testing.T) {
	f := newSceneFixture(t, false)
	manifest := testManifest + `
    images:
      - id: tilemap_tiles
        path: tilemap_packed.png
`
	rm := game.NewResourceManager(fstest.MapFS{}, fstest.MapFS{
		"data/config/resources.yaml": {Data: []byte(manifest)},
		"data/levels/level.tmj":      {Data: []byte(testLevel())},
	}, nil)
	if err := rm.LoadResourceConfig("data/config/resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}
	f.svc.Resources = rm

	loading := NewLoadingScene(f.svc)
	for i := 0; i < 10 && !loading.done; i++ {
		loading.Update(testDT)
	}
	if got := loading.FailedAssets(); got != 1 {
		t.Errorf("failed assets = %d, want 1", got)
	}
	if rm.Progress() != 1 {
		t.Errorf("progress = %v, want 1", rm.Progress())
	}
}

func TestLoadingSceneSkipMenu(t *testing.T) {
	f := newSceneFixture(t, false)
	f.svc.SkipMenu = true
	_ = f.svc.Scenes.Start(SceneLoad)

	for i := 0; i < 10 && f.svc.Scenes.CurrentName() != ScenePlatformer; i++ {
		f.frame()
	}
	if got := f.svc.Scenes.CurrentName(); got != ScenePlatformer {
		t.Fatalf("current scene = %q, want %q", got, ScenePlatformer)
	}
}

func TestRegisterClipsIsIdempotent(t *testing.T) {
	f := newSceneFixture(t, true)
	if err := RegisterClips(f.svc.Animations); err != nil {
		t.Fatalf("second RegisterClips: %v", err)
	}
	if f.svc.Animations.Len() != 3 {
		t.Errorf("clips = %d, want 3", f.svc.Animations.Len())
	}
}

func clickPlay(f *sceneFixture) {
	f.input.PointerX = config.ScreenWidth / 2
	buttonY := config.ScreenHeight * config.MenuButtonY
	f.input.PointerY = int(buttonY)
	f.input.Clicked = true
}

func TestMenuSceneClickStartsLevel(t *testing.T) {
	f := newSceneFixture(t, true)
	menu, err := NewMenuScene(f.svc)
	if err != nil {
		t.Fatalf("NewMenuScene: %v", err)
	}

	clickPlay(f)
	menu.Update(testDT)
	f.input.EndFrame()
	if menu.State() != MenuFading {
		t.Fatalf("state = %v, want fading", menu.State())
	}

	// 淡出期间再次点击无效
	clickPlay(f)
	menu.Update(testDT)
	f.input.EndFrame()

	for i := 0; i < 40; i++ {
		menu.Update(testDT)
	}
	if menu.State() != MenuTransitioned {
		t.Fatalf("state = %v, want transitioned", menu.State())
	}

	f.svc.Scenes.Update(testDT)
	if got := f.svc.Scenes.CurrentName(); got != ScenePlatformer {
		t.Errorf("current scene = %q, want %q", got, ScenePlatformer)
	}
}

func TestMenuSceneHoverScalesButton(t *testing.T) {
	f := newSceneFixture(t, true)
	menu, err := NewMenuScene(f.svc)
	if err != nil {
		t.Fatalf("NewMenuScene: %v", err)
	}

	f.input.PointerX = config.ScreenWidth / 2
	buttonY := config.ScreenHeight * config.MenuButtonY
	f.input.PointerY = int(buttonY)
	for i := 0; i < 30; i++ {
		menu.Update(testDT)
	}

	rect, _ := ecs.GetComponent[*components.RectComponent](menu.entityManager, menu.playButton.Button)
	if rect.Color != utils.HexColor(config.MenuButtonHoverColor) {
		t.Errorf("button color = %v, want hover color", rect.Color)
	}
	if menu.State() != MenuIdle {
		t.Errorf("hover should not leave idle state")
	}
}

func TestMenuSceneQuit(t *testing.T) {
	f := newSceneFixture(t, true)
	menu, err := NewMenuScene(f.svc)
	if err != nil {
		t.Fatalf("NewMenuScene: %v", err)
	}
	f.input.Tap(utils.KeyQuit)
	menu.Update(testDT)
	if f.quits != 1 {
		t.Errorf("quit called %d times, want 1", f.quits)
	}
}

func TestNewPlatformerSceneRequiresMap(t *testing.T) {
	f := newSceneFixture(t, false)
	if _, err := NewPlatformerScene(f.svc); err == nil {
		t.Fatal("expected an error when the tilemap is not loaded")
	}
}

func TestNewPlatformerSceneBuildsLevel(t *testing.T) {
	f := newSceneFixture(t, true)
	s, err := NewPlatformerScene(f.svc)
	if err != nil {
		t.Fatalf("NewPlatformerScene: %v", err)
	}
	ctx := s.Context()
	em := s.EntityManager()

	if ctx.TotalCoins != 2 {
		t.Errorf("TotalCoins = %d, want 2", ctx.TotalCoins)
	}
	if ctx.Player == ecs.InvalidEntity || ctx.CameraEntity == ecs.InvalidEntity {
		t.Fatalf("player or camera missing: %+v", ctx)
	}
	for _, id := range ctx.Emitters.All() {
		if id == ecs.InvalidEntity {
			t.Errorf("player emitter missing")
		}
	}

	enemies := ecs.GetEntitiesWith1[*components.EnemyComponent](em)
	if len(enemies) != 3 {
		t.Errorf("enemies = %d, want 3", len(enemies))
	}
	// 天空和树木图层缺失，只有地面
	layers := ecs.GetEntitiesWith1[*components.TileLayerComponent](em)
	if len(layers) != 1 {
		t.Errorf("tile layers = %d, want 1", len(layers))
	}

	text, _ := ecs.GetComponent[*components.TextComponent](em, ctx.HUD.CoinText)
	if text.Text != "Coins: 0/2" {
		t.Errorf("coin text = %q", text.Text)
	}
	if len(ctx.HUD.Hearts) != config.DefaultGameplayConfig().Player.MaxHealth {
		t.Errorf("hearts = %d", len(ctx.HUD.Hearts))
	}

	cam, _ := ecs.GetComponent[*components.CameraComponent](em, ctx.CameraEntity)
	if cam.Zoom != 2 || !cam.Following || cam.FollowTarget != ctx.Player {
		t.Errorf("camera = zoom %v follow %d", cam.Zoom, cam.FollowTarget)
	}
}

func TestPlatformerPlayerLandsOnGround(t *testing.T) {
	f := newSceneFixture(t, true)
	s, err := NewPlatformerScene(f.svc)
	if err != nil {
		t.Fatalf("NewPlatformerScene: %v", err)
	}
	for i := 0; i < 120; i++ {
		s.Update(testDT)
		f.input.EndFrame()
	}

	em := s.EntityManager()
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, s.Context().Player)
	body, _ := ecs.GetComponent[*components.BodyComponent](em, s.Context().Player)
	if !body.Blocked.Down {
		t.Errorf("player should stand on the ground, y = %v", pos.Y)
	}
	groundTop := float64(groundTopRow * 18)
	if pos.Y > groundTop {
		t.Errorf("player fell through the ground: y = %v", pos.Y)
	}
	if s.Context().Finished() {
		t.Errorf("level should still be running")
	}
}

func TestPlatformerRestartCreatesFreshScene(t *testing.T) {
	f := newSceneFixture(t, true)
	_ = f.svc.Scenes.Start(ScenePlatformer)
	f.frame()

	first, ok := f.svc.Scenes.Current().(*PlatformerScene)
	if !ok {
		t.Fatalf("current scene is %T", f.svc.Scenes.Current())
	}
	first.Context().CoinsCollected = 1

	f.input.Tap(utils.KeyRestart)
	f.frame()
	f.frame()

	second, ok := f.svc.Scenes.Current().(*PlatformerScene)
	if !ok || second == first {
		t.Fatal("restart should create a new platformer scene")
	}
	if second.Context().CoinsCollected != 0 {
		t.Errorf("CoinsCollected = %d after restart", second.Context().CoinsCollected)
	}
}
