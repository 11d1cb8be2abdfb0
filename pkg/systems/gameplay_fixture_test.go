package systems

import (
	"testing"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

const (
	testPlayerSize = 24.0
	testGroundY    = 300.0
)

type fakeSound struct {
	played []string
}

func (f *fakeSound) PlaySound(id string, volume float64) bool {
	f.played = append(f.played, id)
	return true
}

func (f *fakeSound) count(id string) int {
	n := 0
	for _, p := range f.played {
		if p == id {
			n++
		}
	}
	return n
}

// gameplayFixture 一个 800x400 的小世界：y=300 处一条地面，玩家站在 x=100
type gameplayFixture struct {
	em    *ecs.EntityManager
	ctx   *game.PlayContext
	input *utils.FakeInput
	sound *fakeSound

	physics    *PhysicsSystem
	anims      *AnimationSystem
	particles  *ParticleSystem
	camera     *CameraSystem
	timers     *TimerSystem
	controller *PlayerControllerSystem
	coins      *CoinSystem
	damage     *DamageSystem
	hud        *HUDSystem
}

func newGameplayFixture(t *testing.T) *gameplayFixture {
	t.Helper()
	cfg := config.DefaultGameplayConfig()
	em := ecs.NewEntityManager()
	f := &gameplayFixture{
		em:    em,
		ctx:   game.NewPlayContext(cfg),
		input: utils.NewFakeInput(),
		sound: &fakeSound{},
	}

	f.physics = NewPhysicsSystem(em, 800, 400, 18, cfg.Physics.Gravity)
	f.physics.AddSolidRect(0, testGroundY, 800, 18)
	f.anims = NewAnimationSystem(em, newTestAnimations(t))
	f.particles = NewParticleSystem(em, 1)
	f.camera = NewCameraSystem(em, 1280, 720, 1)
	f.timers = NewTimerSystem(em)

	f.ctx.Player = f.addPlayer(t, 100, testGroundY-testPlayerSize/2)
	f.ctx.CameraEntity = f.camera.Entity()
	f.ctx.Emitters = game.PlayerEmitters{
		WallSlide: f.particles.CreateEmitter(runningDust(), 0, 0),
		Running:   f.particles.CreateEmitter(runningDust(), 0, 0),
		Jumping:   f.particles.CreateEmitter(jumpBurst(), 0, 0),
		Landing:   f.particles.CreateEmitter(jumpBurst(), 0, 0),
	}
	f.addHUD(cfg.Player.MaxHealth)

	f.controller = NewPlayerControllerSystem(em, f.ctx, f.input, f.anims, f.particles, f.camera, f.sound)
	f.coins = NewCoinSystem(em, f.ctx, f.physics, f.camera, f.particles, f.sound)
	f.damage = NewDamageSystem(em, f.ctx, f.physics, f.camera, f.timers)
	f.hud = NewHUDSystem(em, f.ctx)
	return f
}

func (f *gameplayFixture) addPlayer(t *testing.T, x, y float64) ecs.EntityID {
	t.Helper()
	cfg := f.ctx.Config.Player
	id := f.em.CreateEntity()
	ecs.AddComponent(f.em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(f.em, id, &components.BodyComponent{
		Width:              testPlayerSize * cfg.BodyWidthScale,
		Height:             testPlayerSize,
		MaxVelocityX:       cfg.MaxVelocity.X,
		MaxVelocityY:       cfg.MaxVelocity.Y,
		AllowGravity:       true,
		CollideWorldBounds: true,
		CollideTiles:       true,
	})
	ecs.AddComponent(f.em, id, &components.PlayerComponent{JumpsLeft: cfg.MaxJumps, WasOnGround: true})
	ecs.AddComponent(f.em, id, &components.HealthComponent{CurrentHealth: cfg.MaxHealth, MaxHealth: cfg.MaxHealth})
	ecs.AddComponent(f.em, id, &components.SpriteComponent{Width: testPlayerSize, Height: testPlayerSize, Visible: true, Alpha: 1})
	ecs.AddComponent(f.em, id, &components.AnimationComponent{})
	if !f.physics.AddBody(id, components.TagPlayer) {
		t.Fatalf("AddBody(player) failed")
	}
	return id
}

func (f *gameplayFixture) addHUD(hearts int) {
	newText := func(visible bool) ecs.EntityID {
		id := f.em.CreateEntity()
		ecs.AddComponent(f.em, id, &components.PositionComponent{})
		ecs.AddComponent(f.em, id, &components.TextComponent{Visible: visible})
		return id
	}
	newRect := func(w float64, visible bool) ecs.EntityID {
		id := f.em.CreateEntity()
		ecs.AddComponent(f.em, id, &components.PositionComponent{})
		ecs.AddComponent(f.em, id, &components.RectComponent{Width: w, Visible: visible})
		return id
	}

	f.ctx.HUD.CoinText = newText(true)
	f.ctx.HUD.WinText = newText(false)
	f.ctx.HUD.RestartText = newText(false)
	f.ctx.HUD.GameOverText = newText(false)
	f.ctx.HUD.WinOverlay = newRect(1280, false)
	f.ctx.HUD.HealthBarBG = newRect(config.HealthBarWidth+2*config.HealthBarPadding, true)
	f.ctx.HUD.HealthBarFill = newRect(config.HealthBarWidth, true)
	for i := 0; i < hearts; i++ {
		id := f.em.CreateEntity()
		ecs.AddComponent(f.em, id, &components.SpriteComponent{Visible: true})
		f.ctx.HUD.Hearts = append(f.ctx.HUD.Hearts, id)
	}
}

func (f *gameplayFixture) addCoin(t *testing.T, x, y float64) ecs.EntityID {
	t.Helper()
	id := f.em.CreateEntity()
	ecs.AddComponent(f.em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(f.em, id, &components.BodyComponent{Width: 18, Height: 18, Static: true})
	ecs.AddComponent(f.em, id, &components.CoinComponent{})
	if !f.physics.AddBody(id, components.TagCoin) {
		t.Fatalf("AddBody(coin) failed")
	}
	f.ctx.TotalCoins++
	return id
}

func (f *gameplayFixture) addEnemy(t *testing.T, x, y float64) ecs.EntityID {
	t.Helper()
	id := f.em.CreateEntity()
	ecs.AddComponent(f.em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(f.em, id, &components.BodyComponent{Width: 24, Height: 24})
	ecs.AddComponent(f.em, id, &components.EnemyComponent{Direction: 1, StartX: x, PatrolDistance: 150, Speed: 75})
	if !f.physics.AddBody(id, components.TagEnemy) {
		t.Fatalf("AddBody(enemy) failed")
	}
	return id
}

// step 按关卡场景的顺序推进一帧
func (f *gameplayFixture) step() {
	f.physics.Update(testDT)
	f.controller.Update(testDT)
	f.hud.Update(testDT)
	f.timers.Update(testDT)
	f.particles.Update(testDT)
	f.anims.Update(testDT)
	f.camera.Update(testDT)
	f.input.EndFrame()
	f.em.RemoveMarkedEntities()
}

func (f *gameplayFixture) steps(n int) {
	for i := 0; i < n; i++ {
		f.step()
	}
}

func (f *gameplayFixture) player() (*components.PositionComponent, *components.BodyComponent, *components.PlayerComponent) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](f.em, f.ctx.Player)
	body, _ := ecs.GetComponent[*components.BodyComponent](f.em, f.ctx.Player)
	player, _ := ecs.GetComponent[*components.PlayerComponent](f.em, f.ctx.Player)
	return pos, body, player
}

func (f *gameplayFixture) health() *components.HealthComponent {
	h, _ := ecs.GetComponent[*components.HealthComponent](f.em, f.ctx.Player)
	return h
}

func isVisible(em *ecs.EntityManager, id ecs.EntityID) bool {
	if text, ok := ecs.GetComponent[*components.TextComponent](em, id); ok {
		return text.Visible
	}
	if rect, ok := ecs.GetComponent[*components.RectComponent](em, id); ok {
		return rect.Visible
	}
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id); ok {
		return sprite.Visible
	}
	return false
}
