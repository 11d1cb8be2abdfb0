package systems

import (
	"testing"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/utils"
)

func TestPlayerRestsOnGround(t *testing.T) {
	f := newGameplayFixture(t)
	f.steps(3)

	_, body, player := f.player()
	if !body.Blocked.Down {
		t.Fatalf("player should be grounded")
	}
	if player.JumpsLeft != f.ctx.Config.Player.MaxJumps {
		t.Errorf("JumpsLeft = %d, want %d", player.JumpsLeft, f.ctx.Config.Player.MaxJumps)
	}
	if got := MovementStateOf(player, body); got != components.StateGrounded {
		t.Errorf("state = %v, want Grounded", got)
	}
	if f.ctx.Movement != components.StateGrounded {
		t.Errorf("ctx.Movement = %v, want Grounded", f.ctx.Movement)
	}
	if f.sound.count(SoundLand) != 0 {
		t.Errorf("standing still should not play the landing sound")
	}
}

func TestDoubleJumpExhaustsBudget(t *testing.T) {
	f := newGameplayFixture(t)
	f.steps(3)
	cfg := f.ctx.Config.Player

	f.input.Tap(utils.KeyUp)
	f.step()
	_, body, player := f.player()
	if player.JumpsLeft != 1 || body.VelocityY != cfg.JumpVelocity {
		t.Fatalf("first jump: JumpsLeft=%d vy=%v", player.JumpsLeft, body.VelocityY)
	}

	f.steps(3)
	if got := MovementStateOf(player, body); got != components.StateAirborne {
		t.Fatalf("state = %v, want Airborne", got)
	}

	f.input.Tap(utils.KeyUp)
	f.step()
	if player.JumpsLeft != 0 || body.VelocityY != cfg.JumpVelocity {
		t.Fatalf("second jump: JumpsLeft=%d vy=%v", player.JumpsLeft, body.VelocityY)
	}

	f.steps(3)
	f.input.Tap(utils.KeyUp)
	f.step()
	if player.JumpsLeft != 0 {
		t.Errorf("third jump changed the budget: %d", player.JumpsLeft)
	}
	if body.VelocityY <= cfg.JumpVelocity {
		t.Errorf("third jump should not change velocity, vy = %v", body.VelocityY)
	}
	if n := f.sound.count(SoundJump); n != 2 {
		t.Errorf("jump sound played %d times, want 2", n)
	}
	if n := f.particles.ParticleCount(f.ctx.Emitters.Jumping); n == 0 {
		t.Errorf("jump burst should have spawned particles")
	}
}

func TestWallJumpResetsBudget(t *testing.T) {
	tests := []struct {
		name    string
		wallX   float64
		playerX float64
		key     utils.Key
		wantVX  float64
	}{
		{name: "right wall", wallX: 400, playerX: 400 - 8.4, key: utils.KeyRight, wantVX: -300},
		{name: "left wall", wallX: 382, playerX: 400 + 8.4, key: utils.KeyLeft, wantVX: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGameplayFixture(t)
			f.physics.AddSolidRect(tt.wallX, 0, 18, testGroundY)

			pos, body, player := f.player()
			pos.X, pos.Y = tt.playerX, 100
			player.JumpsLeft = 0
			player.WasOnGround = false
			body.VelocityY = 300

			f.input.Press(tt.key)
			f.input.Tap(utils.KeyUp)
			f.step()

			if player.JumpsLeft != f.ctx.Config.Player.MaxJumps-1 {
				t.Errorf("JumpsLeft = %d, want %d", player.JumpsLeft, f.ctx.Config.Player.MaxJumps-1)
			}
			if body.VelocityX != tt.wantVX {
				t.Errorf("vx = %v, want %v", body.VelocityX, tt.wantVX)
			}
			if body.VelocityY != f.ctx.Config.Player.WallJumpVelocity.Y {
				t.Errorf("vy = %v, want %v", body.VelocityY, f.ctx.Config.Player.WallJumpVelocity.Y)
			}
			if !f.particles.IsEmitting(f.ctx.Emitters.WallSlide) {
				t.Errorf("wall slide dust should be emitting")
			}
		})
	}
}

func TestWallSlideCapsFallSpeed(t *testing.T) {
	f := newGameplayFixture(t)
	f.physics.AddSolidRect(400, 0, 18, testGroundY)

	pos, body, player := f.player()
	pos.X, pos.Y = 400-8.4, 100
	player.WasOnGround = false
	body.VelocityY = 300

	f.input.Press(utils.KeyRight)
	f.step()

	if !player.IsWallSliding {
		t.Fatalf("expected wall sliding")
	}
	if body.VelocityY != f.ctx.Config.Player.WallSlideSpeed {
		t.Errorf("vy = %v, want %v", body.VelocityY, f.ctx.Config.Player.WallSlideSpeed)
	}
	if got := MovementStateOf(player, body); got != components.StateWallSliding {
		t.Errorf("state = %v, want WallSliding", got)
	}
	if f.ctx.Movement != components.StateWallSliding {
		t.Errorf("ctx.Movement = %v, want WallSliding", f.ctx.Movement)
	}
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](f.em, f.ctx.Emitters.WallSlide)
	if emitter.FollowOffsetX != -testPlayerSize/2 {
		t.Errorf("right wall dust offset = %v, want %v", emitter.FollowOffsetX, -testPlayerSize/2)
	}
}

func TestHorizontalMovement(t *testing.T) {
	f := newGameplayFixture(t)
	f.steps(3)
	_, body, _ := f.player()
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](f.em, f.ctx.Player)
	anim, _ := ecs.GetComponent[*components.AnimationComponent](f.em, f.ctx.Player)

	f.input.Press(utils.KeyRight)
	f.step()
	if body.AccelerationX != f.ctx.Config.Player.Acceleration || !sprite.FlipX {
		t.Errorf("right: accel=%v flip=%v", body.AccelerationX, sprite.FlipX)
	}
	if anim.Current != ClipWalk {
		t.Errorf("animation = %q, want walk", anim.Current)
	}
	if !f.particles.IsEmitting(f.ctx.Emitters.Running) {
		t.Errorf("running dust should emit while grounded")
	}
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](f.em, f.ctx.Emitters.Running)
	if emitter.FollowOffsetX != -testPlayerSize/2 || emitter.FollowOffsetY != testPlayerSize-2 {
		t.Errorf("running dust offset = (%v, %v)", emitter.FollowOffsetX, emitter.FollowOffsetY)
	}

	f.input.Release(utils.KeyRight)
	f.input.Press(utils.KeyLeft)
	f.step()
	if body.AccelerationX != -f.ctx.Config.Player.Acceleration || sprite.FlipX {
		t.Errorf("left: accel=%v flip=%v", body.AccelerationX, sprite.FlipX)
	}

	f.input.Release(utils.KeyLeft)
	f.step()
	if body.AccelerationX != 0 || body.DragX != f.ctx.Config.Player.Drag {
		t.Errorf("idle: accel=%v drag=%v", body.AccelerationX, body.DragX)
	}
	if anim.Current != ClipIdle {
		t.Errorf("animation = %q, want idle", anim.Current)
	}
	if f.particles.IsEmitting(f.ctx.Emitters.Running) {
		t.Errorf("running dust should stop")
	}
}

func TestLandingPlaysSoundOnce(t *testing.T) {
	f := newGameplayFixture(t)
	pos, body, player := f.player()
	pos.Y = 200
	player.WasOnGround = false

	for i := 0; i < 120 && !body.Blocked.Down; i++ {
		f.step()
	}
	if !body.Blocked.Down {
		t.Fatalf("player never landed")
	}
	f.steps(5)

	if n := f.sound.count(SoundLand); n != 1 {
		t.Errorf("land sound played %d times, want 1", n)
	}
	// 最后一帧空中高度就在地面上方，落差不足以震屏
	if f.camera.IsShaking() {
		t.Errorf("short drop should not shake the camera")
	}
	if anim, _ := ecs.GetComponent[*components.AnimationComponent](f.em, f.ctx.Player); anim.Current != ClipIdle {
		t.Errorf("animation after landing = %q, want idle", anim.Current)
	}
}

func TestLandingShakeAboveThreshold(t *testing.T) {
	f := newGameplayFixture(t)
	pos, _, player := f.player()
	player.WasOnGround = false
	player.LastHeight = pos.Y + f.ctx.Config.Player.ShakeThreshold + 50

	f.step()

	if !f.camera.IsShaking() {
		t.Errorf("expected a landing shake")
	}
}

func TestControllerIgnoresInputAfterFinish(t *testing.T) {
	f := newGameplayFixture(t)
	f.steps(3)
	f.ctx.Won = true

	f.input.Press(utils.KeyRight)
	f.input.Tap(utils.KeyUp)
	f.step()

	_, body, player := f.player()
	if body.AccelerationX != 0 {
		t.Errorf("accel = %v after win", body.AccelerationX)
	}
	if player.JumpsLeft != f.ctx.Config.Player.MaxJumps {
		t.Errorf("jump consumed after win")
	}
	if f.particles.IsEmitting(f.ctx.Emitters.Running) {
		t.Errorf("running dust restarted after win")
	}
}
