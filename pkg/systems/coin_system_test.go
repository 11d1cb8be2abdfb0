package systems

import (
	"testing"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
)

func TestCoinText(t *testing.T) {
	if got := CoinText(3, 7); got != "Coins: 3/7" {
		t.Errorf("CoinText = %q", got)
	}
}

func TestCollectFiveCoinsWinsOnce(t *testing.T) {
	f := newGameplayFixture(t)
	coins := make([]ecs.EntityID, 0, 5)
	for i := 0; i < 5; i++ {
		coins = append(coins, f.addCoin(t, 300+float64(i)*40, 200))
	}
	f.particles.Start(f.ctx.Emitters.Running)
	f.particles.Start(f.ctx.Emitters.WallSlide)

	for i := 0; i < 4; i++ {
		if f.coins.Collect(coins[i]) {
			t.Fatalf("coin %d should not win", i+1)
		}
	}
	if f.ctx.Won || f.physics.Paused() || isVisible(f.em, f.ctx.HUD.WinText) {
		t.Fatalf("no win expected after 4 of 5 coins")
	}

	if !f.coins.Collect(coins[4]) {
		t.Fatalf("fifth coin should win")
	}
	if !f.ctx.Won || !f.physics.Paused() {
		t.Errorf("win should pause physics")
	}
	for _, id := range f.ctx.Emitters.All() {
		if f.particles.IsEmitting(id) {
			t.Errorf("emitter %d still emitting after win", id)
		}
	}
	for _, id := range []ecs.EntityID{f.ctx.HUD.WinOverlay, f.ctx.HUD.WinText, f.ctx.HUD.RestartText} {
		if !isVisible(f.em, id) {
			t.Errorf("win entity %d should be visible", id)
		}
	}
	text, _ := ecs.GetComponent[*components.TextComponent](f.em, f.ctx.HUD.CoinText)
	if text.Text != "Coins: 5/5" {
		t.Errorf("coin text = %q", text.Text)
	}

	if f.coins.Collect(coins[4]) {
		t.Errorf("collecting the same coin twice should not win again")
	}
	if f.ctx.CoinsCollected != 5 {
		t.Errorf("CoinsCollected = %d, want 5", f.ctx.CoinsCollected)
	}
	if n := f.sound.count(SoundVictory); n != 1 {
		t.Errorf("victory sound played %d times, want 1", n)
	}
	if n := f.sound.count(SoundCoin); n != 5 {
		t.Errorf("coin sound played %d times, want 5", n)
	}
}

func TestWinZeroesPlayerVelocity(t *testing.T) {
	f := newGameplayFixture(t)
	coin := f.addCoin(t, 500, 200)
	_, body, _ := f.player()
	body.VelocityX, body.VelocityY = 120, -300

	f.coins.Collect(coin)

	if body.VelocityX != 0 || body.VelocityY != 0 {
		t.Errorf("velocity = (%v, %v), want zero", body.VelocityX, body.VelocityY)
	}
}

func TestCoinCollectedByOverlap(t *testing.T) {
	f := newGameplayFixture(t)
	pos, _, _ := f.player()
	coin := f.addCoin(t, pos.X, pos.Y)
	f.addCoin(t, 700, 100)

	f.step()
	f.step()

	if f.ctx.CoinsCollected != 1 {
		t.Fatalf("CoinsCollected = %d, want 1", f.ctx.CoinsCollected)
	}
	if f.em.Exists(coin) {
		t.Errorf("collected coin should be destroyed")
	}
	if f.sound.count(SoundCoin) != 1 {
		t.Errorf("coin sound should play once")
	}
}

func TestCoinCollectKeepsCameraScroll(t *testing.T) {
	f := newGameplayFixture(t)
	coin := f.addCoin(t, 500, 200)
	f.addCoin(t, 600, 200)
	cam := f.camera.Camera()
	cam.ScrollX, cam.ScrollY = 42, 17

	f.coins.Collect(coin)

	if cam.ScrollX != 42 || cam.ScrollY != 17 {
		t.Errorf("scroll = (%v, %v), want (42, 17)", cam.ScrollX, cam.ScrollY)
	}
}
