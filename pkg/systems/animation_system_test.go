package systems

import (
	"testing"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
)

func newTestAnimations(t *testing.T) *game.AnimationRegistry {
	t.Helper()
	reg := game.NewAnimationRegistry()
	clips := []game.Clip{
		{Key: "walk", Texture: "platformer_characters", Frames: []string{"tile_0000.png", "tile_0001.png"}, FrameRate: 15, Repeat: -1},
		{Key: "idle", Texture: "platformer_characters", Frames: []string{"tile_0000.png"}, Repeat: -1},
		{Key: "jump", Texture: "platformer_characters", Frames: []string{"tile_0001.png"}},
	}
	for _, c := range clips {
		if err := reg.Create(c); err != nil {
			t.Fatalf("Create(%s) failed: %v", c.Key, err)
		}
	}
	return reg
}

func TestAnimationLoops(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewAnimationSystem(em, newTestAnimations(t))

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.AnimationComponent{})
	sprite := &components.SpriteComponent{}
	ecs.AddComponent(em, id, sprite)

	sys.Play(id, "walk", true)
	if sprite.Frame != "tile_0000.png" || sprite.Texture != "platformer_characters" {
		t.Fatalf("Play should show the first frame, got %s/%s", sprite.Texture, sprite.Frame)
	}

	sys.Update(1.0 / 15)
	if sprite.Frame != "tile_0001.png" {
		t.Errorf("expected second frame, got %s", sprite.Frame)
	}
	sys.Update(1.0 / 15)
	if sprite.Frame != "tile_0000.png" {
		t.Errorf("looping clip should wrap, got %s", sprite.Frame)
	}

	// 正在播放时再次请求不会重置进度
	sys.Update(0.5 / 15)
	sys.Play(id, "walk", true)
	anim, _ := ecs.GetComponent[*components.AnimationComponent](em, id)
	if anim.Elapsed == 0 {
		t.Errorf("ignoreIfPlaying should keep the current progress")
	}
}

func TestAnimationNonLoopFinishes(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewAnimationSystem(em, newTestAnimations(t))

	id := em.CreateEntity()
	anim := &components.AnimationComponent{}
	ecs.AddComponent(em, id, anim)
	ecs.AddComponent(em, id, &components.SpriteComponent{})

	sys.Play(id, "jump", true)
	sys.Update(1)
	if anim.Playing || !anim.Finished || anim.FrameIndex != 0 {
		t.Errorf("jump should finish on its only frame: %+v", anim)
	}

	sys.Play(id, "missing", false)
	if anim.Current != "jump" {
		t.Errorf("unknown clip should leave the animation untouched")
	}
}
