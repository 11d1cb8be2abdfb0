package systems

import (
	"math"
	"testing"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
)

func newTestCamera(em *ecs.EntityManager) *CameraSystem {
	cs := NewCameraSystem(em, 1280, 720, 1)
	cs.SetZoom(2)
	cs.SetBounds(0, 0, 1800, 540)
	return cs
}

func TestCameraStartFollowCentres(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := newTestCamera(em)

	target := em.CreateEntity()
	ecs.AddComponent(em, target, &components.PositionComponent{X: 900, Y: 300})
	cs.StartFollow(target, 0.1, 0.1)

	cam := cs.Camera()
	if cam.ViewWidth() != 640 || cam.ViewHeight() != 360 {
		t.Fatalf("unexpected view size %vx%v", cam.ViewWidth(), cam.ViewHeight())
	}
	if cam.ScrollX != 580 || cam.ScrollY != 120 {
		t.Errorf("StartFollow should centre on the target, got (%v,%v)", cam.ScrollX, cam.ScrollY)
	}
}

func TestCameraBoundsClamp(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := newTestCamera(em)

	cs.SetScroll(-100, -100)
	cam := cs.Camera()
	if cam.ScrollX != 0 || cam.ScrollY != 0 {
		t.Errorf("scroll should clamp to the top-left bound, got (%v,%v)", cam.ScrollX, cam.ScrollY)
	}
	cs.SetScroll(5000, 5000)
	if cam.ScrollX != 1800-640 || cam.ScrollY != 540-360 {
		t.Errorf("scroll should clamp to the bottom-right bound, got (%v,%v)", cam.ScrollX, cam.ScrollY)
	}
}

func TestCameraDeadzone(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := newTestCamera(em)

	target := em.CreateEntity()
	pos := &components.PositionComponent{X: 900, Y: 300}
	ecs.AddComponent(em, target, pos)
	cs.StartFollow(target, 0.1, 0.1)
	cs.SetDeadzone(200, 100)
	cam := cs.Camera()

	// 死区内移动不会滚动
	pos.X += 90
	cs.Update(testDT)
	if cam.ScrollX != 580 {
		t.Errorf("movement inside the deadzone should not scroll, got %v", cam.ScrollX)
	}

	// 超出死区右边 50px，按 lerp 0.1 移动 5px
	pos.X = 900 + 150
	cs.Update(testDT)
	if math.Abs(cam.ScrollX-585) > 1e-9 {
		t.Errorf("expected lerped scroll 585, got %v", cam.ScrollX)
	}
}

func TestCameraFollowOffset(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewCameraSystem(em, 1280, 720, 1)
	cs.SetZoom(2)

	target := em.CreateEntity()
	ecs.AddComponent(em, target, &components.PositionComponent{X: 1000, Y: 300})
	cam := cs.Camera()
	cam.FollowOffsetX = 100
	cs.StartFollow(target, 1, 1)
	if cam.ScrollX != 1000-100-320 {
		t.Errorf("follow point should be target minus offset, got %v", cam.ScrollX)
	}
}

func TestCameraShake(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := newTestCamera(em)

	cs.Shake(0.1, 0.01)
	if !cs.IsShaking() {
		t.Fatalf("expected shaking")
	}
	cs.Update(testDT)
	cam := cs.Camera()
	if math.Abs(cam.ShakeOffsetX) > 0.01*1280 || math.Abs(cam.ShakeOffsetY) > 0.01*720 {
		t.Errorf("shake offset out of range: (%v,%v)", cam.ShakeOffsetX, cam.ShakeOffsetY)
	}

	// 震屏期间的新请求被忽略
	cs.Shake(5, 0.5)
	if cam.ShakeDuration != 0.1 {
		t.Errorf("shake should not restart while running")
	}

	for i := 0; i < 10; i++ {
		cs.Update(testDT)
	}
	if cs.IsShaking() || cam.ShakeOffsetX != 0 || cam.ShakeOffsetY != 0 {
		t.Errorf("shake should end and reset offsets")
	}
}

func TestCameraFadeOut(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := newTestCamera(em)

	cs.FadeOut(0.5)
	cs.Update(0.25)
	cam := cs.Camera()
	if math.Abs(cam.FadeAlpha-0.5) > 1e-9 || cam.FadeComplete {
		t.Errorf("half-way fade alpha = %v", cam.FadeAlpha)
	}
	cs.Update(0.3)
	if cam.FadeAlpha != 1 || !cam.FadeComplete {
		t.Errorf("fade should complete, alpha=%v", cam.FadeAlpha)
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := &components.CameraComponent{Zoom: 2, ScrollX: 100, ScrollY: 50, ScreenWidth: 1280, ScreenHeight: 720}
	x, y := WorldToScreen(cam, 150, 60, 1)
	if x != 100 || y != 20 {
		t.Errorf("world point mapped to (%v,%v), want (100,20)", x, y)
	}
	x, y = WorldToScreen(cam, 16, 16, 0)
	if x != 16 || y != 16 {
		t.Errorf("fixed element should use screen coordinates, got (%v,%v)", x, y)
	}
}
