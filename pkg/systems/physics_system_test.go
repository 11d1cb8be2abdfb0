package systems

import (
	"math"
	"testing"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
)

const testDT = 1.0 / 60

func addTestBody(t *testing.T, em *ecs.EntityManager, ps *PhysicsSystem, x, y, w, h float64, tag string, body components.BodyComponent) ecs.EntityID {
	t.Helper()
	id := em.CreateEntity()
	body.Width, body.Height = w, h
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &body)
	if !ps.AddBody(id, tag) {
		t.Fatalf("AddBody failed")
	}
	return id
}

func TestPhysicsFallsOntoGround(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewPhysicsSystem(em, 400, 200, 18, 1500)
	ps.AddSolidRect(0, 100, 400, 18)

	id := addTestBody(t, em, ps, 50, 50, 10, 10, components.TagPlayer, components.BodyComponent{
		AllowGravity: true, CollideTiles: true, CollideWorldBounds: true, MaxVelocityY: 1000,
	})

	for i := 0; i < 120; i++ {
		ps.Update(testDT)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	if math.Abs(body.Bottom(pos)-100) > 1e-6 {
		t.Errorf("body should rest on the ground, bottom = %v", body.Bottom(pos))
	}
	if !body.Blocked.Down {
		t.Errorf("expected Blocked.Down while resting")
	}
	if body.Blocked.Left || body.Blocked.Right {
		t.Errorf("unexpected side contact: %+v", body.Blocked)
	}
}

func TestPhysicsWallContactOnlyWhilePushing(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewPhysicsSystem(em, 400, 200, 18, 0)
	ps.AddSolidRect(100, 0, 18, 200)

	id := addTestBody(t, em, ps, 80, 50, 10, 10, components.TagPlayer, components.BodyComponent{
		CollideTiles: true, AccelerationX: 400, DragX: 500, MaxVelocityX: 300,
	})

	for i := 0; i < 60; i++ {
		ps.Update(testDT)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	if !body.Blocked.Right {
		t.Fatalf("expected Blocked.Right while accelerating into the wall")
	}
	if math.Abs(pos.X+5-100) > 1e-6 {
		t.Errorf("right edge should touch the wall, got %v", pos.X+5)
	}

	// 松开方向键：阻尼让速度为 0，接触消失
	body.AccelerationX = 0
	ps.Update(testDT)
	if body.Blocked.Right {
		t.Errorf("contact should clear once the body stops pushing")
	}
}

func TestPhysicsDragAndMaxVelocity(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewPhysicsSystem(em, 10000, 200, 18, 0)

	id := addTestBody(t, em, ps, 100, 50, 10, 10, components.TagPlayer, components.BodyComponent{
		AccelerationX: 400, DragX: 500, MaxVelocityX: 300,
	})
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)

	for i := 0; i < 120; i++ {
		ps.Update(testDT)
	}
	if body.VelocityX != 300 {
		t.Errorf("velocity should clamp to 300, got %v", body.VelocityX)
	}

	body.AccelerationX = 0
	for i := 0; i < 60; i++ {
		ps.Update(testDT)
	}
	if body.VelocityX != 0 {
		t.Errorf("drag should stop the body within a second, got %v", body.VelocityX)
	}
}

func TestPhysicsWorldBounds(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewPhysicsSystem(em, 200, 200, 18, 0)

	id := addTestBody(t, em, ps, 10, 50, 10, 10, components.TagPlayer, components.BodyComponent{
		VelocityX: -600, CollideWorldBounds: true,
	})
	ps.Update(testDT)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	if pos.X != 5 || !body.Blocked.Left || body.VelocityX != 0 {
		t.Errorf("expected clamp at left bound, x=%v blocked=%+v vx=%v", pos.X, body.Blocked, body.VelocityX)
	}
}

func TestPhysicsPaused(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewPhysicsSystem(em, 400, 400, 18, 1500)
	id := addTestBody(t, em, ps, 50, 50, 10, 10, components.TagPlayer, components.BodyComponent{AllowGravity: true})

	ps.Pause()
	ps.Update(testDT)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.Y != 50 || !ps.Paused() {
		t.Errorf("paused world should not move bodies")
	}
	ps.Resume()
	ps.Update(testDT)
	if pos.Y == 50 {
		t.Errorf("resumed world should move bodies")
	}
}

func TestPhysicsOverlapHandler(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewPhysicsSystem(em, 400, 400, 18, 0)

	player := addTestBody(t, em, ps, 50, 50, 16, 24, components.TagPlayer, components.BodyComponent{})
	coinA := addTestBody(t, em, ps, 55, 50, 18, 18, components.TagCoin, components.BodyComponent{Static: true})
	addTestBody(t, em, ps, 58, 50, 18, 18, components.TagCoin, components.BodyComponent{Static: true})
	far := addTestBody(t, em, ps, 300, 300, 18, 18, components.TagCoin, components.BodyComponent{Static: true})
	// 刚好相切不算重叠
	addTestBody(t, em, ps, 50+8+9, 50, 18, 18, components.TagCoin, components.BodyComponent{Static: true})

	var hits []ecs.EntityID
	ps.AddOverlap(components.TagPlayer, components.TagCoin, func(a, b ecs.EntityID) {
		if a != player {
			t.Errorf("handler got a=%d, want player", a)
		}
		hits = append(hits, b)
		ps.RemoveBody(b)
	})

	ps.Update(testDT)
	if len(hits) != 2 || hits[0] != coinA {
		t.Fatalf("expected two overlapping coins in id order, got %v", hits)
	}

	ps.Update(testDT)
	if len(hits) != 2 {
		t.Errorf("removed bodies must not overlap again, got %v", hits)
	}
	if ps.Overlapping(player, far) {
		t.Errorf("far coin should not overlap")
	}
}
