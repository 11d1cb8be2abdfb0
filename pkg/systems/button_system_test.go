package systems

import (
	"testing"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/utils"
)

func TestButtonHoverAndClick(t *testing.T) {
	em := ecs.NewEntityManager()
	input := utils.NewFakeInput()
	sys := NewButtonSystem(em, input)

	var over, out, down int
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 640, Y: 504})
	button := &components.ButtonComponent{
		Width: 200, Height: 60, Enabled: true,
		OnOver: func() { over++ },
		OnOut:  func() { out++ },
		OnDown: func() { down++ },
	}
	ecs.AddComponent(em, id, button)

	input.PointerX, input.PointerY = 10, 10
	sys.Update(testDT)
	if over != 0 || out != 0 {
		t.Fatalf("no events expected outside the button")
	}

	input.PointerX, input.PointerY = 700, 520
	sys.Update(testDT)
	sys.Update(testDT)
	if over != 1 || !button.Hovered {
		t.Errorf("over = %d, hovered = %v; want a single over event", over, button.Hovered)
	}

	input.Clicked = true
	sys.Update(testDT)
	input.EndFrame()
	if down != 1 {
		t.Errorf("down = %d, want 1", down)
	}

	input.PointerX = 900
	sys.Update(testDT)
	if out != 1 || button.Hovered {
		t.Errorf("out = %d, hovered = %v", out, button.Hovered)
	}

	input.Clicked = true
	sys.Update(testDT)
	if down != 1 {
		t.Errorf("click outside should not fire OnDown")
	}
}

func TestDisabledButtonIgnoresPointer(t *testing.T) {
	em := ecs.NewEntityManager()
	input := utils.NewFakeInput()
	sys := NewButtonSystem(em, input)

	fired := false
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 100, Y: 100})
	ecs.AddComponent(em, id, &components.ButtonComponent{Width: 50, Height: 50, OnDown: func() { fired = true }})

	input.PointerX, input.PointerY = 100, 100
	input.Clicked = true
	sys.Update(testDT)
	if fired {
		t.Errorf("disabled button fired")
	}
}
