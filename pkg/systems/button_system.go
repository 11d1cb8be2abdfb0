package systems

import (
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责检测指针进入/离开按钮区域和按下，并触发对应回调
//
// 按钮区域以 PositionComponent 为中心，使用屏幕坐标。
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	input         utils.InputSource
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager, input utils.InputSource) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 更新按钮交互状态
func (s *ButtonSystem) Update(deltaTime float64) {
	px, py := s.input.PointerPosition()
	pressed := s.input.IsPointerJustPressed()

	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		// 禁用状态不响应交互
		if !button.Enabled {
			continue
		}

		inside := isPointInButton(float64(px), float64(py), pos.X, pos.Y, button.Width, button.Height)
		switch {
		case inside && !button.Hovered:
			button.Hovered = true
			if button.OnOver != nil {
				button.OnOver()
			}
		case !inside && button.Hovered:
			button.Hovered = false
			if button.OnOut != nil {
				button.OnOut()
			}
		}

		if inside && pressed && button.OnDown != nil {
			button.OnDown()
		}
	}
}

// isPointInButton 检测点是否在以 (cx, cy) 为中心的按钮范围内
func isPointInButton(x, y, cx, cy, w, h float64) bool {
	return x >= cx-w/2 &&
		x <= cx+w/2 &&
		y >= cy-h/2 &&
		y <= cy+h/2
}
