package entities

import (
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/utils"
)

// MenuButton 主菜单按钮的三个部件
type MenuButton struct {
	Button ecs.EntityID // 可点击的填充矩形
	Glow   ecs.EntityID // 外圈光晕
	Label  ecs.EntityID // 按钮文字
}

// NewMenuButton 在 (x, y) 创建居中按钮，回调由场景设置
func NewMenuButton(em *ecs.EntityManager, x, y float64, label string) MenuButton {
	var b MenuButton

	b.Button = NewRectEntity(em, x, y, config.MenuButtonWidth, config.MenuButtonHeight, RectStyle{
		Color:   utils.HexColor(config.MenuButtonColor),
		OriginX: 0.5,
		OriginY: 0.5,
		Depth:   2,
	})
	ecs.AddComponent(em, b.Button, &components.ButtonComponent{
		Width:   config.MenuButtonWidth,
		Height:  config.MenuButtonHeight,
		Enabled: true,
	})

	b.Glow = NewRectEntity(em, x, y, config.MenuGlowWidth, config.MenuGlowHeight, RectStyle{
		Color:   utils.HexColor(config.MenuGlowColor),
		Alpha:   config.MenuGlowAlpha,
		OriginX: 0.5,
		OriginY: 0.5,
		Depth:   3,
	})

	b.Label = NewTextEntity(em, x, y, label, TextStyle{
		FontSize: config.MenuButtonFontSize,
		Centered: true,
		Depth:    4,
	})
	return b
}
