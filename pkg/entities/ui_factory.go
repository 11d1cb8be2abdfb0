// Package entities 提供场景中各类实体的工厂函数
//
// 工厂只负责组装组件；需要进入碰撞空间的实体由场景在创建后调用
// PhysicsSystem.AddBody 登记。
package entities

import (
	"image/color"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
)

// White 默认文字颜色
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Black 文字底色与遮罩颜色
var Black = color.RGBA{A: 255}

// TextStyle 文字实体的外观
type TextStyle struct {
	FontSize   float64
	Bold       bool
	Color      color.RGBA
	Background *color.RGBA
	PaddingX   float64
	PaddingY   float64
	WrapWidth  float64
	Centered   bool

	Depth float64
	// ScrollFactor 0 表示固定在屏幕上（HUD）
	ScrollFactor float64
	Hidden       bool
}

// NewTextEntity 创建文字实体
func NewTextEntity(em *ecs.EntityManager, x, y float64, content string, style TextStyle) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})

	c := style.Color
	if c.A == 0 {
		c = White
	}
	ecs.AddComponent(em, id, &components.TextComponent{
		Text:         content,
		FontSize:     style.FontSize,
		Bold:         style.Bold,
		Color:        c,
		Centered:     style.Centered,
		Background:   style.Background,
		PaddingX:     style.PaddingX,
		PaddingY:     style.PaddingY,
		WrapWidth:    style.WrapWidth,
		Alpha:        1,
		Scale:        1,
		Depth:        style.Depth,
		ScrollFactor: style.ScrollFactor,
		Visible:      !style.Hidden,
	})
	return id
}

// RectStyle 矩形实体的外观
type RectStyle struct {
	Color   color.RGBA
	Alpha   float64 // 0 视为 1
	OriginX float64
	OriginY float64

	Depth        float64
	ScrollFactor float64
	Hidden       bool
}

// NewRectEntity 创建纯色矩形实体
func NewRectEntity(em *ecs.EntityManager, x, y, w, h float64, style RectStyle) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})

	alpha := style.Alpha
	if alpha == 0 {
		alpha = 1
	}
	ecs.AddComponent(em, id, &components.RectComponent{
		Width:        w,
		Height:       h,
		Color:        style.Color,
		Alpha:        alpha,
		Scale:        1,
		OriginX:      style.OriginX,
		OriginY:      style.OriginY,
		Depth:        style.Depth,
		ScrollFactor: style.ScrollFactor,
		Visible:      !style.Hidden,
	})
	return id
}
