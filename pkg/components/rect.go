package components

import "image/color"

// RectComponent 纯色矩形
//
// 位置由 PositionComponent 给出，OriginX/OriginY 为锚点（0.5 居中，0 左上）。
type RectComponent struct {
	Width   float64
	Height  float64
	Color   color.RGBA
	Alpha   float64
	Scale   float64
	OriginX float64
	OriginY float64

	Depth        float64
	ScrollFactor float64
	Visible      bool
}
