package components

import "image/color"

// TextComponent 文字显示
//
// 位置由 PositionComponent 给出；Centered 时以该点为中心对齐，否则为左上角。
type TextComponent struct {
	Text     string
	FontSize float64
	Bold     bool
	Color    color.RGBA
	Centered bool

	// Background 非 nil 时在文字后绘制底色
	Background *color.RGBA
	PaddingX   float64
	PaddingY   float64

	// WrapWidth 大于 0 时按该宽度（未缩放像素）自动换行
	WrapWidth float64

	Alpha        float64
	Scale        float64
	Depth        float64
	ScrollFactor float64
	Visible      bool
}
