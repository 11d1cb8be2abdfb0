package components

import "image/color"

// SpriteComponent 存储实体的视觉表现
//
// Texture/Frame 是资源管理器中的纹理 ID 与帧名，绘制时再解析为图像；
// 资源缺失时按 Width x Height 绘制 Placeholder 颜色的矩形。
type SpriteComponent struct {
	Texture string
	Frame   string

	Width  float64
	Height float64

	FlipX   bool
	Visible bool
	Alpha   float64
	ScaleX  float64
	ScaleY  float64

	// Tint 非 nil 时对图像着色
	Tint *color.RGBA

	// Additive 加色混合（粒子）
	Additive bool

	Depth float64

	// ScrollFactor 镜头滚动影响系数：1 跟随世界，0 固定在屏幕
	ScrollFactor float64

	Placeholder color.RGBA
}
