package components

// ButtonComponent 可点击区域（以 PositionComponent 为中心，屏幕坐标）
type ButtonComponent struct {
	Width   float64
	Height  float64
	Enabled bool
	Hovered bool

	OnOver func()
	OnOut  func()
	OnDown func()
}
