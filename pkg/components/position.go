package components

// PositionComponent 实体中心点的世界坐标（像素）
type PositionComponent struct {
	X float64
	Y float64
}
