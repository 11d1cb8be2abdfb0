package components

import "github.com/solarlune/resolv"

// 碰撞标签（用于 resolv 空间查询）
const (
	TagSolid  = "solid"
	TagPlayer = "player"
	TagCoin   = "coin"
	TagEnemy  = "enemy"
)

// Blocked 记录本物理步中各方向的接触状态
// 每一步根据尝试的位移重新计算，只在接触持续时为 true
type Blocked struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// Any 是否有任意方向接触
func (b Blocked) Any() bool {
	return b.Left || b.Right || b.Up || b.Down
}

// BodyComponent 街机物理刚体（轴对齐矩形）
//
// 矩形大小为 Width x Height，中心 = PositionComponent + (OffsetX, OffsetY)。
// 静态刚体不参与积分，只用于重叠检测。
type BodyComponent struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64

	VelocityX     float64
	VelocityY     float64
	AccelerationX float64
	DragX         float64
	MaxVelocityX  float64 // 0 表示不限制
	MaxVelocityY  float64

	Static             bool
	AllowGravity       bool
	CollideWorldBounds bool
	CollideTiles       bool // 是否与地形图块碰撞

	Blocked Blocked

	// Object 刚体在碰撞空间中的代理对象
	Object *resolv.Object
}

// Bounds 返回刚体矩形（左上角与宽高）
func (b *BodyComponent) Bounds(pos *PositionComponent) (x, y, w, h float64) {
	cx := pos.X + b.OffsetX
	cy := pos.Y + b.OffsetY
	return cx - b.Width/2, cy - b.Height/2, b.Width, b.Height
}

// Bottom 刚体底边 Y 坐标
func (b *BodyComponent) Bottom(pos *PositionComponent) float64 {
	return pos.Y + b.OffsetY + b.Height/2
}
