package components

// PlayerComponent 玩家跳跃与墙面滑行状态
type PlayerComponent struct {
	JumpsLeft     int
	IsWallSliding bool
	WasOnGround   bool
	LastHeight    float64 // 最近一次离地时的 Y 坐标
}

// MovementState 由接触状态和滑墙标记推导出的移动状态
type MovementState int

const (
	StateGrounded MovementState = iota
	StateAirborne
	StateWallSliding
)

func (s MovementState) String() string {
	switch s {
	case StateGrounded:
		return "Grounded"
	case StateWallSliding:
		return "WallSliding"
	default:
		return "Airborne"
	}
}
