package components

// EnemyComponent 巡逻敌人
type EnemyComponent struct {
	Direction      float64 // +1 向右，-1 向左
	StartX         float64 // 当前巡逻段的起点
	PatrolDistance float64
	Speed          float64
}
