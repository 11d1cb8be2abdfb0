package components

// TimerComponent 一次性延迟回调
type TimerComponent struct {
	Name        string  // 计时器名称，如 "menu_start"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
	OnComplete  func()
}
