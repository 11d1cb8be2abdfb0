package components

// AnimationComponent 帧动画播放状态
type AnimationComponent struct {
	Current    string  // 当前动画 ID，空表示未播放
	FrameIndex int     // 当前帧下标
	Elapsed    float64 // 当前帧已持续时间（秒）
	Playing    bool
	Finished   bool // 非循环动画已播完
}
