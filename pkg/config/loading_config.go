package config

// Loading Scene 配置常量

const (
	// LoadingBarWidth 进度条宽度
	LoadingBarWidth float64 = 480

	// LoadingBarHeight 进度条高度
	LoadingBarHeight float64 = 24

	// LoadingBarY 进度条 Y 坐标（中心）
	LoadingBarY float64 = ScreenHeight / 2

	// LoadingTextOffsetY 文字提示相对进度条的 Y 偏移
	LoadingTextOffsetY float64 = -40

	// LoadingTextFontSize 加载文字字体大小
	LoadingTextFontSize float64 = 24

	// LoadingAssetsPerFrame 每帧加载的资源数量
	LoadingAssetsPerFrame = 1
)
