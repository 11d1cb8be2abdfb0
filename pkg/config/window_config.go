package config

// 窗口与画布配置常量

const (
	// GameTitle 窗口标题
	GameTitle = "Magical Coin Quest"

	// ScreenWidth 逻辑画布宽度（像素）
	ScreenWidth = 1280

	// ScreenHeight 逻辑画布高度（像素）
	ScreenHeight = 720

	// TickRate 每秒逻辑帧数
	TickRate = 60

	// AudioSampleRate 音频上下文采样率
	AudioSampleRate = 48000
)

// Embedded data paths.
const (
	ResourcesConfigPath = "data/config/resources.yaml"
	GameplayConfigPath  = "data/config/gameplay.yaml"
	ParticlesDir        = "data/particles"
)
