package config

// 主菜单配置常量

const (
	// MenuBackgroundColor 背景颜色 #000033
	MenuBackgroundColor uint32 = 0x000033

	// MenuTitleText 标题
	MenuTitleText = "Magical Coin Quest"

	// MenuTitleFontSize 标题字号
	MenuTitleFontSize float64 = 64

	// MenuTitleY 标题 Y 坐标（相对屏幕高度的比例）
	MenuTitleY float64 = 1.0 / 3

	// MenuTitlePulseAlpha 标题呼吸动画的目标透明度
	MenuTitlePulseAlpha float64 = 0.7

	// MenuTitlePulseMs 标题呼吸动画单程时长
	MenuTitlePulseMs float64 = 1500

	// MenuStoryFontSize 故事文字字号
	MenuStoryFontSize float64 = 24

	// MenuStoryY 故事文字 Y 坐标（相对屏幕高度的比例）
	MenuStoryY float64 = 0.5

	// MenuButtonY 按钮 Y 坐标（相对屏幕高度的比例）
	MenuButtonY float64 = 0.7

	MenuButtonWidth  float64 = 200
	MenuButtonHeight float64 = 60
	MenuGlowWidth    float64 = 210
	MenuGlowHeight   float64 = 70

	MenuButtonColor      uint32 = 0x00aa00
	MenuButtonHoverColor uint32 = 0x00cc00
	MenuGlowColor        uint32 = 0x00ff00

	MenuGlowAlpha      float64 = 0.2
	MenuGlowHoverAlpha float64 = 0.4

	// MenuButtonLabel 按钮文字
	MenuButtonLabel = "PLAY"

	// MenuButtonFontSize 按钮文字字号
	MenuButtonFontSize float64 = 32

	// MenuHoverScale 悬停时按钮缩放
	MenuHoverScale float64 = 1.1

	// MenuHoverTweenMs 缩放动画时长
	MenuHoverTweenMs float64 = 100

	// MenuFadeMs 点击后镜头淡出时长
	MenuFadeMs float64 = 500

	// MenuStartDelayMs 淡出后进入关卡前的延迟
	MenuStartDelayMs float64 = 500

	MenuHoverVolume float64 = 0.2
	MenuClickVolume float64 = 0.3
)

// MenuStoryText 菜单故事文字
const MenuStoryText = "The kingdom needs your help!\nCollect all the magical coins to restore balance."
