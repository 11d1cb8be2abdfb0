package config

// 关卡 HUD 配置常量

const (
	HUDMargin float64 = 16

	HUDCoinFontSize  float64 = 32
	HUDStoryFontSize float64 = 16

	// HUDStoryText 关卡内故事提示
	HUDStoryText = "Collect all the magical coins to restore balance to the kingdom!"

	// 生命心形图标
	HUDHeartSize    float64 = 32
	HUDHeartPadding float64 = 5
	HUDHeartY       float64 = 60
	HUDHeartScale   float64 = 0.75
	HUDHeartFrame           = 151 // tilemap_sheet 中的金币图块

	// 头顶血条
	HealthBarWidth     float64 = 50
	HealthBarHeight    float64 = 6
	HealthBarPadding   float64 = 1
	HealthBarOffsetY   float64 = -10
	HealthBarFillColor uint32  = 0x00ff00
	HealthBarBgColor   uint32  = 0x000000

	// 结算界面
	WinOverlayAlpha     float64 = 0.7
	WinTitleText                = "Victory!\nYou have restored balance to the kingdom!"
	WinTitleFontSize    float64 = 24
	WinRestartText              = "Press R to play again"
	WinRestartFontSize  float64 = 16
	GameOverText                = "GAME OVER\nPress R to restart"
	GameOverFontSize    float64 = 32
	DamageTintColor     uint32  = 0xff0000
	VictoryVolume       float64 = 0.5
	CoinVolume          float64 = 0.4
	JumpVolume          float64 = 0.3
	LandVolume          float64 = 0.2
)

// 渲染层级
const (
	DepthSky       float64 = 0
	DepthTrees     float64 = 1
	DepthAmbient   float64 = 1.5
	DepthGround    float64 = 2
	DepthCoins     float64 = 3
	DepthEnemies   float64 = 3
	DepthVFX       float64 = 3.5
	DepthPlayer    float64 = 4
	DepthHealthBar float64 = 10
	DepthHUD       float64 = 10
	DepthOverlay   float64 = 19
	DepthHUDTop    float64 = 20
)
