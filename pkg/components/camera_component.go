package components

import "github.com/gonewx/coinquest/pkg/ecs"

// CameraComponent 镜头状态
//
// ScrollX/ScrollY 是视口左上角的世界坐标；ViewWidth/ViewHeight 是缩放后视口覆盖的世界尺寸。
type CameraComponent struct {
	ScrollX float64
	ScrollY float64
	Zoom    float64

	// ScreenWidth/ScreenHeight 画布尺寸（像素）
	ScreenWidth  float64
	ScreenHeight float64

	// 跟随
	Following     bool
	FollowTarget  ecs.EntityID
	LerpX         float64
	LerpY         float64
	FollowOffsetX float64
	FollowOffsetY float64
	DeadzoneW     float64 // 0 表示无死区
	DeadzoneH     float64

	// 边界（世界坐标）
	HasBounds bool
	BoundsX   float64
	BoundsY   float64
	BoundsW   float64
	BoundsH   float64

	// 震屏
	ShakeDuration  float64 // 秒
	ShakeElapsed   float64
	ShakeIntensity float64
	ShakeOffsetX   float64
	ShakeOffsetY   float64

	// 淡出
	Fading       bool
	FadeDuration float64
	FadeElapsed  float64
	FadeAlpha    float64 // 黑色遮罩透明度
	FadeComplete bool
}

// ViewWidth 视口覆盖的世界宽度
func (c *CameraComponent) ViewWidth() float64 {
	return c.ScreenWidth / c.Zoom
}

// ViewHeight 视口覆盖的世界高度
func (c *CameraComponent) ViewHeight() float64 {
	return c.ScreenHeight / c.Zoom
}

// MidPoint 视口中心的世界坐标
func (c *CameraComponent) MidPoint() (float64, float64) {
	return c.ScrollX + c.ViewWidth()/2, c.ScrollY + c.ViewHeight()/2
}
