package systems

import (
	"math"
	"math/rand"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/utils"
)

// CameraSystem 管理场景主镜头：跟随、死区、插值、边界、震屏和淡出。
//
// ScrollX/ScrollY 是视口左上角的世界坐标。跟随点 = 目标位置 − FollowOffset；
// 跟随点离开以视口中心为中心的死区时，镜头按 Lerp 系数把它拉回死区内。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
	rng           *rand.Rand
}

// NewCameraSystem 创建镜头系统并创建镜头实体。
func NewCameraSystem(em *ecs.EntityManager, screenW, screenH float64, seed int64) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		rng:           rand.New(rand.NewSource(seed)),
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Zoom:         1,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		LerpX:        1,
		LerpY:        1,
	})
	return cs
}

// Entity 镜头实体ID
func (cs *CameraSystem) Entity() ecs.EntityID {
	return cs.cameraEntity
}

// Camera 镜头组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return cam
}

// SetZoom 设置缩放
func (cs *CameraSystem) SetZoom(zoom float64) {
	if zoom <= 0 {
		zoom = 1
	}
	cs.Camera().Zoom = zoom
}

// SetBounds 设置镜头可移动的世界范围
func (cs *CameraSystem) SetBounds(x, y, w, h float64) {
	cam := cs.Camera()
	cam.HasBounds = true
	cam.BoundsX, cam.BoundsY, cam.BoundsW, cam.BoundsH = x, y, w, h
	cs.clamp(cam)
}

// SetDeadzone 设置死区尺寸（世界像素），0 表示关闭
func (cs *CameraSystem) SetDeadzone(w, h float64) {
	cam := cs.Camera()
	cam.DeadzoneW, cam.DeadzoneH = w, h
}

// SetScroll 直接设置滚动位置（受边界限制）
func (cs *CameraSystem) SetScroll(x, y float64) {
	cam := cs.Camera()
	cam.ScrollX, cam.ScrollY = x, y
	cs.clamp(cam)
}

// StartFollow 开始跟随目标，并立即把镜头对准目标
func (cs *CameraSystem) StartFollow(target ecs.EntityID, lerpX, lerpY float64) {
	cam := cs.Camera()
	cam.Following = true
	cam.FollowTarget = target
	cam.LerpX, cam.LerpY = lerpX, lerpY

	if pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, target); ok {
		cam.ScrollX = pos.X - cam.FollowOffsetX - cam.ViewWidth()/2
		cam.ScrollY = pos.Y - cam.FollowOffsetY - cam.ViewHeight()/2
		cs.clamp(cam)
	}
}

// StopFollow 停止跟随
func (cs *CameraSystem) StopFollow() {
	cs.Camera().Following = false
}

// Shake 震屏，duration 秒，intensity 为视口尺寸的比例。正在震屏时忽略新请求。
func (cs *CameraSystem) Shake(duration, intensity float64) {
	cam := cs.Camera()
	if cam.ShakeElapsed < cam.ShakeDuration {
		return
	}
	cam.ShakeDuration = duration
	cam.ShakeElapsed = 0
	cam.ShakeIntensity = intensity
}

// IsShaking 是否正在震屏
func (cs *CameraSystem) IsShaking() bool {
	cam := cs.Camera()
	return cam.ShakeElapsed < cam.ShakeDuration
}

// FadeOut 在 duration 秒内淡出到黑色。已经在淡出时忽略。
func (cs *CameraSystem) FadeOut(duration float64) {
	cam := cs.Camera()
	if cam.Fading || cam.FadeComplete {
		return
	}
	cam.Fading = true
	cam.FadeDuration = duration
	cam.FadeElapsed = 0
}

// WorldToScreen 世界坐标转屏幕坐标（含缩放与震屏偏移）
func (cs *CameraSystem) WorldToScreen(x, y, scrollFactor float64) (float64, float64) {
	return WorldToScreen(cs.Camera(), x, y, scrollFactor)
}

// WorldToScreen 世界坐标转屏幕坐标；scrollFactor 0 表示固定在屏幕上（不缩放）
func WorldToScreen(cam *components.CameraComponent, x, y, scrollFactor float64) (float64, float64) {
	if scrollFactor == 0 {
		return x + cam.ShakeOffsetX, y + cam.ShakeOffsetY
	}
	sx := (x-cam.ScrollX*scrollFactor)*cam.Zoom + cam.ShakeOffsetX
	sy := (y-cam.ScrollY*scrollFactor)*cam.Zoom + cam.ShakeOffsetY
	return sx, sy
}

// Update 更新跟随、震屏、淡出
func (cs *CameraSystem) Update(dt float64) {
	cam := cs.Camera()
	if cam == nil {
		return
	}

	if cam.Following {
		cs.follow(cam)
	}
	cs.clamp(cam)
	cs.updateShake(cam, dt)
	cs.updateFade(cam, dt)
}

func (cs *CameraSystem) follow(cam *components.CameraComponent) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, cam.FollowTarget)
	if !ok {
		return
	}
	fx := pos.X - cam.FollowOffsetX
	fy := pos.Y - cam.FollowOffsetY

	if cam.DeadzoneW <= 0 || cam.DeadzoneH <= 0 {
		cam.ScrollX = utils.Lerp(cam.ScrollX, fx-cam.ViewWidth()/2, cam.LerpX)
		cam.ScrollY = utils.Lerp(cam.ScrollY, fy-cam.ViewHeight()/2, cam.LerpY)
		return
	}

	midX, midY := cam.MidPoint()
	left := midX - cam.DeadzoneW/2
	right := midX + cam.DeadzoneW/2
	top := midY - cam.DeadzoneH/2
	bottom := midY + cam.DeadzoneH/2

	if fx < left {
		cam.ScrollX = utils.Lerp(cam.ScrollX, cam.ScrollX-(left-fx), cam.LerpX)
	} else if fx > right {
		cam.ScrollX = utils.Lerp(cam.ScrollX, cam.ScrollX+(fx-right), cam.LerpX)
	}
	if fy < top {
		cam.ScrollY = utils.Lerp(cam.ScrollY, cam.ScrollY-(top-fy), cam.LerpY)
	} else if fy > bottom {
		cam.ScrollY = utils.Lerp(cam.ScrollY, cam.ScrollY+(fy-bottom), cam.LerpY)
	}
}

func (cs *CameraSystem) clamp(cam *components.CameraComponent) {
	if !cam.HasBounds {
		return
	}
	cam.ScrollX = clampScroll(cam.ScrollX, cam.BoundsX, cam.BoundsW, cam.ViewWidth())
	cam.ScrollY = clampScroll(cam.ScrollY, cam.BoundsY, cam.BoundsH, cam.ViewHeight())
}

// clampScroll 视口比边界大时居中
func clampScroll(scroll, min, size, view float64) float64 {
	if view >= size {
		return min + (size-view)/2
	}
	return math.Max(min, math.Min(scroll, min+size-view))
}

func (cs *CameraSystem) updateShake(cam *components.CameraComponent, dt float64) {
	if cam.ShakeElapsed >= cam.ShakeDuration {
		cam.ShakeOffsetX, cam.ShakeOffsetY = 0, 0
		return
	}
	cam.ShakeElapsed += dt
	if cam.ShakeElapsed >= cam.ShakeDuration {
		cam.ShakeOffsetX, cam.ShakeOffsetY = 0, 0
		return
	}
	cam.ShakeOffsetX = (cs.rng.Float64()*2 - 1) * cam.ShakeIntensity * cam.ScreenWidth
	cam.ShakeOffsetY = (cs.rng.Float64()*2 - 1) * cam.ShakeIntensity * cam.ScreenHeight
}

func (cs *CameraSystem) updateFade(cam *components.CameraComponent, dt float64) {
	if !cam.Fading {
		return
	}
	cam.FadeElapsed += dt
	if cam.FadeDuration <= 0 || cam.FadeElapsed >= cam.FadeDuration {
		cam.FadeAlpha = 1
		cam.Fading = false
		cam.FadeComplete = true
		return
	}
	cam.FadeAlpha = cam.FadeElapsed / cam.FadeDuration
}
