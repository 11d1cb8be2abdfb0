package systems

import (
	"math"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

// CameraControllerSystem 关卡镜头策略：死区切换、垂直回正、前瞻偏移
//
// 只修改镜头参数和 ScrollY，实际跟随与边界限制由 CameraSystem 完成。
type CameraControllerSystem struct {
	entityManager *ecs.EntityManager
	ctx           *game.PlayContext
	camera        *CameraSystem
}

// NewCameraControllerSystem 创建镜头控制系统
func NewCameraControllerSystem(em *ecs.EntityManager, ctx *game.PlayContext, camera *CameraSystem) *CameraControllerSystem {
	return &CameraControllerSystem{
		entityManager: em,
		ctx:           ctx,
		camera:        camera,
	}
}

// Init 开始跟随玩家，设置边界、缩放与初始死区
func (s *CameraControllerSystem) Init(worldW, worldH float64) {
	cfg := s.ctx.Config.Camera
	s.camera.SetZoom(cfg.Zoom)
	s.camera.SetBounds(0, 0, worldW, worldH)
	s.camera.StartFollow(s.ctx.Player, cfg.Lerp, cfg.Lerp)
	s.camera.SetDeadzone(cfg.DeadzoneBasic.Width, cfg.DeadzoneBasic.Height)

	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.ctx.Player); ok {
		s.ctx.CameraState.PreviousPlayerY = pos.Y
	}
}

// IsRunning 水平速度是否超过加速度的一半
func (s *CameraControllerSystem) IsRunning(body *components.BodyComponent) bool {
	return math.Abs(body.VelocityX) > s.ctx.Config.Player.Acceleration/2
}

// Update 每帧调整镜头
func (s *CameraControllerSystem) Update(dt float64) {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.ctx.Player)
	body, ok2 := ecs.GetComponent[*components.BodyComponent](s.entityManager, s.ctx.Player)
	cam := s.camera.Camera()
	if !ok1 || !ok2 || cam == nil {
		return
	}

	cfg := s.ctx.Config.Camera
	state := &s.ctx.CameraState

	running := s.IsRunning(body)
	if running {
		s.camera.SetDeadzone(cfg.DeadzoneRunning.Width, cfg.DeadzoneRunning.Height)
	} else {
		s.camera.SetDeadzone(cfg.DeadzoneBasic.Width, cfg.DeadzoneBasic.Height)
	}

	// 垂直快速移动时把镜头拉向玩家上方
	if math.Abs(body.VelocityY) > math.Abs(s.ctx.Config.Player.JumpVelocity/2) {
		state.IsTransitioning = true
		// 按缩放后的可视高度（世界单位）取四分之一，不用屏幕像素高度
		state.TargetY = pos.Y - cam.ViewHeight()/4
	}
	if state.IsTransitioning {
		delta := state.TargetY - cam.ScrollY
		if math.Abs(delta) < 1 {
			state.IsTransitioning = false
		} else {
			cam.ScrollY += delta * cfg.VerticalTransitionSpeed
		}
	}

	// 前瞻
	lookAhead := 0.0
	if running {
		lookAhead = -cfg.LookAhead
		if body.VelocityX > 0 {
			lookAhead = cfg.LookAhead
		}
	}
	cam.FollowOffsetX = utils.Lerp(cam.FollowOffsetX, lookAhead, cfg.PanSpeed)

	state.PreviousPlayerY = pos.Y
}
