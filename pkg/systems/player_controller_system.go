package systems

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

// SoundPlayer 播放一次性音效
// game.AudioManager 实现此接口；测试中用记录调用的假实现
type SoundPlayer interface {
	PlaySound(id string, volume float64) bool
}

// 动画与音效 ID
const (
	ClipWalk = "walk"
	ClipIdle = "idle"
	ClipJump = "jump"

	SoundJump    = "jumpSound"
	SoundLand    = "landSound"
	SoundCoin    = "coinSound"
	SoundVictory = "victorySound"
	SoundHover   = "buttonHover"
	SoundClick   = "buttonClick"
)

// PlayerControllerSystem 玩家移动、跳跃、滑墙状态机
//
// 每帧在物理步之后运行：读取刚体的接触状态，写回加速度和速度，
// 由下一次物理步生效。
type PlayerControllerSystem struct {
	entityManager *ecs.EntityManager
	ctx           *game.PlayContext
	input         utils.InputSource
	anims         *AnimationSystem
	particles     *ParticleSystem
	camera        *CameraSystem
	sound         SoundPlayer
	logger        *log.Logger
}

// NewPlayerControllerSystem 创建玩家控制系统
func NewPlayerControllerSystem(
	em *ecs.EntityManager,
	ctx *game.PlayContext,
	input utils.InputSource,
	anims *AnimationSystem,
	particles *ParticleSystem,
	camera *CameraSystem,
	sound SoundPlayer,
) *PlayerControllerSystem {
	return &PlayerControllerSystem{
		entityManager: em,
		ctx:           ctx,
		input:         input,
		anims:         anims,
		particles:     particles,
		camera:        camera,
		sound:         sound,
		logger:        utils.Logger("PlayerController"),
	}
}

// MovementStateOf 根据接触状态推导玩家的移动状态
func MovementStateOf(player *components.PlayerComponent, body *components.BodyComponent) components.MovementState {
	switch {
	case body.Blocked.Down:
		return components.StateGrounded
	case player.IsWallSliding:
		return components.StateWallSliding
	default:
		return components.StateAirborne
	}
}

// Update 处理一帧输入
func (s *PlayerControllerSystem) Update(dt float64) {
	// 胜利或失败后不再响应移动输入，已停止的粒子保持停止
	if s.ctx.Finished() {
		return
	}

	id := s.ctx.Player
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	body, ok2 := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
	player, ok3 := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	sprite, ok4 := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return
	}

	cfg := s.ctx.Config.Player
	grounded := body.Blocked.Down
	emitters := s.ctx.Emitters

	// 1. 水平移动
	switch {
	case s.input.IsKeyPressed(utils.KeyLeft):
		body.AccelerationX = -cfg.Acceleration
		sprite.FlipX = false
		s.anims.Play(id, ClipWalk, true)
		if grounded {
			s.particles.StartFollow(emitters.Running, id, sprite.Width/2, sprite.Height-2)
			s.particles.Start(emitters.Running)
		}
	case s.input.IsKeyPressed(utils.KeyRight):
		body.AccelerationX = cfg.Acceleration
		sprite.FlipX = true
		s.anims.Play(id, ClipWalk, true)
		if grounded {
			s.particles.StartFollow(emitters.Running, id, -sprite.Width/2, sprite.Height-2)
			s.particles.Start(emitters.Running)
		}
	default:
		body.AccelerationX = 0
		body.DragX = cfg.Drag
		s.anims.Play(id, ClipIdle, true)
		s.particles.Stop(emitters.Running)
	}

	// 2. 落地恢复跳跃次数
	if grounded {
		player.JumpsLeft = cfg.MaxJumps
		player.IsWallSliding = false
		s.particles.Stop(emitters.WallSlide)
	}

	// 3. 滑墙
	touchingWall := body.Blocked.Left || body.Blocked.Right
	if touchingWall && !grounded && body.VelocityY > cfg.WallSlideThreshold {
		player.IsWallSliding = true
		body.VelocityY = cfg.WallSlideSpeed
		if !s.particles.IsEmitting(emitters.WallSlide) {
			offsetX := -sprite.Width / 2
			if body.Blocked.Left {
				offsetX = sprite.Width / 2
			}
			s.particles.StartFollow(emitters.WallSlide, id, offsetX, 0)
			s.particles.Start(emitters.WallSlide)
		}
	} else {
		player.IsWallSliding = false
		if s.particles.IsEmitting(emitters.WallSlide) {
			s.particles.Stop(emitters.WallSlide)
		}
	}

	// 4. 跳跃
	if s.input.IsKeyJustPressed(utils.KeyUp) {
		s.jump(pos, body, player, sprite)
	}

	// 5. 空中动画
	if !grounded {
		s.anims.Play(id, ClipJump, true)
	}

	// 6. 落地
	if !player.WasOnGround && grounded {
		s.particles.Explode(emitters.Landing, 0, pos.X, pos.Y+sprite.Height/2)
		s.sound.PlaySound(SoundLand, config.LandVolume)
		if player.LastHeight-pos.Y > cfg.ShakeThreshold {
			cam := s.ctx.Config.Camera
			s.camera.Shake(cam.LandingShakeMs/1000, cam.LandingShakeIntensity)
		}
	}
	if !grounded {
		player.LastHeight = pos.Y
	}
	player.WasOnGround = grounded
	s.ctx.Movement = MovementStateOf(player, body)
}

func (s *PlayerControllerSystem) jump(pos *components.PositionComponent, body *components.BodyComponent, player *components.PlayerComponent, sprite *components.SpriteComponent) {
	cfg := s.ctx.Config.Player

	switch {
	case player.IsWallSliding:
		dir := -1.0
		if body.Blocked.Left {
			dir = 1
		}
		body.VelocityX = math.Abs(cfg.WallJumpVelocity.X) * dir
		body.VelocityY = cfg.WallJumpVelocity.Y
		player.JumpsLeft = cfg.MaxJumps - 1
		s.logger.Debug("wall jump", "dir", dir)
	case player.JumpsLeft > 0:
		body.VelocityY = cfg.JumpVelocity
		player.JumpsLeft--
	default:
		return
	}

	s.sound.PlaySound(SoundJump, config.JumpVolume)
	s.particles.Explode(s.ctx.Emitters.Jumping, 0, pos.X, pos.Y+sprite.Height/2)
}
