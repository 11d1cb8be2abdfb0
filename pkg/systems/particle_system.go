package systems

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/gonewx/coinquest/internal/particle"
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/utils"
)

// particlePlaceholderSize 纹理缺失时粒子占位方块缩放前的边长
const particlePlaceholderSize = 128

// ParticleSystem manages emitters and the particles they spawn.
//
// Emitters either flow (Quantity particles every Frequency ms while emitting)
// or are burst-only (Frequency == -1) and emit through Explode. Particles move
// with their launch velocity plus GravityY and interpolate scale and alpha over
// their lifespan, then are destroyed.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager
	rng           *rand.Rand
	logger        *log.Logger
}

// NewParticleSystem creates a ParticleSystem with a deterministic random source.
func NewParticleSystem(em *ecs.EntityManager, seed int64) *ParticleSystem {
	return &ParticleSystem{
		EntityManager: em,
		rng:           rand.New(rand.NewSource(seed)),
		logger:        utils.Logger("ParticleSystem"),
	}
}

// CreateEmitter 在 (x, y) 创建发射器，是否立即发射由配置决定
func (ps *ParticleSystem) CreateEmitter(cfg *particle.EmitterConfig, x, y float64) ecs.EntityID {
	id := ps.EntityManager.CreateEntity()
	ecs.AddComponent(ps.EntityManager, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(ps.EntityManager, id, &components.EmitterComponent{
		Config:   cfg,
		Emitting: cfg.StartsEmitting(),
	})
	return id
}

// Start 开始持续发射（爆发型发射器无效）
func (ps *ParticleSystem) Start(id ecs.EntityID) {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id)
	if !ok || emitter.Config.IsExplode() || emitter.Emitting {
		return
	}
	emitter.Emitting = true
	emitter.Accumulator = 0
}

// Stop 停止发射，已有粒子继续走完生命周期
func (ps *ParticleSystem) Stop(id ecs.EntityID) {
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id); ok {
		emitter.Emitting = false
	}
}

// IsEmitting 发射器是否处于持续发射状态
func (ps *ParticleSystem) IsEmitting(id ecs.EntityID) bool {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id)
	return ok && emitter.Emitting
}

// StartFollow 让发射器跟随目标实体，位置 = 目标位置 + 偏移
func (ps *ParticleSystem) StartFollow(id, target ecs.EntityID, offsetX, offsetY float64) {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id)
	if !ok {
		return
	}
	emitter.Following = true
	emitter.FollowTarget = target
	emitter.FollowOffsetX = offsetX
	emitter.FollowOffsetY = offsetY
	ps.syncFollow(id, emitter)
}

// StopFollow 停止跟随，发射器留在当前位置
func (ps *ParticleSystem) StopFollow(id ecs.EntityID) {
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id); ok {
		emitter.Following = false
	}
}

// Explode 在 (x, y) 立即发射 count 个粒子，count <= 0 时使用配置的 Quantity
func (ps *ParticleSystem) Explode(id ecs.EntityID, count int, x, y float64) {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id)
	if !ok {
		return
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id); ok {
		pos.X, pos.Y = x, y
	}
	if count <= 0 {
		count = emitter.Config.Quantity
	}
	for i := 0; i < count; i++ {
		ps.spawnParticle(id, emitter, x, y)
	}
}

// ParticleCount 发射器当前存活粒子数
func (ps *ParticleSystem) ParticleCount(id ecs.EntityID) int {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id)
	if !ok {
		return 0
	}
	return len(emitter.Particles)
}

// Update processes all emitters and particles for the current frame.
func (ps *ParticleSystem) Update(dt float64) {
	ps.updateEmitters(dt)
	ps.updateParticles(dt)
}

func (ps *ParticleSystem) updateEmitters(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.EmitterComponent, *components.PositionComponent](ps.EntityManager) {
		emitter, _ := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)

		ps.syncFollow(id, emitter)

		if emitter.Emitting && !emitter.Config.IsExplode() {
			emitter.Accumulator += dt * 1000
			for emitter.Accumulator >= emitter.Config.Frequency {
				emitter.Accumulator -= emitter.Config.Frequency
				for i := 0; i < emitter.Config.Quantity; i++ {
					ps.spawnParticle(id, emitter, pos.X, pos.Y)
				}
			}
		}

		ps.cleanupDestroyedParticles(emitter)
	}
}

func (ps *ParticleSystem) syncFollow(id ecs.EntityID, emitter *components.EmitterComponent) {
	if !emitter.Following {
		return
	}
	target, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, emitter.FollowTarget)
	if !ok {
		return
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id); ok {
		pos.X = target.X + emitter.FollowOffsetX
		pos.Y = target.Y + emitter.FollowOffsetY
	}
}

// cleanupDestroyedParticles removes dead particle IDs from the emitter's list
func (ps *ParticleSystem) cleanupDestroyedParticles(emitter *components.EmitterComponent) {
	alive := emitter.Particles[:0]
	for _, particleID := range emitter.Particles {
		if ps.EntityManager.IsPendingDestroy(particleID) {
			continue
		}
		if ecs.HasComponent[*components.ParticleComponent](ps.EntityManager, particleID) {
			alive = append(alive, particleID)
		}
	}
	emitter.Particles = alive
}

func (ps *ParticleSystem) updateParticles(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](ps.EntityManager) {
		if ps.EntityManager.IsPendingDestroy(id) {
			continue
		}
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)

		p.Age += dt * 1000
		if p.Age >= p.Lifespan {
			ps.EntityManager.DestroyEntity(id)
			continue
		}

		p.VelocityY += p.GravityY * dt
		pos.X += p.VelocityX * dt
		pos.Y += p.VelocityY * dt

		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](ps.EntityManager, id); ok {
			t := p.Age / p.Lifespan
			s := p.Scale.At(t)
			sprite.ScaleX, sprite.ScaleY = s, s
			sprite.Alpha = p.Alpha.At(t)
		}
	}
}

func (ps *ParticleSystem) sample(r *particle.Range, fallback float64) float64 {
	if r == nil {
		return fallback
	}
	return r.Sample(ps.rng.Float64())
}

// spawnParticle creates one particle entity at (x, y) for the emitter.
func (ps *ParticleSystem) spawnParticle(emitterID ecs.EntityID, emitter *components.EmitterComponent, x, y float64) {
	cfg := emitter.Config

	var vx, vy float64
	if cfg.SpeedX != nil || cfg.SpeedY != nil {
		vx = ps.sample(cfg.SpeedX, 0)
		vy = ps.sample(cfg.SpeedY, 0)
	} else {
		speed := ps.sample(cfg.Speed, 0)
		angle := ps.sample(cfg.Angle, ps.rng.Float64()*360)
		// 0° 向右，90° 向下（屏幕坐标）
		rad := angle * math.Pi / 180
		vx = speed * math.Cos(rad)
		vy = speed * math.Sin(rad)
	}

	spawnX := x + ps.sample(cfg.X, 0)
	spawnY := y + ps.sample(cfg.Y, 0)

	frame := cfg.Frames[0]
	if len(cfg.Frames) > 1 {
		frame = cfg.Frames[ps.rng.Intn(len(cfg.Frames))]
	}

	id := ps.EntityManager.CreateEntity()
	ecs.AddComponent(ps.EntityManager, id, &components.PositionComponent{X: spawnX, Y: spawnY})
	ecs.AddComponent(ps.EntityManager, id, &components.ParticleComponent{
		Emitter:   emitterID,
		Lifespan:  cfg.Lifespan,
		VelocityX: vx,
		VelocityY: vy,
		GravityY:  cfg.GravityY,
		Scale:     cfg.Scale,
		Alpha:     cfg.Alpha,
	})
	ecs.AddComponent(ps.EntityManager, id, &components.SpriteComponent{
		Texture:      cfg.Texture,
		Frame:        frame,
		Width:        particlePlaceholderSize,
		Height:       particlePlaceholderSize,
		Visible:      true,
		Alpha:        cfg.Alpha.Start,
		ScaleX:       cfg.Scale.Start,
		ScaleY:       cfg.Scale.Start,
		Additive:     cfg.BlendMode == particle.BlendAdd,
		Depth:        cfg.Depth,
		ScrollFactor: 1,
		Placeholder:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
	})
	emitter.Particles = append(emitter.Particles, id)
}
