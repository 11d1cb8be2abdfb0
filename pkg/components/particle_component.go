package components

import (
	"github.com/gonewx/coinquest/internal/particle"
	"github.com/gonewx/coinquest/pkg/ecs"
)

// ParticleComponent 单个粒子的运行状态
type ParticleComponent struct {
	Emitter ecs.EntityID

	Age      float64 // 毫秒
	Lifespan float64 // 毫秒

	VelocityX float64
	VelocityY float64
	GravityY  float64

	Scale particle.StartEnd
	Alpha particle.StartEnd
}
