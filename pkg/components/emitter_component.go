package components

import (
	"github.com/gonewx/coinquest/internal/particle"
	"github.com/gonewx/coinquest/pkg/ecs"
)

// EmitterComponent 粒子发射器
//
// 发射器位置 = 跟随目标位置 + FollowOffset（Following 为 true 时），
// 否则为实体的 PositionComponent。
type EmitterComponent struct {
	Config *particle.EmitterConfig

	Emitting    bool    // 是否持续发射（流模式）
	Accumulator float64 // 距下次发射累计的时间（毫秒）

	Following     bool
	FollowTarget  ecs.EntityID
	FollowOffsetX float64
	FollowOffsetY float64

	Particles []ecs.EntityID // 当前存活的粒子
}
