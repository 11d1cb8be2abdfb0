package systems

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/gonewx/coinquest/internal/tiled"
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/utils"
)

// GroundProbe 查询世界坐标处的地面图块
// *tiled.TileLayer 实现此接口
type GroundProbe interface {
	TileAtWorld(x, y float64) *tiled.Tile
}

// EnemyPatrolSystem 敌人来回巡逻
//
// 离开起点超过巡逻距离，或前方探测点下没有图块时掉头。
type EnemyPatrolSystem struct {
	entityManager *ecs.EntityManager
	ground        GroundProbe
	probe         config.Vec2
	logger        *log.Logger
}

// NewEnemyPatrolSystem 创建巡逻系统，ground 为空时只按距离掉头
func NewEnemyPatrolSystem(em *ecs.EntityManager, ground GroundProbe, probe config.Vec2) *EnemyPatrolSystem {
	return &EnemyPatrolSystem{
		entityManager: em,
		ground:        ground,
		probe:         probe,
		logger:        utils.Logger("EnemyPatrol"),
	}
}

// Update 检查每个敌人是否需要掉头
func (s *EnemyPatrolSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.BodyComponent](s.entityManager)
	for _, id := range ids {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)

		if math.Abs(pos.X-enemy.StartX) >= enemy.PatrolDistance {
			s.reverse(id, enemy, pos, body)
		}

		if s.ground != nil {
			probeX := pos.X + s.probe.X*enemy.Direction
			probeY := pos.Y + s.probe.Y
			if s.ground.TileAtWorld(probeX, probeY) == nil {
				s.reverse(id, enemy, pos, body)
			}
		}
	}
}

func (s *EnemyPatrolSystem) reverse(id ecs.EntityID, enemy *components.EnemyComponent, pos *components.PositionComponent, body *components.BodyComponent) {
	enemy.Direction *= -1
	body.VelocityX = enemy.Speed * enemy.Direction
	enemy.StartX = pos.X
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		sprite.FlipX = enemy.Direction > 0
	}
	s.logger.Debug("enemy reversed", "entity", id, "x", pos.X, "dir", enemy.Direction)
}
