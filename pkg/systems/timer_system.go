package systems

import (
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
)

// TimerSystem 推进一次性延迟回调
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建一个新的计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{
		entityManager: em,
	}
}

// After 在 seconds 秒后调用 fn。
// 同名计时器已存在时先取消旧的，name 为空则不去重。
func (s *TimerSystem) After(name string, seconds float64, fn func()) ecs.EntityID {
	if name != "" {
		s.Cancel(name)
	}
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimerComponent{
		Name:       name,
		TargetTime: seconds,
		OnComplete: fn,
	})
	return id
}

// Cancel 取消所有同名且未触发的计时器
func (s *TimerSystem) Cancel(name string) {
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if timer.Name == name && !timer.IsReady {
			timer.IsReady = true
			timer.OnComplete = nil
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Pending 是否存在未触发的同名计时器
func (s *TimerSystem) Pending(name string) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if timer.Name == name && !timer.IsReady {
			return true
		}
	}
	return false
}

// Update 更新所有计时器，到期的触发回调后销毁
func (s *TimerSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager)

	for _, id := range entities {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok || timer.IsReady {
			continue
		}

		timer.CurrentTime += deltaTime
		if timer.CurrentTime < timer.TargetTime {
			continue
		}

		timer.IsReady = true
		s.entityManager.DestroyEntity(id)
		if timer.OnComplete != nil {
			timer.OnComplete()
		}
	}
}
