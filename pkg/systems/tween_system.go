package systems

import (
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
)

// TweenSystem 推进补间动画，结果写入实体的 Sprite/Text/Rect 组件
type TweenSystem struct {
	entityManager *ecs.EntityManager
}

// NewTweenSystem 创建补间系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{entityManager: em}
}

// Add 给实体加一个补间。同一属性上已有的补间会被替换。
func (s *TweenSystem) Add(id ecs.EntityID, tween components.Tween) {
	comp, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
	if !ok {
		comp = &components.TweenComponent{}
		ecs.AddComponent(s.entityManager, id, comp)
	}

	kept := comp.Tweens[:0]
	for _, tw := range comp.Tweens {
		if tw.Property != tween.Property {
			kept = append(kept, tw)
		}
	}
	t := tween
	comp.Tweens = append(kept, &t)
}

// To 从属性当前值补间到 to
func (s *TweenSystem) To(id ecs.EntityID, property components.TweenProperty, to, duration float64, easing string) {
	from, ok := s.get(id, property)
	if !ok {
		return
	}
	s.Add(id, components.Tween{
		Property: property,
		From:     from,
		To:       to,
		Duration: duration,
		Easing:   easing,
	})
}

// Update 推进所有补间
func (s *TweenSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)

		active := comp.Tweens[:0]
		for _, tw := range comp.Tweens {
			s.advance(tw, dt)
			s.set(id, tw.Property, tw.Value())
			if !tw.Done {
				active = append(active, tw)
			}
		}
		comp.Tweens = active
	}
}

func (s *TweenSystem) advance(tw *components.Tween, dt float64) {
	if tw.Done {
		return
	}
	if tw.Duration <= 0 {
		tw.Elapsed = 0
		tw.Reverse = tw.Yoyo
		tw.Done = true
		return
	}

	tw.Elapsed += dt
	for tw.Elapsed >= tw.Duration {
		if tw.Yoyo && !tw.Reverse {
			tw.Reverse = true
			tw.Elapsed -= tw.Duration
			continue
		}
		if tw.Repeat == 0 {
			tw.Elapsed = tw.Duration
			tw.Done = true
			return
		}
		if tw.Repeat > 0 {
			tw.Repeat--
		}
		tw.Reverse = false
		tw.Elapsed -= tw.Duration
	}
}

func (s *TweenSystem) get(id ecs.EntityID, property components.TweenProperty) (float64, bool) {
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		if property == components.TweenAlpha {
			return sprite.Alpha, true
		}
		return sprite.ScaleX, true
	}
	if text, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id); ok {
		if property == components.TweenAlpha {
			return text.Alpha, true
		}
		return text.Scale, true
	}
	if rect, ok := ecs.GetComponent[*components.RectComponent](s.entityManager, id); ok {
		if property == components.TweenAlpha {
			return rect.Alpha, true
		}
		return rect.Scale, true
	}
	return 0, false
}

func (s *TweenSystem) set(id ecs.EntityID, property components.TweenProperty, v float64) {
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		if property == components.TweenAlpha {
			sprite.Alpha = v
		} else {
			sprite.ScaleX, sprite.ScaleY = v, v
		}
	}
	if text, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id); ok {
		if property == components.TweenAlpha {
			text.Alpha = v
		} else {
			text.Scale = v
		}
	}
	if rect, ok := ecs.GetComponent[*components.RectComponent](s.entityManager, id); ok {
		if property == components.TweenAlpha {
			rect.Alpha = v
		} else {
			rect.Scale = v
		}
	}
}
