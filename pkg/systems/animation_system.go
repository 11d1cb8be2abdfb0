package systems

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

// AnimationSystem 管理所有实体的帧动画
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	registry      *game.AnimationRegistry
	logger        *log.Logger
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager, registry *game.AnimationRegistry) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
		registry:      registry,
		logger:        utils.Logger("AnimationSystem"),
	}
}

// Play 在实体上播放动画
// ignoreIfPlaying 为 true 且该动画正在播放时不重新开始。
func (s *AnimationSystem) Play(id ecs.EntityID, key string, ignoreIfPlaying bool) {
	anim, ok1 := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
	sprite, ok2 := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	if !ok1 || !ok2 {
		return
	}
	if ignoreIfPlaying && anim.Current == key && anim.Playing {
		return
	}

	clip, ok := s.registry.Get(key)
	if !ok {
		s.logger.Warn("animation not found", "key", key, "entity", id)
		return
	}

	anim.Current = key
	anim.FrameIndex = 0
	anim.Elapsed = 0
	anim.Playing = true
	anim.Finished = false

	sprite.Texture = clip.Texture
	sprite.Frame = clip.Frames[0]
}

// Update 推进所有正在播放的动画
func (s *AnimationSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.AnimationComponent, *components.SpriteComponent](s.entityManager) {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if !anim.Playing {
			continue
		}

		clip, ok := s.registry.Get(anim.Current)
		if !ok {
			anim.Playing = false
			continue
		}

		anim.Elapsed += deltaTime
		frameDuration := clip.FrameDuration()
		for anim.Elapsed >= frameDuration {
			anim.Elapsed -= frameDuration
			anim.FrameIndex++
			if anim.FrameIndex < len(clip.Frames) {
				continue
			}
			if clip.Loops() {
				anim.FrameIndex = 0
				continue
			}
			// 非循环动画停在最后一帧
			anim.FrameIndex = len(clip.Frames) - 1
			anim.Playing = false
			anim.Finished = true
			break
		}

		sprite.Texture = clip.Texture
		sprite.Frame = clip.Frames[anim.FrameIndex]
	}
}
