package game

import "fmt"

// DefaultFrameRate 未指定帧率时的播放速度
const DefaultFrameRate = 24

// Clip 一段帧动画
type Clip struct {
	Key       string
	Texture   string
	Frames    []string
	FrameRate float64
	Repeat    int // -1 无限循环，0 播放一次
}

// Loops 是否无限循环
func (c *Clip) Loops() bool {
	return c.Repeat < 0
}

// FrameDuration 每帧持续时间（秒）
func (c *Clip) FrameDuration() float64 {
	rate := c.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return 1 / rate
}

// AnimationRegistry 全局动画注册表，加载完成后创建，所有场景共享
type AnimationRegistry struct {
	clips map[string]*Clip
}

// NewAnimationRegistry 创建空注册表
func NewAnimationRegistry() *AnimationRegistry {
	return &AnimationRegistry{clips: make(map[string]*Clip)}
}

// Create 注册动画，重复的 key 返回错误
func (r *AnimationRegistry) Create(clip Clip) error {
	if clip.Key == "" {
		return fmt.Errorf("animation key is required")
	}
	if len(clip.Frames) == 0 {
		return fmt.Errorf("animation %q has no frames", clip.Key)
	}
	if _, exists := r.clips[clip.Key]; exists {
		return fmt.Errorf("animation %q already exists", clip.Key)
	}
	c := clip
	r.clips[clip.Key] = &c
	return nil
}

// Get 按 key 取动画
func (r *AnimationRegistry) Get(key string) (*Clip, bool) {
	c, ok := r.clips[key]
	return c, ok
}

// Len 已注册动画数量
func (r *AnimationRegistry) Len() int {
	return len(r.clips)
}
