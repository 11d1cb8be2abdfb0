package components

import "github.com/gonewx/coinquest/pkg/utils"

// TweenProperty 补间动画作用的属性
type TweenProperty int

const (
	TweenAlpha TweenProperty = iota
	TweenScale
)

// Tween 一个属性的补间
type Tween struct {
	Property TweenProperty
	From     float64
	To       float64
	Duration float64 // 秒
	Elapsed  float64
	Easing   string // "linear", "sineInOut"
	Yoyo     bool
	Repeat   int // -1 无限
	Reverse  bool
	Done     bool
}

// Value 当前进度下的属性值，Reverse 时从 To 回到 From
func (t *Tween) Value() float64 {
	p := 1.0
	if t.Duration > 0 {
		p = utils.Clamp(t.Elapsed/t.Duration, 0, 1)
	}
	e := utils.EasingByName(t.Easing)(p)
	if t.Reverse {
		return utils.Lerp(t.To, t.From, e)
	}
	return utils.Lerp(t.From, t.To, e)
}

// TweenComponent 作用于实体 SpriteComponent/TextComponent/RectComponent 的补间集合
type TweenComponent struct {
	Tweens []*Tween
}
