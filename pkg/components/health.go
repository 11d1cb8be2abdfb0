package components

// HealthComponent 存储实体的生命值信息
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// Fraction 当前生命比例，范围 [0, 1]
func (h *HealthComponent) Fraction() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	f := float64(h.CurrentHealth) / float64(h.MaxHealth)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
