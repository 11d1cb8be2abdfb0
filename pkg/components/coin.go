package components

// CoinComponent 可收集金币
type CoinComponent struct {
	Collected bool
}
