package entities

import (
	"strconv"

	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

// NewHUD 创建关卡 HUD：金币计数、故事提示、心形生命、头顶血条，
// 以及隐藏的结算界面。返回需要被系统更新的实体。
//
// coinText 为初始的计数文字，hearts 为心形数量（最大生命值）。
// 屏幕尺寸 (screenW, screenH) 用于居中结算文字。
func NewHUD(em *ecs.EntityManager, coinText string, hearts int, screenW, screenH float64) game.HUDEntities {
	black := Black
	hud := game.HUDEntities{}

	hud.CoinText = NewTextEntity(em, config.HUDMargin, config.HUDMargin, coinText, TextStyle{
		FontSize:   config.HUDCoinFontSize,
		Background: &black,
		Depth:      config.DepthHUD,
	})

	// 故事提示放在左下角，避免与金币计数重叠
	NewTextEntity(em, config.HUDMargin, screenH-config.HUDMargin-config.HUDStoryFontSize*1.2, config.HUDStoryText, TextStyle{
		FontSize:   config.HUDStoryFontSize,
		Background: &black,
		Depth:      config.DepthHUD,
	})

	for i := 0; i < hearts; i++ {
		hud.Hearts = append(hud.Hearts, newHeart(em, i))
	}

	// 血条跟随玩家，位置由 HUDSystem 每帧更新
	hud.HealthBarBG = NewRectEntity(em, 0, 0,
		config.HealthBarWidth+config.HealthBarPadding*2,
		config.HealthBarHeight+config.HealthBarPadding*2,
		RectStyle{
			Color:        utils.HexColor(config.HealthBarBgColor),
			OriginX:      0.5,
			OriginY:      1,
			Depth:        config.DepthHealthBar,
			ScrollFactor: 1,
		})
	hud.HealthBarFill = NewRectEntity(em, 0, 0, config.HealthBarWidth, config.HealthBarHeight, RectStyle{
		Color:        utils.HexColor(config.HealthBarFillColor),
		OriginX:      0.5,
		OriginY:      1,
		Depth:        config.DepthHealthBar,
		ScrollFactor: 1,
	})

	hud.WinOverlay = NewRectEntity(em, 0, 0, screenW, screenH, RectStyle{
		Color:  Black,
		Alpha:  config.WinOverlayAlpha,
		Depth:  config.DepthOverlay,
		Hidden: true,
	})
	hud.WinText = NewTextEntity(em, screenW/2, screenH/2-30, config.WinTitleText, TextStyle{
		FontSize:   config.WinTitleFontSize,
		Background: &black,
		PaddingX:   15,
		PaddingY:   8,
		WrapWidth:  screenW - 100,
		Centered:   true,
		Depth:      config.DepthHUDTop,
		Hidden:     true,
	})
	hud.RestartText = NewTextEntity(em, screenW/2, screenH/2+30, config.WinRestartText, TextStyle{
		FontSize:   config.WinRestartFontSize,
		Background: &black,
		PaddingX:   15,
		PaddingY:   8,
		Centered:   true,
		Depth:      config.DepthHUDTop,
		Hidden:     true,
	})
	hud.GameOverText = NewTextEntity(em, screenW/2, screenH/2, config.GameOverText, TextStyle{
		FontSize:   config.GameOverFontSize,
		Background: &black,
		PaddingX:   20,
		PaddingY:   10,
		Centered:   true,
		Depth:      config.DepthHUDTop,
		Hidden:     true,
	})
	return hud
}

// newHeart 第 i 个心形图标（暂用金币图块）
func newHeart(em *ecs.EntityManager, i int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{
		X: config.HUDMargin + (config.HUDHeartSize+config.HUDHeartPadding)*float64(i),
		Y: config.HUDHeartY,
	})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Texture:     SheetTexture,
		Frame:       strconv.Itoa(config.HUDHeartFrame),
		Width:       sheetTileSize,
		Height:      sheetTileSize,
		Visible:     true,
		Alpha:       1,
		ScaleX:      config.HUDHeartScale,
		ScaleY:      config.HUDHeartScale,
		Depth:       config.DepthHUDTop,
		Placeholder: coinPlaceholder,
	})
	return id
}
