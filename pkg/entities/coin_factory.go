package entities

import (
	"image/color"
	"strconv"

	"github.com/gonewx/coinquest/internal/tiled"
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
)

// SheetTexture 按 18x18 切分的图块表
const SheetTexture = "tilemap_sheet"

const sheetTileSize = 18

var coinPlaceholder = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 255}

// NewCoinEntity 根据地图对象创建金币（静态刚体）
//
// 位置取对象中心；图块对象按左下角锚定。对象没有尺寸时使用图块大小。
func NewCoinEntity(em *ecs.EntityManager, rm *game.ResourceManager, obj *tiled.Object, frame int) ecs.EntityID {
	o := *obj
	if o.Width == 0 || o.Height == 0 {
		o.Width, o.Height = sheetTileSize, sheetTileSize
	}
	x, y := o.Center()

	frameName := strconv.Itoa(frame)
	w, h := frameSize(rm, SheetTexture, frameName, sheetTileSize)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.BodyComponent{
		Width:  w,
		Height: h,
		Static: true,
	})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Texture:      SheetTexture,
		Frame:        frameName,
		Width:        w,
		Height:       h,
		Visible:      true,
		Alpha:        1,
		ScaleX:       1,
		ScaleY:       1,
		Depth:        config.DepthCoins,
		ScrollFactor: 1,
		Placeholder:  coinPlaceholder,
	})
	ecs.AddComponent(em, id, &components.CoinComponent{})
	return id
}
