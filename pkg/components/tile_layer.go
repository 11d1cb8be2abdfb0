package components

import (
	"image/color"

	"github.com/gonewx/coinquest/internal/tiled"
)

// TileLayerComponent 需要绘制的地图图层
//
// 图块的世界坐标 = 图层坐标 x Scale；Texture 是图块集图片的纹理 ID。
// 图片缺失时用 Placeholder 颜色绘制非空图块。
type TileLayerComponent struct {
	Layer   *tiled.TileLayer
	Texture string

	Scale        float64
	ScrollFactor float64
	Depth        float64
	Visible      bool

	Placeholder color.RGBA
}
