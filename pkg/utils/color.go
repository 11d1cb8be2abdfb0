package utils

import "image/color"

// HexColor 把 0xRRGGBB 转为不透明颜色
func HexColor(rgb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 255,
	}
}
