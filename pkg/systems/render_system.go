package systems

import (
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/coinquest/internal/tiled"
	"github.com/gonewx/coinquest/pkg/components"
	"github.com/gonewx/coinquest/pkg/ecs"
	"github.com/gonewx/coinquest/pkg/game"
	"github.com/gonewx/coinquest/pkg/utils"
)

type drawKind int

const (
	drawTiles drawKind = iota
	drawSprite
	drawRect
	drawText
)

// drawItem 一个待绘制的实体
type drawItem struct {
	id    ecs.EntityID
	kind  drawKind
	depth float64
}

// RenderSystem 按深度绘制场景中的所有可见实体
//
// 深度相同的实体按创建顺序绘制。世界对象经镜头滚动和缩放后绘制；
// ScrollFactor 为 0 的对象使用屏幕坐标。
type RenderSystem struct {
	entityManager   *ecs.EntityManager
	resourceManager *game.ResourceManager

	tileCache map[tileKey]*ebiten.Image
}

type tileKey struct {
	texture string
	localID int
}

// NewRenderSystem 创建渲染系统；rm 为 nil 时所有图像都以占位矩形绘制
func NewRenderSystem(em *ecs.EntityManager, rm *game.ResourceManager) *RenderSystem {
	return &RenderSystem{
		entityManager:   em,
		resourceManager: rm,
		tileCache:       make(map[tileKey]*ebiten.Image),
	}
}

// drawOrder 收集可见实体并按深度排序
func (s *RenderSystem) drawOrder() []drawItem {
	items := make([]drawItem, 0)

	for _, id := range ecs.GetEntitiesWith1[*components.TileLayerComponent](s.entityManager) {
		tl, _ := ecs.GetComponent[*components.TileLayerComponent](s.entityManager, id)
		if tl.Visible && tl.Layer != nil {
			items = append(items, drawItem{id: id, kind: drawTiles, depth: tl.Depth})
		}
	}
	for _, id := range ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](s.entityManager) {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if sprite.Visible && sprite.Alpha > 0 {
			items = append(items, drawItem{id: id, kind: drawSprite, depth: sprite.Depth})
		}
	}
	for _, id := range ecs.GetEntitiesWith2[*components.RectComponent, *components.PositionComponent](s.entityManager) {
		rect, _ := ecs.GetComponent[*components.RectComponent](s.entityManager, id)
		if rect.Visible && rect.Alpha > 0 {
			items = append(items, drawItem{id: id, kind: drawRect, depth: rect.Depth})
		}
	}
	for _, id := range ecs.GetEntitiesWith2[*components.TextComponent, *components.PositionComponent](s.entityManager) {
		txt, _ := ecs.GetComponent[*components.TextComponent](s.entityManager, id)
		if txt.Visible && txt.Alpha > 0 && txt.Text != "" {
			items = append(items, drawItem{id: id, kind: drawText, depth: txt.Depth})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].depth != items[j].depth {
			return items[i].depth < items[j].depth
		}
		return items[i].id < items[j].id
	})
	return items
}

// Draw 绘制一帧。cam 为 nil 时使用不缩放、不滚动的镜头。
func (s *RenderSystem) Draw(screen *ebiten.Image, cam *components.CameraComponent) {
	if cam == nil {
		b := screen.Bounds()
		cam = &components.CameraComponent{Zoom: 1, ScreenWidth: float64(b.Dx()), ScreenHeight: float64(b.Dy())}
	}

	for _, item := range s.drawOrder() {
		switch item.kind {
		case drawTiles:
			s.drawTileLayer(screen, cam, item.id)
		case drawSprite:
			s.drawSprite(screen, cam, item.id)
		case drawRect:
			s.drawRect(screen, cam, item.id)
		case drawText:
			s.drawText(screen, cam, item.id)
		}
	}

	if cam.FadeAlpha > 0 {
		w, h := float32(cam.ScreenWidth), float32(cam.ScreenHeight)
		vector.DrawFilledRect(screen, 0, 0, w, h, color.NRGBA{A: uint8(math.Round(cam.FadeAlpha * 255))}, false)
	}
}

// viewScale 世界对象随镜头缩放，屏幕对象不缩放
func viewScale(cam *components.CameraComponent, scrollFactor float64) float64 {
	if scrollFactor == 0 {
		return 1
	}
	return cam.Zoom
}

func (s *RenderSystem) frame(texture, frame string) *ebiten.Image {
	if s.resourceManager == nil || texture == "" {
		return nil
	}
	return s.resourceManager.Frame(texture, frame)
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, cam *components.CameraComponent, id ecs.EntityID) {
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

	sx, sy := WorldToScreen(cam, pos.X, pos.Y, sprite.ScrollFactor)
	zoom := viewScale(cam, sprite.ScrollFactor)
	scaleX, scaleY := sprite.ScaleX, sprite.ScaleY
	if scaleX == 0 && scaleY == 0 {
		scaleX, scaleY = 1, 1
	}

	img := s.frame(sprite.Texture, sprite.Frame)
	if img == nil {
		if sprite.Placeholder.A == 0 {
			return
		}
		w := sprite.Width * scaleX * zoom
		h := sprite.Height * scaleY * zoom
		c := withAlpha(sprite.Placeholder, sprite.Alpha)
		if sprite.Tint != nil {
			c = withAlpha(*sprite.Tint, sprite.Alpha)
		}
		vector.DrawFilledRect(screen, float32(sx-w/2), float32(sy-h/2), float32(w), float32(h), c, false)
		return
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	if sprite.FlipX {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Scale(scaleX*zoom, scaleY*zoom)
	op.GeoM.Translate(sx, sy)
	if sprite.Tint != nil {
		op.ColorScale.Scale(float32(sprite.Tint.R)/255, float32(sprite.Tint.G)/255, float32(sprite.Tint.B)/255, 1)
	}
	op.ColorScale.ScaleAlpha(float32(sprite.Alpha))
	if sprite.Additive {
		op.Blend = ebiten.BlendLighter
	}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

func (s *RenderSystem) drawRect(screen *ebiten.Image, cam *components.CameraComponent, id ecs.EntityID) {
	rect, _ := ecs.GetComponent[*components.RectComponent](s.entityManager, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

	scale := rect.Scale
	if scale == 0 {
		scale = 1
	}
	zoom := viewScale(cam, rect.ScrollFactor)
	w := rect.Width * scale * zoom
	h := rect.Height * scale * zoom
	sx, sy := WorldToScreen(cam, pos.X, pos.Y, rect.ScrollFactor)
	x := sx - w*rect.OriginX
	y := sy - h*rect.OriginY
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), withAlpha(rect.Color, rect.Alpha), false)
}

func (s *RenderSystem) drawText(screen *ebiten.Image, cam *components.CameraComponent, id ecs.EntityID) {
	txt, _ := ecs.GetComponent[*components.TextComponent](s.entityManager, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if s.resourceManager == nil {
		return
	}

	scale := txt.Scale
	if scale == 0 {
		scale = 1
	}
	scale *= viewScale(cam, txt.ScrollFactor)
	face := s.resourceManager.Font(txt.FontSize*scale, txt.Bold)
	if face == nil {
		return
	}

	content := txt.Text
	if txt.WrapWidth > 0 {
		content = strings.Join(utils.WrapText(content, face, txt.WrapWidth*scale), "\n")
	}

	lineSpacing := face.Size * 1.2
	tw, th := text.Measure(content, face, lineSpacing)
	padX, padY := txt.PaddingX*scale, txt.PaddingY*scale
	boxW, boxH := tw+2*padX, th+2*padY

	sx, sy := WorldToScreen(cam, pos.X, pos.Y, txt.ScrollFactor)
	left, top := sx, sy
	if txt.Centered {
		left, top = sx-boxW/2, sy-boxH/2
	}

	if txt.Background != nil {
		vector.DrawFilledRect(screen, float32(left), float32(top), float32(boxW), float32(boxH), withAlpha(*txt.Background, txt.Alpha), false)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(left+padX+tw/2, top+padY)
	op.LineSpacing = lineSpacing
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignStart
	op.ColorScale.ScaleWithColor(txt.Color)
	op.ColorScale.ScaleAlpha(float32(txt.Alpha))
	text.Draw(screen, content, face, op)
}

func (s *RenderSystem) drawTileLayer(screen *ebiten.Image, cam *components.CameraComponent, id ecs.EntityID) {
	tl, _ := ecs.GetComponent[*components.TileLayerComponent](s.entityManager, id)
	layer := tl.Layer

	scale := tl.Scale
	if scale == 0 {
		scale = 1
	}
	zoom := viewScale(cam, tl.ScrollFactor)
	tileW := float64(layer.TileWidth) * scale
	tileH := float64(layer.TileHeight) * scale
	sw, sh := cam.ScreenWidth, cam.ScreenHeight

	for _, t := range layer.Tiles() {
		wx, wy, _, _ := t.WorldRect(layer.TileWidth, layer.TileHeight, layer.OriginX, layer.OriginY)
		sx, sy := WorldToScreen(cam, wx*scale, wy*scale, tl.ScrollFactor)
		w, h := tileW*zoom, tileH*zoom
		if sx+w < 0 || sy+h < 0 || sx > sw || sy > sh {
			continue
		}

		img := s.tileImage(tl.Texture, t)
		if img == nil {
			if tl.Placeholder.A > 0 {
				vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(w), float32(h), tl.Placeholder, false)
			}
			continue
		}

		op := &ebiten.DrawImageOptions{}
		if t.FlipX {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(layer.TileWidth), 0)
		}
		if t.FlipY {
			op.GeoM.Scale(1, -1)
			op.GeoM.Translate(0, float64(layer.TileHeight))
		}
		op.GeoM.Scale(scale*zoom, scale*zoom)
		op.GeoM.Translate(sx, sy)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, op)
	}
}

func (s *RenderSystem) tileImage(texture string, t *tiled.Tile) *ebiten.Image {
	key := tileKey{texture: texture, localID: t.LocalID}
	if img, ok := s.tileCache[key]; ok {
		return img
	}
	page := s.frame(texture, "")
	if page == nil || t.Tileset == nil {
		return nil
	}
	x, y, w, h := t.Tileset.SourceRect(t.LocalID)
	img := page.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image)
	s.tileCache[key] = img
	return img
}

// withAlpha 把不透明度乘进颜色
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	a := float64(c.A) * alpha
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}
