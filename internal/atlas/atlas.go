// Package atlas parses texture atlas descriptions: TexturePacker JSON (hash or
// array), TexturePacker multi-atlas JSON, and fixed-grid spritesheets.
//
// Atlases only describe frame rectangles; images are owned by the resource manager.
package atlas

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Rect is a pixel rectangle inside a page image.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Frame is a named sub-image of an atlas page.
type Frame struct {
	Name    string
	Page    int  // Atlas.Pages 下标
	Rect    Rect // 在页面图片中的位置
	Rotated bool
}

// Page is one image of an atlas.
type Page struct {
	Image  string
	Width  int
	Height int
}

// Atlas is a set of frames spread over one or more page images.
type Atlas struct {
	Pages  []Page
	frames map[string]*Frame
	order  []string
}

func newAtlas() *Atlas {
	return &Atlas{frames: make(map[string]*Frame)}
}

func (a *Atlas) add(f *Frame) error {
	if f.Name == "" {
		return fmt.Errorf("frame without name")
	}
	if _, exists := a.frames[f.Name]; exists {
		return fmt.Errorf("duplicate frame %q", f.Name)
	}
	if f.Rect.W <= 0 || f.Rect.H <= 0 {
		return fmt.Errorf("frame %q has empty rect", f.Name)
	}
	a.frames[f.Name] = f
	a.order = append(a.order, f.Name)
	return nil
}

// Frame returns the named frame.
func (a *Atlas) Frame(name string) (*Frame, bool) {
	f, ok := a.frames[name]
	return f, ok
}

// FrameCount returns the number of frames.
func (a *Atlas) FrameCount() int {
	return len(a.order)
}

// FrameNames returns frame names in sorted order.
func (a *Atlas) FrameNames() []string {
	names := make([]string, len(a.order))
	copy(names, a.order)
	sort.Strings(names)
	return names
}

type sizeJSON struct {
	W int `json:"w"`
	H int `json:"h"`
}

type frameJSON struct {
	Filename string `json:"filename"`
	Frame    Rect   `json:"frame"`
	Rotated  bool   `json:"rotated"`
}

type hashJSON struct {
	Frames json.RawMessage `json:"frames"`
	Meta   struct {
		Image string   `json:"image"`
		Size  sizeJSON `json:"size"`
	} `json:"meta"`
}

type multiJSON struct {
	Textures []struct {
		Image  string      `json:"image"`
		Size   sizeJSON    `json:"size"`
		Frames []frameJSON `json:"frames"`
	} `json:"textures"`
}

// ParseTexturePacker decodes a single-page TexturePacker JSON atlas.
// Both the "JSON (Hash)" and "JSON (Array)" export formats are accepted.
func ParseTexturePacker(data []byte) (*Atlas, error) {
	var doc hashJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode atlas: %w", err)
	}
	if len(doc.Frames) == 0 {
		return nil, fmt.Errorf("atlas has no frames")
	}

	a := newAtlas()
	a.Pages = []Page{{Image: doc.Meta.Image, Width: doc.Meta.Size.W, Height: doc.Meta.Size.H}}

	var list []frameJSON
	if doc.Frames[0] == '[' {
		if err := json.Unmarshal(doc.Frames, &list); err != nil {
			return nil, fmt.Errorf("failed to decode atlas frame array: %w", err)
		}
	} else {
		var hash map[string]frameJSON
		if err := json.Unmarshal(doc.Frames, &hash); err != nil {
			return nil, fmt.Errorf("failed to decode atlas frame hash: %w", err)
		}
		for name, f := range hash {
			f.Filename = name
			list = append(list, f)
		}
		// map 遍历顺序不固定
		sort.Slice(list, func(i, j int) bool { return list[i].Filename < list[j].Filename })
	}

	for _, f := range list {
		if err := a.add(&Frame{Name: f.Filename, Page: 0, Rect: f.Frame, Rotated: f.Rotated}); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// ParseMultiAtlas decodes a TexturePacker "Phaser 3" multi-atlas document.
func ParseMultiAtlas(data []byte) (*Atlas, error) {
	var doc multiJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode multiatlas: %w", err)
	}
	if len(doc.Textures) == 0 {
		return nil, fmt.Errorf("multiatlas has no textures")
	}

	a := newAtlas()
	for i, tex := range doc.Textures {
		a.Pages = append(a.Pages, Page{Image: tex.Image, Width: tex.Size.W, Height: tex.Size.H})
		for _, f := range tex.Frames {
			if err := a.add(&Frame{Name: f.Filename, Page: i, Rect: f.Frame, Rotated: f.Rotated}); err != nil {
				return nil, fmt.Errorf("texture %d: %w", i, err)
			}
		}
	}
	return a, nil
}

// SheetConfig describes a fixed-grid spritesheet.
type SheetConfig struct {
	FrameWidth  int `yaml:"frame_width"`
	FrameHeight int `yaml:"frame_height"`
	Margin      int `yaml:"margin"`
	Spacing     int `yaml:"spacing"`
}

// NewSpritesheet slices an image of the given size into a grid of frames named
// "0", "1", ... in row-major order. Partial cells at the edges are dropped.
func NewSpritesheet(image string, imageW, imageH int, cfg SheetConfig) (*Atlas, error) {
	if cfg.FrameWidth <= 0 || cfg.FrameHeight <= 0 {
		return nil, fmt.Errorf("invalid spritesheet frame size %dx%d", cfg.FrameWidth, cfg.FrameHeight)
	}

	cols := (imageW - 2*cfg.Margin + cfg.Spacing) / (cfg.FrameWidth + cfg.Spacing)
	rows := (imageH - 2*cfg.Margin + cfg.Spacing) / (cfg.FrameHeight + cfg.Spacing)
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("image %dx%d too small for frame %dx%d", imageW, imageH, cfg.FrameWidth, cfg.FrameHeight)
	}

	a := newAtlas()
	a.Pages = []Page{{Image: image, Width: imageW, Height: imageH}}
	index := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r := Rect{
				X: cfg.Margin + col*(cfg.FrameWidth+cfg.Spacing),
				Y: cfg.Margin + row*(cfg.FrameHeight+cfg.Spacing),
				W: cfg.FrameWidth,
				H: cfg.FrameHeight,
			}
			if err := a.add(&Frame{Name: strconv.Itoa(index), Rect: r}); err != nil {
				return nil, err
			}
			index++
		}
	}
	return a, nil
}

// FrameByIndex returns frame "i" of a spritesheet atlas.
func (a *Atlas) FrameByIndex(i int) (*Frame, bool) {
	return a.Frame(strconv.Itoa(i))
}
