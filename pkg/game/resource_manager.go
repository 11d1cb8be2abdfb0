package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gonewx/coinquest/internal/atlas"
	"github.com/gonewx/coinquest/internal/tiled"
	"github.com/gonewx/coinquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Texture is a loaded image together with its frame layout.
//
// Atlas is nil for plain images. Pages may contain nil entries when a page image
// failed to load; frame rectangles are still known from the atlas data.
type Texture struct {
	ID    string
	Atlas *atlas.Atlas
	Pages []*ebiten.Image
}

// LoadEvents are the loader callbacks. Any of them may be nil.
type LoadEvents struct {
	OnProgress  func(progress float64)      // 0..1, after every asset
	OnFileError func(src string, err error) // asset failed and was skipped
	OnComplete  func()                      // once, after the last asset
}

type loadKind int

const (
	loadImage loadKind = iota
	loadAtlas
	loadMultiAtlas
	loadSpritesheet
	loadTilemap
	loadSound
)

type loadTask struct {
	kind loadKind
	id   string
	src  string
	run  func() error
}

// ResourceManager is responsible for centralized management of game resources.
// It loads the asset manifest, then loads assets one at a time so a loading
// scene can draw progress between them.
//
// Loading is best-effort: a failed asset is reported through OnFileError, logged,
// and skipped. Lookups of missing assets return nil and the renderer draws a
// placeholder instead.
//
// This implementation is NOT thread-safe. For the single-threaded game loop,
// no synchronization is needed.
type ResourceManager struct {
	assets       fs.FS          // Asset files (images, sounds, atlas JSON)
	data         fs.FS          // Embedded data (manifest, levels)
	audioContext *audio.Context // May be nil (muted or in tests)
	logger       *log.Logger

	config *ResourceConfig

	imageCache map[string]*ebiten.Image // path -> Image
	textures   map[string]*Texture      // texture ID -> Texture
	frameCache map[string]*ebiten.Image // "id#frame" -> sub image
	sounds     map[string]*audio.Player // sound ID -> Player
	tilemaps   map[string]*tiled.Map    // tilemap ID -> Map

	tilemapOverrides map[string]tilemapSource

	fontSources map[bool]*text.GoTextFaceSource // bold -> source
	fontFaces   map[string]*text.GoTextFace

	queue     []loadTask
	next      int
	failed    []string
	events    LoadEvents
	completed bool
}

type tilemapSource struct {
	fsys fs.FS
	path string
}

// NewResourceManager creates a ResourceManager.
//
// Parameters:
//   - assets: file system holding art and audio (usually os.DirFS of --assets)
//   - data: file system holding the manifest and levels (usually the embedded FS)
//   - audioContext: audio context for decoding sounds; nil disables sound loading
func NewResourceManager(assets, data fs.FS, audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		assets:           assets,
		data:             data,
		audioContext:     audioContext,
		logger:           utils.Logger("ResourceManager"),
		imageCache:       make(map[string]*ebiten.Image),
		textures:         make(map[string]*Texture),
		frameCache:       make(map[string]*ebiten.Image),
		sounds:           make(map[string]*audio.Player),
		tilemaps:         make(map[string]*tiled.Map),
		tilemapOverrides: make(map[string]tilemapSource),
		fontSources:      make(map[bool]*text.GoTextFaceSource),
		fontFaces:        make(map[string]*text.GoTextFace),
	}
}

// OverrideTilemap makes the tilemap id load from fsys/path instead of the manifest
// path. Must be called before LoadResourceConfig.
func (rm *ResourceManager) OverrideTilemap(id string, fsys fs.FS, p string) {
	rm.tilemapOverrides[id] = tilemapSource{fsys: fsys, path: p}
}

// SetLoadEvents installs the loader callbacks.
func (rm *ResourceManager) SetLoadEvents(events LoadEvents) {
	rm.events = events
}

// LoadResourceConfig reads the manifest from the data FS and queues every asset
// it declares. Groups are queued in name order.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	cfg, err := LoadResourceConfig(rm.data, configPath)
	if err != nil {
		return err
	}
	rm.config = cfg
	rm.queue = rm.queue[:0]
	rm.next = 0
	rm.completed = false
	rm.failed = nil

	for _, name := range cfg.GroupNames() {
		rm.queueGroup(cfg.BasePath, cfg.Groups[name])
	}
	rm.logger.Debug("resource config loaded", "path", configPath, "assets", len(rm.queue))
	return nil
}

func (rm *ResourceManager) queueGroup(base string, g ResourceGroup) {
	for _, r := range g.Images {
		r := r
		src := buildFullPath(base, r.Path)
		rm.queue = append(rm.queue, loadTask{kind: loadImage, id: r.ID, src: src, run: func() error {
			img, err := rm.LoadImage(src)
			if err != nil {
				return err
			}
			rm.textures[r.ID] = &Texture{ID: r.ID, Pages: []*ebiten.Image{img}}
			return nil
		}})
	}
	for _, r := range g.Atlases {
		r := r
		src := buildFullPath(base, r.Data)
		img := buildFullPath(base, r.Image)
		rm.queue = append(rm.queue, loadTask{kind: loadAtlas, id: r.ID, src: src, run: func() error {
			return rm.loadAtlas(r.ID, src, img)
		}})
	}
	for _, r := range g.MultiAtlases {
		r := r
		src := buildFullPath(base, r.Path)
		rm.queue = append(rm.queue, loadTask{kind: loadMultiAtlas, id: r.ID, src: src, run: func() error {
			return rm.loadMultiAtlas(r.ID, src)
		}})
	}
	for _, r := range g.Spritesheets {
		r := r
		src := buildFullPath(base, r.Path)
		rm.queue = append(rm.queue, loadTask{kind: loadSpritesheet, id: r.ID, src: src, run: func() error {
			return rm.loadSpritesheet(r, src)
		}})
	}
	for _, r := range g.Tilemaps {
		r := r
		source := tilemapSource{fsys: rm.data, path: r.Path}
		if override, ok := rm.tilemapOverrides[r.ID]; ok {
			source = override
		}
		rm.queue = append(rm.queue, loadTask{kind: loadTilemap, id: r.ID, src: source.path, run: func() error {
			m, err := tiled.Load(source.fsys, source.path)
			if err != nil {
				return err
			}
			rm.tilemaps[r.ID] = m
			return nil
		}})
	}
	if rm.audioContext == nil {
		if len(g.Sounds) > 0 {
			rm.logger.Debug("audio disabled, sounds not queued", "count", len(g.Sounds))
		}
		return
	}
	for _, r := range g.Sounds {
		r := r
		src := buildFullPath(base, r.Path)
		rm.queue = append(rm.queue, loadTask{kind: loadSound, id: r.ID, src: src, run: func() error {
			return rm.loadSound(r.ID, src)
		}})
	}
}

// TotalAssets returns the number of queued assets.
func (rm *ResourceManager) TotalAssets() int {
	return len(rm.queue)
}

// Progress returns the fraction of processed assets (failed ones included).
func (rm *ResourceManager) Progress() float64 {
	if len(rm.queue) == 0 {
		return 1
	}
	return float64(rm.next) / float64(len(rm.queue))
}

// FailedAssets returns the sources of assets that failed to load.
func (rm *ResourceManager) FailedAssets() []string {
	failed := make([]string, len(rm.failed))
	copy(failed, rm.failed)
	return failed
}

// IsComplete reports whether the whole queue has been processed.
func (rm *ResourceManager) IsComplete() bool {
	return rm.completed
}

// LoadNext loads the next queued asset and returns true once everything has been
// processed. OnComplete fires exactly once.
func (rm *ResourceManager) LoadNext() bool {
	if rm.completed {
		return true
	}

	if rm.next < len(rm.queue) {
		task := rm.queue[rm.next]
		rm.next++
		if err := task.run(); err != nil {
			rm.failed = append(rm.failed, task.src)
			rm.logger.Warn("Error loading asset: "+task.src, "id", task.id, "err", err)
			if rm.events.OnFileError != nil {
				rm.events.OnFileError(task.src, err)
			}
		}
		if rm.events.OnProgress != nil {
			rm.events.OnProgress(rm.Progress())
		}
	}

	if rm.next >= len(rm.queue) {
		rm.completed = true
		rm.logger.Info("All assets loaded", "failed", len(rm.failed))
		if rm.events.OnComplete != nil {
			rm.events.OnComplete()
		}
		return true
	}
	return false
}

// LoadAll processes the remaining queue synchronously.
func (rm *ResourceManager) LoadAll() {
	for !rm.LoadNext() {
	}
}

// LoadImage loads an image from the assets FS and caches it by path.
func (rm *ResourceManager) LoadImage(p string) (*ebiten.Image, error) {
	if cached, exists := rm.imageCache[p]; exists {
		return cached, nil
	}

	data, err := fs.ReadFile(rm.assets, p)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", p, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[p] = ebitenImg
	return ebitenImg, nil
}

// loadAtlas parses the atlas JSON first so frame sizes are known even when the
// page image is missing.
func (rm *ResourceManager) loadAtlas(id, dataPath, imagePath string) error {
	data, err := fs.ReadFile(rm.assets, dataPath)
	if err != nil {
		return fmt.Errorf("failed to read atlas %s: %w", dataPath, err)
	}
	a, err := atlas.ParseTexturePacker(data)
	if err != nil {
		return fmt.Errorf("atlas %s: %w", dataPath, err)
	}

	tex := &Texture{ID: id, Atlas: a, Pages: make([]*ebiten.Image, 1)}
	rm.textures[id] = tex

	img, err := rm.LoadImage(imagePath)
	if err != nil {
		return err
	}
	tex.Pages[0] = img
	return nil
}

func (rm *ResourceManager) loadMultiAtlas(id, dataPath string) error {
	data, err := fs.ReadFile(rm.assets, dataPath)
	if err != nil {
		return fmt.Errorf("failed to read multiatlas %s: %w", dataPath, err)
	}
	a, err := atlas.ParseMultiAtlas(data)
	if err != nil {
		return fmt.Errorf("multiatlas %s: %w", dataPath, err)
	}

	tex := &Texture{ID: id, Atlas: a, Pages: make([]*ebiten.Image, len(a.Pages))}
	rm.textures[id] = tex

	dir := path.Dir(dataPath)
	var firstErr error
	for i, page := range a.Pages {
		img, err := rm.LoadImage(path.Join(dir, page.Image))
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		tex.Pages[i] = img
	}
	return firstErr
}

func (rm *ResourceManager) loadSpritesheet(r SpritesheetResource, src string) error {
	img, err := rm.LoadImage(src)
	if err != nil {
		return err
	}
	b := img.Bounds()
	a, err := atlas.NewSpritesheet(src, b.Dx(), b.Dy(), atlas.SheetConfig{
		FrameWidth:  r.FrameWidth,
		FrameHeight: r.FrameHeight,
		Margin:      r.Margin,
		Spacing:     r.Spacing,
	})
	if err != nil {
		return fmt.Errorf("spritesheet %s: %w", src, err)
	}
	rm.textures[r.ID] = &Texture{ID: r.ID, Atlas: a, Pages: []*ebiten.Image{img}}
	return nil
}

// loadSound decodes an OGG sound effect into a non-looping player.
func (rm *ResourceManager) loadSound(id, src string) error {
	if ext := strings.ToLower(path.Ext(src)); ext != ".ogg" {
		return fmt.Errorf("unsupported audio format: %s (supported: .ogg)", ext)
	}
	if rm.audioContext == nil {
		return fmt.Errorf("audio disabled, skipping %s", src)
	}

	data, err := fs.ReadFile(rm.assets, src)
	if err != nil {
		return fmt.Errorf("failed to read sound effect file %s: %w", src, err)
	}
	stream, err := vorbis.DecodeWithoutResampling(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode OGG sound effect %s: %w", src, err)
	}
	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return fmt.Errorf("failed to create audio player for %s: %w", src, err)
	}
	rm.sounds[id] = player
	return nil
}

// Texture returns a loaded texture.
func (rm *ResourceManager) Texture(id string) (*Texture, bool) {
	tex, ok := rm.textures[id]
	return tex, ok
}

// Frame returns the named frame of texture id, or nil when the texture, the
// frame or its page image is missing. An empty frame name returns the whole
// first page.
func (rm *ResourceManager) Frame(id, frame string) *ebiten.Image {
	key := id + "#" + frame
	if cached, ok := rm.frameCache[key]; ok {
		return cached
	}

	tex, ok := rm.textures[id]
	if !ok {
		return nil
	}
	if frame == "" || tex.Atlas == nil {
		if len(tex.Pages) == 0 {
			return nil
		}
		return tex.Pages[0]
	}

	f, ok := tex.Atlas.Frame(frame)
	if !ok || f.Page >= len(tex.Pages) || tex.Pages[f.Page] == nil {
		return nil
	}
	r := image.Rect(f.Rect.X, f.Rect.Y, f.Rect.X+f.Rect.W, f.Rect.Y+f.Rect.H)
	sub := tex.Pages[f.Page].SubImage(r).(*ebiten.Image)
	rm.frameCache[key] = sub
	return sub
}

// FrameIndex returns frame i of a spritesheet texture.
func (rm *ResourceManager) FrameIndex(id string, i int) *ebiten.Image {
	return rm.Frame(id, strconv.Itoa(i))
}

// FrameSize returns the size of a frame from the atlas data, even when its image
// failed to load.
func (rm *ResourceManager) FrameSize(id, frame string) (int, int, bool) {
	tex, ok := rm.textures[id]
	if !ok {
		return 0, 0, false
	}
	if tex.Atlas == nil || frame == "" {
		if len(tex.Pages) == 0 || tex.Pages[0] == nil {
			return 0, 0, false
		}
		b := tex.Pages[0].Bounds()
		return b.Dx(), b.Dy(), true
	}
	f, ok := tex.Atlas.Frame(frame)
	if !ok {
		return 0, 0, false
	}
	return f.Rect.W, f.Rect.H, true
}

// Tilemap returns a loaded Tiled map.
func (rm *ResourceManager) Tilemap(id string) (*tiled.Map, bool) {
	m, ok := rm.tilemaps[id]
	return m, ok
}

// Sound returns the player of a loaded sound, or nil.
func (rm *ResourceManager) Sound(id string) *audio.Player {
	return rm.sounds[id]
}

// Font returns a cached Go font face of the given size. No font file is needed:
// the Go fonts are compiled in.
func (rm *ResourceManager) Font(size float64, bold bool) *text.GoTextFace {
	cacheKey := fmt.Sprintf("%t:%.1f", bold, size)
	if face, ok := rm.fontFaces[cacheKey]; ok {
		return face
	}

	source, ok := rm.fontSources[bold]
	if !ok {
		ttf := goregular.TTF
		if bold {
			ttf = gobold.TTF
		}
		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			rm.logger.Error("failed to create font source", "err", err)
			return nil
		}
		rm.fontSources[bold] = source
	}

	face := &text.GoTextFace{Source: source, Size: size}
	rm.fontFaces[cacheKey] = face
	return face
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
