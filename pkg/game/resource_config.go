package game

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the asset manifest loaded from YAML.
// It defines the structure of data/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: ""
//	groups:
//	  group_name:
//	    images: [...]
//	    atlases: [...]
//	    multiatlases: [...]
//	    spritesheets: [...]
//	    tilemaps: [...]
//	    sounds: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Prefix for all asset paths inside the assets FS
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that are loaded together.
type ResourceGroup struct {
	Images       []ImageResource       `yaml:"images"`
	Atlases      []AtlasResource       `yaml:"atlases"`
	MultiAtlases []MultiAtlasResource  `yaml:"multiatlases"`
	Spritesheets []SpritesheetResource `yaml:"spritesheets"`
	Tilemaps     []TilemapResource     `yaml:"tilemaps"`
	Sounds       []SoundResource       `yaml:"sounds"`
}

// ImageResource is a single image.
//
// Example:
//
//	- id: tilemap_tiles
//	  path: tilemap_packed.png
type ImageResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// AtlasResource is a TexturePacker JSON atlas with one page image.
//
// Example:
//
//	- id: platformer_characters
//	  image: tilemap-characters-packed.png
//	  data: tilemap-characters-packed.json
type AtlasResource struct {
	ID    string `yaml:"id"`
	Image string `yaml:"image"`
	Data  string `yaml:"data"`
}

// MultiAtlasResource is a TexturePacker multi-atlas; page images are resolved
// relative to the JSON file.
type MultiAtlasResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// SpritesheetResource is an image cut into a uniform grid of frames.
type SpritesheetResource struct {
	ID          string `yaml:"id"`
	Path        string `yaml:"path"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
	Margin      int    `yaml:"margin,omitempty"`
	Spacing     int    `yaml:"spacing,omitempty"`
}

// TilemapResource is a Tiled JSON map. Paths resolve against the data FS, not the
// assets FS, so the level is always available.
type TilemapResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// SoundResource is a one-shot sound effect (.ogg).
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// ParseResourceConfig decodes and validates a manifest.
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resource config: %w", err)
	}
	return &cfg, nil
}

// LoadResourceConfig reads a manifest from fsys.
func LoadResourceConfig(fsys fs.FS, path string) (*ResourceConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource config %s: %w", path, err)
	}
	return ParseResourceConfig(data)
}

// Validate checks that every resource has an ID and a path, and that IDs are unique
// per kind (an image and a sound may share an ID).
func (c *ResourceConfig) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("no resource groups defined")
	}

	textures := make(map[string]bool)
	sounds := make(map[string]bool)
	tilemaps := make(map[string]bool)

	check := func(seen map[string]bool, kind, id, path string) error {
		if id == "" {
			return fmt.Errorf("%s without id", kind)
		}
		if path == "" {
			return fmt.Errorf("%s %q has no path", kind, id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate %s id %q", kind, id)
		}
		seen[id] = true
		return nil
	}

	for _, name := range c.GroupNames() {
		g := c.Groups[name]
		for _, r := range g.Images {
			if err := check(textures, "texture", r.ID, r.Path); err != nil {
				return err
			}
		}
		for _, r := range g.Atlases {
			if r.Data == "" {
				return fmt.Errorf("atlas %q has no data file", r.ID)
			}
			if err := check(textures, "texture", r.ID, r.Image); err != nil {
				return err
			}
		}
		for _, r := range g.MultiAtlases {
			if err := check(textures, "texture", r.ID, r.Path); err != nil {
				return err
			}
		}
		for _, r := range g.Spritesheets {
			if r.FrameWidth <= 0 || r.FrameHeight <= 0 {
				return fmt.Errorf("spritesheet %q has invalid frame size", r.ID)
			}
			if err := check(textures, "texture", r.ID, r.Path); err != nil {
				return err
			}
		}
		for _, r := range g.Tilemaps {
			if err := check(tilemaps, "tilemap", r.ID, r.Path); err != nil {
				return err
			}
		}
		for _, r := range g.Sounds {
			if err := check(sounds, "sound", r.ID, r.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

// GroupNames returns group names in sorted order.
func (c *ResourceConfig) GroupNames() []string {
	return sortedKeys(c.Groups)
}

// buildFullPath constructs the full file path for a resource.
// It combines the base path with the resource's relative path.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
