package tiled

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// rawLayer keeps Data undecoded, because Tiled writes it either as a number array
// (CSV) or as a string (base64).
type rawLayer struct {
	Layer
	RawData json.RawMessage `json:"data,omitempty"`
	Layers  []*rawLayer     `json:"layers,omitempty"`
}

type rawMap struct {
	Map
	RawLayers []*rawLayer `json:"layers"`
}

// Parse decodes a Tiled JSON document.
//
// Group layers are flattened in document order. Infinite maps, non-orthogonal
// maps, base64 layer data and external tilesets are rejected.
func Parse(data []byte) (*Map, error) {
	var raw rawMap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode tiled map: %w", err)
	}

	m := raw.Map
	if m.Orientation != "" && m.Orientation != "orthogonal" {
		return nil, fmt.Errorf("unsupported map orientation %q", m.Orientation)
	}
	if m.Infinite {
		return nil, fmt.Errorf("infinite maps are not supported")
	}
	if m.Width <= 0 || m.Height <= 0 || m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d (tile %dx%d)", m.Width, m.Height, m.TileWidth, m.TileHeight)
	}

	for _, ts := range m.Tilesets {
		if ts.Source != "" {
			return nil, fmt.Errorf("external tileset %q is not supported", ts.Source)
		}
		if ts.FirstGID == 0 {
			return nil, fmt.Errorf("tileset %q has invalid firstgid 0", ts.Name)
		}
	}

	layers, err := flattenLayers(raw.RawLayers)
	if err != nil {
		return nil, err
	}
	m.Layers = layers
	return &m, nil
}

func flattenLayers(raws []*rawLayer) ([]*Layer, error) {
	result := make([]*Layer, 0, len(raws))
	for _, rl := range raws {
		if rl.Type == LayerTypeGroup {
			children, err := flattenLayers(rl.Layers)
			if err != nil {
				return nil, err
			}
			result = append(result, children...)
			continue
		}

		layer := rl.Layer
		if layer.Type == LayerTypeTile {
			if layer.Encoding != "" && layer.Encoding != "csv" {
				return nil, fmt.Errorf("layer %q: unsupported encoding %q", layer.Name, layer.Encoding)
			}
			if err := json.Unmarshal(rl.RawData, &layer.Data); err != nil {
				return nil, fmt.Errorf("layer %q: failed to decode tile data: %w", layer.Name, err)
			}
			if len(layer.Data) != layer.Width*layer.Height {
				return nil, fmt.Errorf("layer %q: expected %d tiles, got %d",
					layer.Name, layer.Width*layer.Height, len(layer.Data))
			}
		}
		result = append(result, &layer)
	}
	return result, nil
}

// Load reads and parses a Tiled JSON map from fsys.
func Load(fsys fs.FS, path string) (*Map, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tiled map %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tiled map %s: %w", path, err)
	}
	return m, nil
}
