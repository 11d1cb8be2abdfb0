package particle

import (
	"fmt"
	"io/fs"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

// File is the layout of a particle YAML file.
type File struct {
	Emitters []EmitterConfig `yaml:"emitters"`
}

// Parse decodes and validates emitter configs from YAML.
func Parse(data []byte) ([]*EmitterConfig, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse particle config: %w", err)
	}

	result := make([]*EmitterConfig, 0, len(f.Emitters))
	for i := range f.Emitters {
		cfg := &f.Emitters[i]
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		result = append(result, cfg)
	}
	return result, nil
}

// Library holds emitter configs by name.
type Library struct {
	configs map[string]*EmitterConfig
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{configs: make(map[string]*EmitterConfig)}
}

// Add registers configs. Names must be unique across the library.
func (l *Library) Add(configs ...*EmitterConfig) error {
	for _, cfg := range configs {
		if _, exists := l.configs[cfg.Name]; exists {
			return fmt.Errorf("duplicate emitter %q", cfg.Name)
		}
		l.configs[cfg.Name] = cfg
	}
	return nil
}

// Get returns the named config.
func (l *Library) Get(name string) (*EmitterConfig, error) {
	cfg, ok := l.configs[name]
	if !ok {
		return nil, fmt.Errorf("emitter %q not found", name)
	}
	return cfg, nil
}

// Names returns the registered names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.configs))
	for name := range l.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadDir loads every *.yaml file of dir in fsys into a new library.
func LoadDir(fsys fs.FS, dir string) (*Library, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list particle configs: %w", err)
	}

	lib := NewLibrary()
	for _, file := range matches {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		configs, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if err := lib.Add(configs...); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}
	return lib, nil
}
