package embedded

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func testData() fstest.MapFS {
	return fstest.MapFS{
		"data/config/gameplay.yaml": {Data: []byte("physics:\n  gravity: 1500\n")},
		"data/particles/menu.yaml":  {Data: []byte("emitters: []\n")},
		"data/levels/level.tmj":     {Data: []byte("{}")},
	}
}

func reset() {
	dataFS = nil
	initialized = false
}

func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	Init(testData())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

func TestNotInitialized(t *testing.T) {
	reset()

	if _, err := Open("data/config/gameplay.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open err = %v", err)
	}
	if _, err := ReadFile("data/config/gameplay.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile err = %v", err)
	}
	if _, err := Sub("data/levels"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Sub err = %v", err)
	}
	if Exists("data/config/gameplay.yaml") {
		t.Error("Exists should be false before Init()")
	}
}

func TestPathNormalization(t *testing.T) {
	Init(testData())
	defer reset()

	tests := []struct {
		path string
		ok   bool
	}{
		{"data/config/gameplay.yaml", true},
		{"./data/config/gameplay.yaml", true},
		{"data/config/missing.yaml", false},
		{"assets/tilemap_packed.png", false},
		{"config/gameplay.yaml", false},
	}
	for _, tt := range tests {
		_, err := ReadFile(tt.path)
		if (err == nil) != tt.ok {
			t.Errorf("ReadFile(%q) err = %v, want ok=%v", tt.path, err, tt.ok)
		}
	}
}

func TestFSServesDataTree(t *testing.T) {
	Init(testData())
	defer reset()

	fsys := FS()
	data, err := fs.ReadFile(fsys, "data/config/gameplay.yaml")
	if err != nil || len(data) == 0 {
		t.Fatalf("fs.ReadFile = %q, %v", data, err)
	}
	entries, err := fs.ReadDir(fsys, "data/particles")
	if err != nil || len(entries) != 1 || entries[0].Name() != "menu.yaml" {
		t.Errorf("ReadDir = %v, %v", entries, err)
	}
}

func TestSub(t *testing.T) {
	Init(testData())
	defer reset()

	levels, err := Sub("data/levels/")
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if _, err := fs.Stat(levels, "level.tmj"); err != nil {
		t.Errorf("level.tmj not found in sub FS: %v", err)
	}
	if _, err := Sub("assets"); err == nil {
		t.Error("Sub outside data/ should fail")
	}
}
