package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	m, err := gdata.Open(gdata.Config{AppName: "coinquest_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.SoundVolume != 1.0 || !s.SoundEnabled || s.Fullscreen {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestSettingsManagerMemoryOnly(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.Persistent() {
		t.Errorf("nil gdata manager should not be persistent")
	}

	sm.SetSoundVolume(1.5)
	if got := sm.GetSettings().SoundVolume; got != 1.0 {
		t.Errorf("volume should clamp to 1.0, got %v", got)
	}
	sm.SetSoundVolume(-1)
	if got := sm.GetSettings().SoundVolume; got != 0 {
		t.Errorf("volume should clamp to 0, got %v", got)
	}

	if err := sm.Save(); err != nil {
		t.Errorf("Save without gdata should be a no-op, got %v", err)
	}
}

func TestSettingsManagerSaveLoad(t *testing.T) {
	m := openTestGdata(t)

	sm := NewSettingsManager(m)
	if !sm.Persistent() {
		t.Fatalf("expected persistent settings manager")
	}
	sm.SetSoundVolume(0.25)
	sm.SetSoundEnabled(false)
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewSettingsManager(m)
	s := reloaded.GetSettings()
	if s.SoundVolume != 0.25 || s.SoundEnabled || !s.Fullscreen {
		t.Errorf("reloaded settings mismatch: %+v", s)
	}
}

func TestSettingsManagerCorruptData(t *testing.T) {
	m := openTestGdata(t)
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("soundVolume: [broken")); err != nil {
		t.Fatalf("failed to write corrupt settings: %v", err)
	}

	sm := NewSettingsManager(m)
	if got := sm.GetSettings(); *got != *DefaultSettings() {
		t.Errorf("corrupt data should fall back to defaults, got %+v", got)
	}
	if err := sm.Load(); err == nil {
		t.Errorf("expected Load to report the unmarshal error")
	}
}
