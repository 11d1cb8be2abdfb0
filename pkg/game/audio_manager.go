package game

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/coinquest/pkg/utils"
)

// AudioManager 音效播放
//
// 所有音效都通过资源ID播放，实际音量 = 调用方音量 × 设置中的总音量。
// 资源未加载（静音模式或文件缺失）时安静跳过。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager
	logger          *log.Logger
	missing         map[string]bool
}

// NewAudioManager 创建音频管理器，sm 可为 nil
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		logger:          utils.Logger("AudioManager"),
		missing:         make(map[string]bool),
	}
}

// PlaySound 从头播放一个音效，返回是否真正播放
func (am *AudioManager) PlaySound(soundID string, volume float64) bool {
	master := 1.0
	if am.settingsManager != nil {
		settings := am.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
		master = settings.SoundVolume
	}

	if am.resourceManager == nil {
		return false
	}
	player := am.resourceManager.Sound(soundID)
	if player == nil {
		if !am.missing[soundID] {
			am.missing[soundID] = true
			am.logger.Debug("sound not loaded", "id", soundID)
		}
		return false
	}

	player.SetVolume(utils.Clamp(volume*master, 0, 1))
	if err := player.Rewind(); err != nil {
		am.logger.Warn("failed to rewind sound", "id", soundID, "err", err)
	}
	player.Play()
	return true
}

// StopAll 停止所有正在播放的音效（场景切换时调用）
func (am *AudioManager) StopAll() {
	if am.resourceManager == nil {
		return
	}
	for _, p := range am.resourceManager.sounds {
		if p.IsPlaying() {
			p.Pause()
		}
	}
}
