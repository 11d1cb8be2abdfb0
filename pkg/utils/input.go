// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key 游戏逻辑按键
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyRestart
	KeyFullscreen
	KeyQuit
)

// InputSource 输入来源
// 玩法系统只依赖此接口，测试中用 FakeInput 代替键盘
type InputSource interface {
	IsKeyPressed(k Key) bool
	IsKeyJustPressed(k Key) bool
	// PointerPosition 指针位置（屏幕坐标）
	PointerPosition() (int, int)
	// IsPointerJustPressed 指针是否刚刚按下（鼠标左键或触摸）
	IsPointerJustPressed() bool
}

// EbitenInput 基于 Ebitengine 键盘/鼠标/触摸的输入来源
type EbitenInput struct{}

var keyBindings = map[Key][]ebiten.Key{
	KeyLeft:       {ebiten.KeyArrowLeft},
	KeyRight:      {ebiten.KeyArrowRight},
	KeyUp:         {ebiten.KeyArrowUp},
	KeyRestart:    {ebiten.KeyR},
	KeyFullscreen: {ebiten.KeyF11},
	KeyQuit:       {ebiten.KeyEscape},
}

// IsKeyPressed 按键是否按住
func (EbitenInput) IsKeyPressed(k Key) bool {
	for _, key := range keyBindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// IsKeyJustPressed 按键是否在本帧刚按下
func (EbitenInput) IsKeyJustPressed(k Key) bool {
	for _, key := range keyBindings[k] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

// PointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func (EbitenInput) PointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
func (EbitenInput) IsPointerJustPressed() bool {
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// FakeInput 可编程的输入来源（用于测试）
//
// JustPressed 状态只保持一帧：调用 EndFrame 清除。
type FakeInput struct {
	pressed     map[Key]bool
	justPressed map[Key]bool
	PointerX    int
	PointerY    int
	Clicked     bool
}

// NewFakeInput 创建空的测试输入
func NewFakeInput() *FakeInput {
	return &FakeInput{
		pressed:     make(map[Key]bool),
		justPressed: make(map[Key]bool),
	}
}

// Press 按下并保持按键
func (f *FakeInput) Press(k Key) {
	if !f.pressed[k] {
		f.justPressed[k] = true
	}
	f.pressed[k] = true
}

// Release 松开按键
func (f *FakeInput) Release(k Key) {
	f.pressed[k] = false
}

// Tap 本帧按下，下一帧 EndFrame 后松开
func (f *FakeInput) Tap(k Key) {
	f.Press(k)
	f.pressed[k] = false
}

// EndFrame 清除单帧状态
func (f *FakeInput) EndFrame() {
	f.justPressed = make(map[Key]bool)
	f.Clicked = false
}

func (f *FakeInput) IsKeyPressed(k Key) bool     { return f.pressed[k] }
func (f *FakeInput) IsKeyJustPressed(k Key) bool { return f.justPressed[k] }
func (f *FakeInput) PointerPosition() (int, int) { return f.PointerX, f.PointerY }
func (f *FakeInput) IsPointerJustPressed() bool  { return f.Clicked }
