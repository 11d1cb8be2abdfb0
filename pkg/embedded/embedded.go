// Package embedded 提供嵌入数据的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 只嵌入 data/（关卡、资源清单、调优和粒子配置）；图片和音效在运行时从 --assets 目录读取。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotInitialized Init 之前访问
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

const dataPrefix = "data/"

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置嵌入的 data 文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一分隔符、去掉 "./" 前缀并检查 data/ 前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, dataPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// dataOnly 只暴露 data/ 下文件的只读视图
type dataOnly struct{}

func (dataOnly) Open(name string) (fs.File, error) {
	return Open(name)
}

// FS 返回可传给资源管理器的文件系统
func FS() fs.FS {
	return dataOnly{}
}

// Open 打开 data/ 下的文件
func Open(path string) (fs.File, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	return dataFS.Open(p)
}

// ReadFile 读取 data/ 下的文件内容
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Sub 返回 data/ 下指定目录的子文件系统
func Sub(dir string) (fs.FS, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(dir)
	if err != nil {
		return nil, err
	}
	return fs.Sub(dataFS, strings.TrimSuffix(p, "/"))
}
