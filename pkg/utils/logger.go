package utils

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger 配置全局日志
//
// verbose 为 false 时只输出警告及以上级别。
func SetupLogger(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	log.SetDefault(logger)
	return logger
}

// Logger 返回带子系统前缀的日志记录器（如 "SceneManager"）
func Logger(subsystem string) *log.Logger {
	return log.Default().WithPrefix(subsystem)
}
