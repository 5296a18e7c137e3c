package tui

import (
	"io"
	stdlog "log"

	"github.com/charmbracelet/log"
)

// NewFileLogger 创建终端界面使用的日志器
// 终端界面运行时标准输出被 alt-screen 占用，所有日志都必须写入 w（通常是日志文件）。
//
// 参数:
//   - w: 日志输出目标
//   - verbose: 是否输出调试级别日志
func NewFileLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridtui",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// RedirectStdLog 把标准库 log 的默认输出接到 logger
// 核心系统使用 log.Printf("[Component] ...") 记录日志，不重定向会直接写到终端上。
//
// 返回:
//   - func(): 恢复原来的输出和标志位
func RedirectStdLog(logger *log.Logger) func() {
	prevOut := stdlog.Writer()
	prevFlags := stdlog.Flags()
	prevPrefix := stdlog.Prefix()

	std := logger.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	stdlog.SetOutput(std.Writer())

	return func() {
		stdlog.SetOutput(prevOut)
		stdlog.SetFlags(prevFlags)
		stdlog.SetPrefix(prevPrefix)
	}
}
