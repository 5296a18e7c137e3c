package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/decker502/blockgrid/pkg/config"
	"github.com/decker502/blockgrid/pkg/embedded"
	"github.com/decker502/blockgrid/pkg/game"
	"github.com/decker502/blockgrid/pkg/tui"
)

var (
	rootDir     = flag.String("root", ".", "项目根目录（包含 data/）")
	catalogPath = flag.String("catalog", config.DefaultCatalogPath, "方块目录路径（相对于 root）")
	logPath     = flag.String("log", "gridtui.log", "日志文件路径")
	seed        = flag.Int64("seed", 0, "随机种子（0 使用当前时间）")
	verbose     = flag.Bool("verbose", false, "记录调试日志")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run 返回进程退出码，保证延迟关闭的日志文件在退出前刷新
func run() int {
	// 终端界面占用标准输出，日志写入文件
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法打开日志文件: %v\n", err)
		return 1
	}
	defer logFile.Close()

	logger := tui.NewFileLogger(logFile, *verbose)
	// 核心系统的 log.Printf 同样写入日志文件
	restore := tui.RedirectStdLog(logger)
	defer restore()

	embedded.Init(os.DirFS(*rootDir))
	catalog, err := game.LoadCatalog(game.OpenCatalogStore("blockgrid"), *catalogPath)
	if err != nil {
		logger.Error("failed to load catalog", "path", *catalogPath, "error", err)
		fmt.Fprintf(os.Stderr, "方块目录加载失败: %v\n", err)
		return 1
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	logger.Info("starting", "seed", s, "shapes", len(catalog.ShapeNames()))

	model, err := tui.NewModel(catalog, rand.New(rand.NewSource(s)), logger)
	if err != nil {
		logger.Error("failed to create model", "error", err)
		return 1
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("program exited with error", "error", err)
		return 1
	}
	logger.Info("bye", "blocks", model.Grid().BlockCount())
	return 0
}
