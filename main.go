package main

import (
	"flag"
	"log"

	"github.com/decker502/blockgrid/pkg/app"
	"github.com/decker502/blockgrid/pkg/config"
	"github.com/decker502/blockgrid/pkg/embedded"
	"github.com/decker502/blockgrid/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	seed        = flag.Int64("seed", 0, "随机种子（0 使用默认种子）")
	catalogPath = flag.String("catalog", config.DefaultCatalogPath, "内置方块目录路径")
	noOverride  = flag.Bool("no-override", false, "忽略已保存的目录覆盖配置")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（必须在加载目录之前）
	embedded.Init(dataFS)

	var store *game.CatalogStore
	if !*noOverride {
		store = game.OpenCatalogStore("blockgrid")
	}

	catalog, err := game.LoadCatalog(store, *catalogPath)
	if err != nil {
		log.Fatalf("方块目录加载失败: %v", err)
	}

	a, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Catalog: catalog,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatal(err)
	}

	w, h := a.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("方块网格放置演示")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
