// Package app 提供方块放置演示程序的核心包装器
//
// 该包把初始化逻辑从 main 包中提取出来：main.go 负责解析参数、
// 初始化嵌入资源并加载方块目录，然后调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"

	"github.com/decker502/blockgrid/pkg/config"
	"github.com/decker502/blockgrid/pkg/ecs"
	"github.com/decker502/blockgrid/pkg/render"
	"github.com/decker502/blockgrid/pkg/systems"
	"github.com/decker502/blockgrid/pkg/types"
	"github.com/decker502/blockgrid/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 状态栏高度（网格下方）
const statusBarHeight = 48

var backgroundColor = color.RGBA{R: 20, G: 24, B: 30, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Catalog 已加载的方块目录（必填）
	Catalog *config.BlockCatalog
	// Seed 随机种子，0 表示使用固定默认种子 1
	Seed int64
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
//
// 操作：
//   - 左键：在悬停格子放置候选方块
//   - 右键：移除覆盖悬停格子的方块
//   - R：旋转候选方块，N：换一个候选方块，C：清空网格
//   - 1~9：按目录顺序选择形状，F11：切换全屏
type App struct {
	catalog *config.BlockCatalog

	entityManager   *ecs.EntityManager
	grid            *systems.GridMap
	renderSystem    *render.GridRenderSystem
	placementSystem *systems.BlockPlacementSystem

	hover   types.GridCoord
	hoverIn bool

	screenWidth  int
	screenHeight int
}

// NewApp 创建并初始化演示应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.Catalog == nil {
		return nil, fmt.Errorf("方块目录未加载")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}

	em := ecs.NewEntityManager()
	grid := systems.NewGridMap(nil)
	if err := grid.InitializeFromConfig(cfg.Catalog.Grid); err != nil {
		return nil, fmt.Errorf("网格初始化失败: %w", err)
	}

	renderSystem := render.NewGridRenderSystem(em, grid)
	grid.SetSink(renderSystem)

	generator := systems.NewBlockGenerator(cfg.Catalog, rand.New(rand.NewSource(seed)))
	placementSystem, err := systems.NewBlockPlacementSystem(em, grid, generator)
	if err != nil {
		return nil, fmt.Errorf("放置系统初始化失败: %w", err)
	}

	layout := grid.Layout()
	a := &App{
		catalog:         cfg.Catalog,
		entityManager:   em,
		grid:            grid,
		renderSystem:    renderSystem,
		placementSystem: placementSystem,
		screenWidth:     int(2*layout.OriginX + float64(layout.Columns)*layout.CellSize),
		screenHeight:    int(2*layout.OriginY+float64(layout.Rows)*layout.CellSize) + statusBarHeight,
	}

	log.Printf("[App] Started with %d shapes, seed=%d", len(cfg.Catalog.ShapeNames()), seed)
	return a, nil
}

// ScreenSize 返回逻辑屏幕尺寸（用于设置窗口大小）
func (a *App) ScreenSize() (int, int) {
	return a.screenWidth, a.screenHeight
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.handleKeys()

	pointer := readPointerState()
	action, cell, in := pointer.GridAction(a.grid.Layout())
	a.hover, a.hoverIn = cell, in
	switch action {
	case utils.PointerPlace:
		a.placementSystem.QueuePlace(cell)
	case utils.PointerRemove:
		a.placementSystem.QueueRemoveAt(cell)
	}

	deltaTime := 1.0 / 60.0
	a.placementSystem.Update(deltaTime)
	return nil
}

func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.placementSystem.RotateCandidate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.placementSystem.QueueClear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := a.placementSystem.NextCandidate(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}

	names := a.catalog.ShapeNames()
	for i := 0; i < len(names) && i < 9; i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			if err := a.placementSystem.SelectShape(names[i]); err != nil {
				log.Printf("[App] Warning: %v", err)
			}
		}
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	var preview []types.GridCoord
	valid := false
	if a.hoverIn {
		preview = a.placementSystem.PreviewCells(a.hover)
		valid = a.placementSystem.CanPlaceCandidate(a.hover)
	}
	a.renderSystem.Draw(screen, preview, valid, a.placementSystem.GetRejectAlpha())

	ebitenutil.DebugPrintAt(screen, a.statusLine(), 8, a.screenHeight-statusBarHeight+8)
}

// statusLine 状态栏文本
func (a *App) statusLine() string {
	shape := "-"
	if c, ok := a.placementSystem.Candidate(); ok {
		shape = fmt.Sprintf("%s %v", c.Shape.Name(), c.Contents)
	}
	line := fmt.Sprintf("blocks: %d  candidate: %s", a.grid.BlockCount(), shape)
	if err := a.placementSystem.LastError(); err != nil {
		line += "\n" + err.Error()
	} else {
		line += "\nLMB place  RMB remove  R rotate  N next  C clear  1-9 shape"
	}
	return line
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenWidth, a.screenHeight
}
