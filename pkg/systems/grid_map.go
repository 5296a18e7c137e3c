package systems

import (
	"log"

	"github.com/decker502/blockgrid/pkg/config"
	"github.com/decker502/blockgrid/pkg/ecs"
	"github.com/decker502/blockgrid/pkg/types"
	"github.com/decker502/blockgrid/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
)

// CellUpdate 单个格子的显示状态变化
type CellUpdate struct {
	Cell   types.GridCoord
	Filled bool
}

// VisualizationSink 可视化接收端（瓦片渲染器等）
// GridMap 在放置/移除/清空成功后通知它，从不向它查询
type VisualizationSink interface {
	OnCellsChanged(updates []CellUpdate)
}

// PlacedBlock 已放置方块的记录
type PlacedBlock struct {
	Anchor types.GridCoord    // 锚点
	Handle ecs.EntityID       // 方块实体句柄（GridMap 不关心其内部）
	Shape  config.ShapeConfig // 放置时使用的形状
}

// GridMap 网格占用表
//
// 格子占用状态和锚点→方块映射的唯一权威。
// 占用表是按 y*width+x 索引的一维数组。
//
// 非并发安全：所有写操作（PlaceBlock、RemoveBlock、ClearAll）都在一次 tick 内同步完成。
// CanPlaceBlock 以及其他查询不做任何写入。
type GridMap struct {
	width    int
	height   int
	cellSize float64
	origin   mgl64.Vec2

	occupancy []bool
	blocks    map[types.GridCoord]PlacedBlock
	order     []types.GridCoord // 按放置顺序记录的锚点

	sink VisualizationSink
}

// NewGridMap 创建网格（尚未初始化，所有格子都视为越界）
// 参数:
//   - sink: 可视化接收端，可为 nil
func NewGridMap(sink VisualizationSink) *GridMap {
	return &GridMap{
		blocks: make(map[types.GridCoord]PlacedBlock),
		sink:   sink,
	}
}

// SetSink 替换可视化接收端
func (g *GridMap) SetSink(sink VisualizationSink) {
	g.sink = sink
}

// Initialize 分配 width*height 的空占用表并清空方块映射
// 参数:
//   - width, height: 网格尺寸，必须 > 0
//   - cellSize: 每格边长，必须 > 0
//
// 返回:
//   - error: 尺寸非法时返回 *config.ConfigError，网格保持原状
func (g *GridMap) Initialize(width, height int, cellSize float64) error {
	return g.InitializeFromConfig(config.GridConfig{Width: width, Height: height, CellSize: cellSize})
}

// InitializeFromConfig 按网格配置初始化（包括世界坐标原点）
func (g *GridMap) InitializeFromConfig(cfg config.GridConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	g.width = cfg.Width
	g.height = cfg.Height
	g.cellSize = cfg.CellSize
	g.origin = mgl64.Vec2{cfg.OriginX, cfg.OriginY}
	g.occupancy = make([]bool, cfg.Width*cfg.Height)
	g.blocks = make(map[types.GridCoord]PlacedBlock)
	g.order = nil

	log.Printf("[GridMap] Initialized %dx%d grid (cellSize=%.2f)", g.width, g.height, g.cellSize)
	return nil
}

// Width 返回列数
func (g *GridMap) Width() int { return g.width }

// Height 返回行数
func (g *GridMap) Height() int { return g.height }

// CellSize 返回每格边长
func (g *GridMap) CellSize() float64 { return g.cellSize }

// Origin 返回网格左上角的世界坐标
func (g *GridMap) Origin() mgl64.Vec2 { return g.origin }

// BlockCount 返回已放置方块数量
func (g *GridMap) BlockCount() int { return len(g.blocks) }

// InBounds 检查格子是否在 [0,width) × [0,height) 范围内
func (g *GridMap) InBounds(cell types.GridCoord) bool {
	return cell.X >= 0 && cell.X < g.width && cell.Y >= 0 && cell.Y < g.height
}

func (g *GridMap) index(cell types.GridCoord) int {
	return cell.Y*g.width + cell.X
}

// IsCellOccupied 检查格子是否被占用
// 越界格子视为"已占用"，使边界检查可以和放置逻辑直接组合
func (g *GridMap) IsCellOccupied(cell types.GridCoord) bool {
	if !g.InBounds(cell) {
		return true
	}
	return g.occupancy[g.index(cell)]
}

// checkPlacement 按形状偏移量顺序检查每个目标格子
// 返回第一个失败的原因；可以放置时返回 nil。不做任何写入
func (g *GridMap) checkPlacement(anchor types.GridCoord, shape config.ShapeConfig) *PlacementError {
	if shape.CellCount() <= 0 {
		return &PlacementError{Reason: PlacementEmptyShape, Anchor: anchor, Cell: anchor}
	}

	for _, cell := range shape.Cells(anchor) {
		if !g.InBounds(cell) {
			return &PlacementError{Reason: PlacementOutOfBounds, Anchor: anchor, Cell: cell}
		}
		if g.occupancy[g.index(cell)] {
			return &PlacementError{Reason: PlacementOverlap, Anchor: anchor, Cell: cell}
		}
	}

	// 锚点已被另一个方块作为键使用（其形状不一定覆盖锚点格子）
	if _, exists := g.blocks[anchor]; exists {
		return &PlacementError{Reason: PlacementOverlap, Anchor: anchor, Cell: anchor}
	}
	return nil
}

// CanPlaceBlock 检查形状能否放在锚点处
// 任何格子越界或已被占用、或形状为空时返回 false。纯查询，无副作用
func (g *GridMap) CanPlaceBlock(anchor types.GridCoord, shape config.ShapeConfig) bool {
	return g.checkPlacement(anchor, shape) == nil
}

// PlaceBlock 在锚点处放置方块
//
// 放置前重新校验（防止调用方持有过期的 CanPlaceBlock 结果）。
// 成功时一次性标记所有目标格子并记录 锚点→(句柄, 形状)；
// 失败时返回 *PlacementError（OutOfBounds / Overlap / EmptyShape），不修改任何状态。
func (g *GridMap) PlaceBlock(anchor types.GridCoord, shape config.ShapeConfig, handle ecs.EntityID) error {
	if perr := g.checkPlacement(anchor, shape); perr != nil {
		return perr
	}

	cells := shape.Cells(anchor)
	updates := make([]CellUpdate, len(cells))
	for i, cell := range cells {
		g.occupancy[g.index(cell)] = true
		updates[i] = CellUpdate{Cell: cell, Filled: true}
	}
	g.blocks[anchor] = PlacedBlock{Anchor: anchor, Handle: handle, Shape: shape}
	g.order = append(g.order, anchor)

	g.notify(updates)
	return nil
}

// RemoveBlock 移除锚点处的方块
//
// 清空该方块形状覆盖的所有格子（越界格子跳过），删除映射，
// 返回保存的句柄，由调用方负责销毁实体。
//
// 返回:
//   - ecs.EntityID: 方块句柄
//   - error: 锚点处没有方块时返回 *RemovalError，不修改任何状态
func (g *GridMap) RemoveBlock(anchor types.GridCoord) (ecs.EntityID, error) {
	block, ok := g.blocks[anchor]
	if !ok {
		return ecs.InvalidEntity, &RemovalError{Anchor: anchor}
	}

	updates := g.releaseCells(block)
	delete(g.blocks, anchor)
	for i, a := range g.order {
		if a == anchor {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	g.notify(updates)
	return block.Handle, nil
}

// releaseCells 清空方块占用的格子，返回显示更新列表
func (g *GridMap) releaseCells(block PlacedBlock) []CellUpdate {
	cells := block.Shape.Cells(block.Anchor)
	updates := make([]CellUpdate, 0, len(cells))
	for _, cell := range cells {
		if !g.InBounds(cell) {
			continue
		}
		g.occupancy[g.index(cell)] = false
		updates = append(updates, CellUpdate{Cell: cell, Filled: false})
	}
	return updates
}

// GetBlockAt 返回锚点处方块的句柄
func (g *GridMap) GetBlockAt(anchor types.GridCoord) (ecs.EntityID, bool) {
	block, ok := g.blocks[anchor]
	if !ok {
		return ecs.InvalidEntity, false
	}
	return block.Handle, true
}

// FindBlockCovering 查找覆盖指定格子的方块
// 用于"点击任意格子移除整个方块"之类的交互
func (g *GridMap) FindBlockCovering(cell types.GridCoord) (PlacedBlock, bool) {
	if !g.InBounds(cell) || !g.occupancy[g.index(cell)] {
		return PlacedBlock{}, false
	}
	for _, anchor := range g.order {
		block := g.blocks[anchor]
		for _, c := range block.Shape.Cells(anchor) {
			if c == cell {
				return block, true
			}
		}
	}
	return PlacedBlock{}, false
}

// ClearAll 清空所有方块
//
// 返回所有句柄（按放置顺序），由调用方负责销毁实体。
// 清空占用表和映射，网格尺寸、格子边长和原点保持不变。
func (g *GridMap) ClearAll() []ecs.EntityID {
	handles := make([]ecs.EntityID, 0, len(g.order))
	var updates []CellUpdate
	for _, anchor := range g.order {
		block := g.blocks[anchor]
		updates = append(updates, g.releaseCells(block)...)
		handles = append(handles, block.Handle)
	}

	// 防御：即使映射与占用表不一致，也保证占用表全部清空
	for i := range g.occupancy {
		g.occupancy[i] = false
	}
	g.blocks = make(map[types.GridCoord]PlacedBlock)
	g.order = nil

	if len(handles) > 0 {
		log.Printf("[GridMap] Cleared %d blocks", len(handles))
	}
	if len(updates) > 0 {
		g.notify(updates)
	}
	return handles
}

// PlacedBlocks 返回所有已放置方块的副本（按放置顺序）
func (g *GridMap) PlacedBlocks() []PlacedBlock {
	out := make([]PlacedBlock, 0, len(g.order))
	for _, anchor := range g.order {
		out = append(out, g.blocks[anchor])
	}
	return out
}

// OccupancySnapshot 返回占用表的副本（按 y*width+x 索引）
func (g *GridMap) OccupancySnapshot() []bool {
	out := make([]bool, len(g.occupancy))
	copy(out, g.occupancy)
	return out
}

// OccupiedCells 返回所有被占用的格子（按行优先顺序）
func (g *GridMap) OccupiedCells() []types.GridCoord {
	var cells []types.GridCoord
	for i, occupied := range g.occupancy {
		if occupied {
			cells = append(cells, types.GridCoord{X: i % g.width, Y: i / g.width})
		}
	}
	return cells
}

// GridToWorld 返回格子中心的世界坐标
func (g *GridMap) GridToWorld(cell types.GridCoord) mgl64.Vec2 {
	return utils.GridToWorld(cell, g.origin, g.cellSize)
}

// WorldToGrid 将世界坐标转换为网格坐标（向下取整，不做边界检查）
func (g *GridMap) WorldToGrid(pos mgl64.Vec2) types.GridCoord {
	return utils.WorldToGrid(pos, g.origin, g.cellSize)
}

// Layout 返回网格的屏幕布局（摄像机偏移为 0）
func (g *GridMap) Layout() utils.GridLayout {
	return utils.GridLayout{
		OriginX:  g.origin.X(),
		OriginY:  g.origin.Y(),
		Columns:  g.width,
		Rows:     g.height,
		CellSize: g.cellSize,
	}
}

func (g *GridMap) notify(updates []CellUpdate) {
	if g.sink != nil && len(updates) > 0 {
		g.sink.OnCellsChanged(updates)
	}
}
