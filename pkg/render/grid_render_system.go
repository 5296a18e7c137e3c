// Package render 提供基于 ebiten 的网格可视化
//
// 放置核心（pkg/systems）只通过 VisualizationSink 接口通知格子变化，
// 本包实现该接口并负责绘制，终端界面等不依赖 ebiten 的前端无需引入本包。
package render

import (
	"image/color"

	"github.com/decker502/blockgrid/pkg/components"
	"github.com/decker502/blockgrid/pkg/ecs"
	"github.com/decker502/blockgrid/pkg/systems"
	"github.com/decker502/blockgrid/pkg/types"
	"github.com/decker502/blockgrid/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	gridBackgroundColor = color.RGBA{R: 34, G: 40, B: 49, A: 255}
	gridLineColor       = color.RGBA{R: 70, G: 80, B: 95, A: 255}
	filledCellColor     = color.RGBA{R: 120, G: 130, B: 140, A: 255}
	anchorMarkerColor   = color.RGBA{R: 250, G: 250, B: 250, A: 200}
	previewValidColor   = color.RGBA{R: 80, G: 220, B: 120, A: 110}
	previewInvalidColor = color.RGBA{R: 230, G: 70, B: 70, A: 110}
)

// contentColors 格子内容ID对应的填充色
// 未知内容使用 filledCellColor
var contentColors = map[string]color.RGBA{
	"arrow_tower":  {R: 196, G: 160, B: 90, A: 255},
	"cannon_tower": {R: 110, G: 110, B: 120, A: 255},
	"frost_tower":  {R: 120, G: 190, B: 235, A: 255},
	"gold_chest":   {R: 240, G: 200, B: 60, A: 255},
	"heal_totem":   {R: 110, G: 200, B: 110, A: 255},
}

// GridRenderSystem 网格瓦片渲染系统
//
// 作为 GridMap 的 VisualizationSink 维护"哪些格子已填充"的显示副本，
// Draw 时只读这份副本，不查询 GridMap 的占用表。
// 格子颜色由已放置方块实体的 BlockComponent 决定。
type GridRenderSystem struct {
	entityManager *ecs.EntityManager
	grid          *systems.GridMap

	filled map[types.GridCoord]bool
}

// NewGridRenderSystem 创建网格渲染系统
// 调用方需要通过 grid.SetSink(renderSystem) 把它注册为可视化接收端
func NewGridRenderSystem(em *ecs.EntityManager, grid *systems.GridMap) *GridRenderSystem {
	return &GridRenderSystem{
		entityManager: em,
		grid:          grid,
		filled:        make(map[types.GridCoord]bool),
	}
}

// OnCellsChanged 实现 systems.VisualizationSink
func (s *GridRenderSystem) OnCellsChanged(updates []systems.CellUpdate) {
	for _, u := range updates {
		if u.Filled {
			s.filled[u.Cell] = true
		} else {
			delete(s.filled, u.Cell)
		}
	}
}

// IsFilled 返回显示副本中格子是否已填充
func (s *GridRenderSystem) IsFilled(cell types.GridCoord) bool {
	return s.filled[cell]
}

// FilledCount 返回显示副本中已填充的格子数
func (s *GridRenderSystem) FilledCount() int {
	return len(s.filled)
}

// placedBlocks 查询所有已放置的方块组件（按实体创建顺序）
func (s *GridRenderSystem) placedBlocks() []*components.BlockComponent {
	ids := ecs.GetEntitiesWith1[*components.BlockComponent](s.entityManager)
	blocks := make([]*components.BlockComponent, 0, len(ids))
	for _, id := range ids {
		block, ok := ecs.GetComponent[*components.BlockComponent](s.entityManager, id)
		if !ok || !block.Placed {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// cellColors 按格子汇总已放置方块的内容颜色
// 未出现在结果中的已填充格子使用 filledCellColor
func (s *GridRenderSystem) cellColors() map[types.GridCoord]color.RGBA {
	colors := make(map[types.GridCoord]color.RGBA, len(s.filled))
	for _, block := range s.placedBlocks() {
		for i, off := range block.Shape.Coordinates() {
			if i >= len(block.Contents) {
				break
			}
			if c, ok := contentColors[block.Contents[i]]; ok {
				colors[block.Anchor.Add(off)] = c
			}
		}
	}
	return colors
}

// Draw 绘制网格背景、已填充格子、锚点标记、网格线和候选方块预览
// 参数:
//   - screen: 目标画布
//   - preview: 预览覆盖的格子（可为空）
//   - previewValid: 预览位置是否可以放置
//   - rejectAlpha: 放置失败闪烁强度（0 表示不闪烁）
func (s *GridRenderSystem) Draw(screen *ebiten.Image, preview []types.GridCoord, previewValid bool, rejectAlpha float64) {
	layout := s.grid.Layout()
	if layout.Columns == 0 || layout.Rows == 0 {
		return
	}

	cs := float32(layout.CellSize)
	ox := float32(layout.OriginX - layout.CameraX)
	oy := float32(layout.OriginY)
	w := cs * float32(layout.Columns)
	h := cs * float32(layout.Rows)

	vector.DrawFilledRect(screen, ox, oy, w, h, gridBackgroundColor, false)

	colors := s.cellColors()
	for cell := range s.filled {
		clr, ok := colors[cell]
		if !ok {
			clr = filledCellColor
		}
		x := ox + float32(cell.X)*cs
		y := oy + float32(cell.Y)*cs
		vector.DrawFilledRect(screen, x+1, y+1, cs-2, cs-2, clr, false)
	}

	// 锚点标记
	for _, block := range s.placedBlocks() {
		cx, cy := utils.GridToScreenCoords(block.Anchor, layout)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), cs/8, anchorMarkerColor, true)
	}

	for col := 0; col <= layout.Columns; col++ {
		x := ox + float32(col)*cs
		vector.StrokeLine(screen, x, oy, x, oy+h, 1, gridLineColor, false)
	}
	for row := 0; row <= layout.Rows; row++ {
		y := oy + float32(row)*cs
		vector.StrokeLine(screen, ox, y, ox+w, y, 1, gridLineColor, false)
	}

	if len(preview) == 0 {
		return
	}
	clr := previewValidColor
	if !previewValid {
		clr = previewInvalidColor
	}
	if rejectAlpha > 0 {
		clr.A = uint8(min(255, float64(clr.A)+rejectAlpha*255))
	}
	for _, cell := range preview {
		if !s.grid.InBounds(cell) {
			continue
		}
		x := ox + float32(cell.X)*cs
		y := oy + float32(cell.Y)*cs
		vector.DrawFilledRect(screen, x, y, cs, cs, clr, true)
	}
}
