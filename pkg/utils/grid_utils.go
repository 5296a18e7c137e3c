package utils

import (
	"math"

	"github.com/decker502/blockgrid/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// GridLayout 描述网格在屏幕上的布局
// 用于把鼠标坐标映射回网格坐标
type GridLayout struct {
	OriginX  float64 // 网格左上角 X（世界坐标）
	OriginY  float64 // 网格左上角 Y（世界坐标）
	Columns  int     // 列数（网格宽度）
	Rows     int     // 行数（网格高度）
	CellSize float64 // 每格边长
	CameraX  float64 // 摄像机水平偏移（无滚动时为 0）
}

// GridToWorld 将网格坐标转换为格子中心的世界坐标
// 参数:
//   - c: 网格坐标
//   - origin: 网格左上角的世界坐标
//   - cellSize: 每格边长
//
// 返回:
//   - mgl64.Vec2: 格子中心（origin + c*cellSize + cellSize/2）
func GridToWorld(c types.GridCoord, origin mgl64.Vec2, cellSize float64) mgl64.Vec2 {
	half := cellSize / 2
	return mgl64.Vec2{
		origin.X() + float64(c.X)*cellSize + half,
		origin.Y() + float64(c.Y)*cellSize + half,
	}
}

// WorldToGrid 将世界坐标转换为网格坐标（向下取整）
// 不做边界检查：网格外的位置会得到越界坐标（可能为负数），由调用方判断
//
// 与 GridToWorld 互逆：WorldToGrid(GridToWorld(c)) == c
func WorldToGrid(pos mgl64.Vec2, origin mgl64.Vec2, cellSize float64) types.GridCoord {
	local := pos.Sub(origin)
	return types.GridCoord{
		X: int(math.Floor(local.X() / cellSize)),
		Y: int(math.Floor(local.Y() / cellSize)),
	}
}

// ScreenToGridCoords 将鼠标屏幕坐标转换为网格坐标
// 参数:
//   - screenX, screenY: 鼠标的屏幕坐标
//   - layout: 网格布局
//
// 返回:
//   - types.GridCoord: 网格坐标
//   - bool: 是否在有效网格范围内
func ScreenToGridCoords(screenX, screenY int, layout GridLayout) (types.GridCoord, bool) {
	if layout.CellSize <= 0 || layout.Columns <= 0 || layout.Rows <= 0 {
		return types.GridCoord{}, false
	}

	// 屏幕坐标 → 世界坐标
	world := mgl64.Vec2{float64(screenX) + layout.CameraX, float64(screenY)}
	origin := mgl64.Vec2{layout.OriginX, layout.OriginY}

	c := WorldToGrid(world, origin, layout.CellSize)
	if c.X < 0 || c.X >= layout.Columns || c.Y < 0 || c.Y >= layout.Rows {
		return types.GridCoord{}, false
	}
	return c, true
}

// GridToScreenCoords 将网格坐标转换为格子中心的屏幕坐标
func GridToScreenCoords(c types.GridCoord, layout GridLayout) (centerX, centerY float64) {
	center := GridToWorld(c, mgl64.Vec2{layout.OriginX, layout.OriginY}, layout.CellSize)
	return center.X() - layout.CameraX, center.Y()
}
