// Package utils 提供通用工具函数
package utils

import (
	"github.com/decker502/blockgrid/pkg/types"
)

// PointerState 存储当前帧的指针状态
// 统一处理鼠标和触摸输入，由前端（如 ebiten 应用）每帧填充
type PointerState struct {
	// 指针位置（屏幕坐标）
	X, Y int
	// 主键（鼠标左键或触摸）是否刚刚按下
	PrimaryJustPressed bool
	// 副键（鼠标右键）是否刚刚按下
	SecondaryJustPressed bool
}

// PointerAction 指针在网格上触发的动作
type PointerAction int

const (
	// PointerNone 无动作（仅悬停）
	PointerNone PointerAction = iota
	// PointerPlace 在悬停格子放置候选方块
	PointerPlace
	// PointerRemove 移除覆盖悬停格子的方块
	PointerRemove
)

// GridAction 把指针状态映射为网格动作
//
// 返回:
//   - PointerAction: 本帧触发的动作（主键优先于副键）
//   - types.GridCoord: 悬停的格子
//   - bool: 指针是否在网格内；不在网格内时动作总是 PointerNone
func (p PointerState) GridAction(layout GridLayout) (PointerAction, types.GridCoord, bool) {
	cell, ok := ScreenToGridCoords(p.X, p.Y, layout)
	if !ok {
		return PointerNone, types.GridCoord{}, false
	}

	switch {
	case p.PrimaryJustPressed:
		return PointerPlace, cell, true
	case p.SecondaryJustPressed:
		return PointerRemove, cell, true
	default:
		return PointerNone, cell, true
	}
}
