package systems

import (
	"errors"
	"fmt"

	"github.com/decker502/blockgrid/pkg/types"
)

// 放置/移除失败的哨兵错误，可通过 errors.Is 判断
var (
	// ErrOutOfBounds 目标格子超出网格范围
	ErrOutOfBounds = errors.New("block out of bounds")
	// ErrOverlap 目标格子已被其他方块占用
	ErrOverlap = errors.New("block overlaps an occupied cell")
	// ErrEmptyShape 形状没有任何格子
	ErrEmptyShape = errors.New("block shape is empty")
	// ErrBlockNotFound 锚点处没有方块
	ErrBlockNotFound = errors.New("no block at anchor")
)

// PlacementFailure 放置失败原因
type PlacementFailure int

const (
	// PlacementOutOfBounds 越界
	PlacementOutOfBounds PlacementFailure = iota
	// PlacementOverlap 重叠
	PlacementOverlap
	// PlacementEmptyShape 空形状
	PlacementEmptyShape
)

// String 返回失败原因名称
func (f PlacementFailure) String() string {
	switch f {
	case PlacementOutOfBounds:
		return "OutOfBounds"
	case PlacementOverlap:
		return "Overlap"
	case PlacementEmptyShape:
		return "EmptyShape"
	default:
		return "Unknown"
	}
}

// PlacementError 放置失败
// 可恢复：调用方可以换一个锚点重试。失败时网格状态不变
type PlacementError struct {
	Reason PlacementFailure
	Anchor types.GridCoord // 请求的锚点
	Cell   types.GridCoord // 第一个未通过检查的格子（EmptyShape 时等于锚点）
}

// Error 实现 error 接口
func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place block at %v: %s at cell %v", e.Anchor, e.Reason, e.Cell)
}

// Unwrap 返回对应的哨兵错误
func (e *PlacementError) Unwrap() error {
	switch e.Reason {
	case PlacementOutOfBounds:
		return ErrOutOfBounds
	case PlacementOverlap:
		return ErrOverlap
	case PlacementEmptyShape:
		return ErrEmptyShape
	default:
		return nil
	}
}

// RemovalError 移除失败（锚点处没有方块）
// 可恢复，网格状态不变
type RemovalError struct {
	Anchor types.GridCoord
}

// Error 实现 error 接口
func (e *RemovalError) Error() string {
	return fmt.Sprintf("cannot remove block at %v: not found", e.Anchor)
}

// Unwrap 返回 ErrBlockNotFound
func (e *RemovalError) Unwrap() error {
	return ErrBlockNotFound
}
