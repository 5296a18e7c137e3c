package config

import (
	"fmt"
	"sort"

	"github.com/decker502/blockgrid/pkg/types"
)

// ShapeConfig 方块形状（多格骨牌）
// 一组相对于锚点的唯一整数偏移量 (dx, dy)，构造后不可变
//
// 零值是"空形状"（CellCount() == 0），放置时会被拒绝
type ShapeConfig struct {
	name    string
	offsets []types.GridCoord
}

// ShapeDefinition 形状在 YAML 目录中的编辑形式
//
// 示例：
//
//	- name: domino
//	  cells: [[0, 0], [1, 0]]
type ShapeDefinition struct {
	Name  string  `yaml:"name"`
	Cells [][]int `yaml:"cells"`
}

// NewShapeConfig 创建形状
// 参数:
//   - name: 形状名称（用于日志和目录查找，可为空）
//   - offsets: 偏移量列表，顺序即规范顺序
//
// 返回:
//   - ShapeConfig: 形状
//   - error: 偏移量为空或存在重复时返回 *ConfigError
func NewShapeConfig(name string, offsets []types.GridCoord) (ShapeConfig, error) {
	field := fmt.Sprintf("shape %q", name)
	if len(offsets) == 0 {
		return ShapeConfig{}, newConfigError(field, "shape must have at least one cell")
	}

	seen := make(map[types.GridCoord]struct{}, len(offsets))
	for _, off := range offsets {
		if _, dup := seen[off]; dup {
			return ShapeConfig{}, newConfigError(field, "duplicate offset %v", off)
		}
		seen[off] = struct{}{}
	}

	copied := make([]types.GridCoord, len(offsets))
	copy(copied, offsets)
	return ShapeConfig{name: name, offsets: copied}, nil
}

// MustShapeConfig 与 NewShapeConfig 相同，出错时 panic
// 仅用于代码内置的形状常量和测试
func MustShapeConfig(name string, offsets ...types.GridCoord) ShapeConfig {
	s, err := NewShapeConfig(name, offsets)
	if err != nil {
		panic(err)
	}
	return s
}

// Build 将编辑形式转换为 ShapeConfig
func (d ShapeDefinition) Build() (ShapeConfig, error) {
	offsets := make([]types.GridCoord, len(d.Cells))
	for i, cell := range d.Cells {
		if len(cell) != 2 {
			return ShapeConfig{}, newConfigError(fmt.Sprintf("shape %q cells[%d]", d.Name, i), "expected [dx, dy], got %v", cell)
		}
		offsets[i] = types.GridCoord{X: cell[0], Y: cell[1]}
	}
	return NewShapeConfig(d.Name, offsets)
}

// Definition 返回形状的编辑形式（用于保存目录）
func (s ShapeConfig) Definition() ShapeDefinition {
	cells := make([][]int, len(s.offsets))
	for i, off := range s.offsets {
		cells[i] = []int{off.X, off.Y}
	}
	return ShapeDefinition{Name: s.name, Cells: cells}
}

// Name 返回形状名称
func (s ShapeConfig) Name() string {
	return s.name
}

// Coordinates 返回规范偏移量的副本
func (s ShapeConfig) Coordinates() []types.GridCoord {
	out := make([]types.GridCoord, len(s.offsets))
	copy(out, s.offsets)
	return out
}

// CellCount 返回格子数量
// CellCount() <= 0 的形状不可放置
func (s ShapeConfig) CellCount() int {
	return len(s.offsets)
}

// IsEmpty 是否为空形状
func (s ShapeConfig) IsEmpty() bool {
	return len(s.offsets) == 0
}

// Cells 返回形状放在 anchor 处时覆盖的格子（按偏移量顺序）
func (s ShapeConfig) Cells(anchor types.GridCoord) []types.GridCoord {
	cells := make([]types.GridCoord, len(s.offsets))
	for i, off := range s.offsets {
		cells[i] = anchor.Add(off)
	}
	return cells
}

// Bounds 返回偏移量的包围盒（min 和 max 均包含）
// 空形状返回两个零值
func (s ShapeConfig) Bounds() (minCorner, maxCorner types.GridCoord) {
	if len(s.offsets) == 0 {
		return types.GridCoord{}, types.GridCoord{}
	}
	minCorner, maxCorner = s.offsets[0], s.offsets[0]
	for _, off := range s.offsets[1:] {
		minCorner.X = min(minCorner.X, off.X)
		minCorner.Y = min(minCorner.Y, off.Y)
		maxCorner.X = max(maxCorner.X, off.X)
		maxCorner.Y = max(maxCorner.Y, off.Y)
	}
	return minCorner, maxCorner
}

// Rotate90 返回旋转 90° 后的新形状
//
// 每个偏移量 (dx, dy) 映射为 (dy, -dx)，然后整体平移，
// 使包围盒最小角与旋转前相同。对于规范化的形状（最小 dx、dy 为 0），
// 结果同样是规范化的：锚点始终是形状自身的局部最小角。
//
// 连续旋转四次得到与原形状相同的偏移量集合（顺序可能不同）。
func (s ShapeConfig) Rotate90() ShapeConfig {
	if len(s.offsets) == 0 {
		return ShapeConfig{name: s.name}
	}

	origMin, _ := s.Bounds()

	rotated := make([]types.GridCoord, len(s.offsets))
	for i, off := range s.offsets {
		rotated[i] = types.GridCoord{X: off.Y, Y: -off.X}
	}

	out := ShapeConfig{name: s.name, offsets: rotated}
	newMin, _ := out.Bounds()
	shift := origMin.Sub(newMin)
	for i := range out.offsets {
		out.offsets[i] = out.offsets[i].Add(shift)
	}
	return out
}

// RotateTimes 旋转 n 次（n 取模 4，负数按逆时针处理）
func (s ShapeConfig) RotateTimes(n int) ShapeConfig {
	n = ((n % 4) + 4) % 4
	out := s
	for i := 0; i < n; i++ {
		out = out.Rotate90()
	}
	return out
}

// Normalize 平移偏移量，使最小 dx 和 dy 均为 0
func (s ShapeConfig) Normalize() ShapeConfig {
	if len(s.offsets) == 0 {
		return s
	}
	minCorner, _ := s.Bounds()
	out := ShapeConfig{name: s.name, offsets: make([]types.GridCoord, len(s.offsets))}
	for i, off := range s.offsets {
		out.offsets[i] = off.Sub(minCorner)
	}
	return out
}

// SameCells 判断两个形状的偏移量集合是否相同（忽略顺序和名称）
func (s ShapeConfig) SameCells(other ShapeConfig) bool {
	if len(s.offsets) != len(other.offsets) {
		return false
	}
	a, b := sortedOffsets(s.offsets), sortedOffsets(other.offsets)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String 返回形状的可读表示
func (s ShapeConfig) String() string {
	return fmt.Sprintf("%s%v", s.name, s.offsets)
}

func sortedOffsets(offsets []types.GridCoord) []types.GridCoord {
	out := make([]types.GridCoord, len(offsets))
	copy(out, offsets)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
