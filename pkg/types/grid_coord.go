// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// GridCoord 网格整数坐标
// 同时用于三种语义：
//   - 锚点（方块形状偏移量的局部原点）
//   - 格子坐标（X 为列，Y 为行，从 0 开始）
//   - 形状偏移量 (dx, dy)
type GridCoord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Add 返回 c + other（锚点 + 偏移 = 目标格子）
func (c GridCoord) Add(other GridCoord) GridCoord {
	return GridCoord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub 返回 c - other
func (c GridCoord) Sub(other GridCoord) GridCoord {
	return GridCoord{X: c.X - other.X, Y: c.Y - other.Y}
}

// String 返回 "(x,y)" 形式，便于日志输出
func (c GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
