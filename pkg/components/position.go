package components

// PositionComponent 存储实体的世界坐标
// 对方块实体而言是锚点格子的中心
type PositionComponent struct {
	X float64
	Y float64
}
