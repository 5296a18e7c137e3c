package components

import (
	"github.com/decker502/blockgrid/pkg/config"
	"github.com/decker502/blockgrid/pkg/types"
)

// BlockComponent 标识实体为方块
// 记录方块的形状、每个格子的内容以及放置后的锚点
//
// 实体由 entities.NewBlockEntity 创建，GridMap 只持有其 EntityID
type BlockComponent struct {
	// Shape 方块形状（已应用旋转）
	Shape config.ShapeConfig
	// Contents 每个格子的内容ID（塔、道具），与 Shape.Coordinates() 一一对应
	Contents []string

	// Placed 是否已放置到网格上
	Placed bool
	// Anchor 放置锚点（仅当 Placed 为 true 时有效）
	Anchor types.GridCoord
}

// ContentAt 返回指定偏移量对应的格子内容
func (b *BlockComponent) ContentAt(offset types.GridCoord) (string, bool) {
	for i, off := range b.Shape.Coordinates() {
		if off == offset && i < len(b.Contents) {
			return b.Contents[i], true
		}
	}
	return "", false
}
