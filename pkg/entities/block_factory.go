package entities

import (
	"fmt"

	"github.com/decker502/blockgrid/pkg/components"
	"github.com/decker502/blockgrid/pkg/config"
	"github.com/decker502/blockgrid/pkg/ecs"
	"github.com/decker502/blockgrid/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// NewBlockEntity 创建方块实体
//
// 参数:
//   - em: 实体管理器
//   - shape: 方块形状（CellCount 必须 > 0）
//   - contents: 每个格子的内容ID，数量必须与形状格子数一致
//
// 返回:
//   - ecs.EntityID: 创建的方块实体ID，失败时返回 ecs.InvalidEntity
//   - error: 参数非法时返回错误（形状或内容问题为 *config.ConfigError）
func NewBlockEntity(em *ecs.EntityManager, shape config.ShapeConfig, contents []string) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if shape.CellCount() <= 0 {
		return ecs.InvalidEntity, &config.ConfigError{Field: "shape", Reason: "block shape has no cells"}
	}
	if len(contents) != shape.CellCount() {
		return ecs.InvalidEntity, &config.ConfigError{
			Field:  "contents",
			Reason: fmt.Sprintf("expected %d cell contents for shape %s, got %d", shape.CellCount(), shape.Name(), len(contents)),
		}
	}

	entityID := em.CreateEntity()

	copied := make([]string, len(contents))
	copy(copied, contents)
	ecs.AddComponent(em, entityID, &components.BlockComponent{
		Shape:    shape,
		Contents: copied,
	})

	return entityID, nil
}

// MarkBlockPlaced 记录方块已放置到网格上
// 参数:
//   - anchor: 放置锚点
//   - worldCenter: 锚点格子中心的世界坐标
func MarkBlockPlaced(em *ecs.EntityManager, entityID ecs.EntityID, anchor types.GridCoord, worldCenter mgl64.Vec2) error {
	block, ok := ecs.GetComponent[*components.BlockComponent](em, entityID)
	if !ok {
		return fmt.Errorf("entity %d has no BlockComponent", entityID)
	}

	block.Placed = true
	block.Anchor = anchor
	ecs.AddComponent(em, entityID, &components.PositionComponent{
		X: worldCenter.X(),
		Y: worldCenter.Y(),
	})
	return nil
}

// DestroyBlockEntity 标记方块实体待删除
// 实际删除发生在 EntityManager.RemoveMarkedEntities()，
// 在此之前实体立即退出"已放置"状态并失去世界坐标。
func DestroyBlockEntity(em *ecs.EntityManager, entityID ecs.EntityID) {
	if entityID == ecs.InvalidEntity {
		return
	}
	if block, ok := ecs.GetComponent[*components.BlockComponent](em, entityID); ok {
		block.Placed = false
	}
	ecs.RemoveComponent[*components.PositionComponent](em, entityID)
	em.DestroyEntity(entityID)
}
