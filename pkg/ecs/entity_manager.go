// Package ecs 提供最小化的实体-组件存储
//
// 网格核心只把 EntityID 当作不透明句柄保存；
// 方块实体的组件由 entities 包创建，由放置系统在 tick 末尾统一销毁。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效 ID
type EntityID uint64

// InvalidEntity 无效实体
const InvalidEntity EntityID = 0

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]any
	// 待删除的实体ID列表（在 RemoveMarkedEntities 时真正删除）
	pendingDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.pendingDestroy = append(em.pendingDestroy, id)
}

// IsAlive 检查实体是否存在（已标记但尚未清理的实体仍视为存在）
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// EntityCount 返回当前存活的实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 返回本次真正删除的实体数量（重复标记只计一次）
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := 0
	for _, id := range em.pendingDestroy {
		if _, ok := em.components[id]; ok {
			delete(em.components, id)
			removed++
		}
	}
	em.pendingDestroy = em.pendingDestroy[:0]
	return removed
}

func (em *EntityManager) add(id EntityID, component any) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

func (em *EntityManager) get(id EntityID, componentType reflect.Type) (any, bool) {
	compMap, exists := em.components[id]
	if !exists {
		return nil, false
	}
	comp, found := compMap[componentType]
	return comp, found
}

// AddComponent 为实体添加组件（同类型组件会被覆盖）
// 实体不存在时忽略
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.add(id, component)
}

// GetComponent 获取实体的特定类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.get(id, reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有特定类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.get(id, reflect.TypeOf((*T)(nil)).Elem())
	return ok
}

// RemoveComponent 从实体移除指定类型的组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, reflect.TypeOf((*T)(nil)).Elem())
	}
}

// GetEntitiesWith1 查询拥有指定组件的所有实体
// 返回的 ID 按升序排列（即按创建顺序）
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	componentType := reflect.TypeOf((*T)(nil)).Elem()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, found := compMap[componentType]; found {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
