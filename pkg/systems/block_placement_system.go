package systems

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/blockgrid/pkg/ecs"
	"github.com/decker502/blockgrid/pkg/entities"
	"github.com/decker502/blockgrid/pkg/types"
)

// commandKind 放置命令类型
type commandKind int

const (
	commandPlace commandKind = iota
	commandRemove
	commandClear
)

// placementCommand 排队等待 Update 执行的命令
type placementCommand struct {
	kind commandKind
	cell types.GridCoord // Place: 锚点；Remove: 被点击的格子
}

// rejectFlashDuration 放置失败时候选方块闪烁的持续时间（秒）
const rejectFlashDuration = 0.5

// BlockPlacementSystem 方块放置系统
//
// 持有当前候选方块（预览），把输入层排入的放置/移除/清空命令
// 在 Update 中按顺序应用到 GridMap，并负责方块实体的创建和销毁：
//   - 放置：通过工厂创建实体 → PlaceBlock → 失败时立即销毁实体
//   - 移除/清空：销毁 GridMap 返回的句柄
//
// 每次 Update 结束时调用 em.RemoveMarkedEntities()。
type BlockPlacementSystem struct {
	entityManager *ecs.EntityManager
	grid          *GridMap
	generator     *BlockGenerator

	candidate    GeneratedBlock
	hasCandidate bool

	queue   []placementCommand
	lastErr error

	// 放置失败闪烁（用于提示玩家该位置不可放置）
	rejectTimer float64
}

// NewBlockPlacementSystem 创建方块放置系统并生成第一个候选方块
// 参数:
//   - em: EntityManager 实例
//   - grid: 已初始化的网格
//   - generator: 方块生成器
//
// 返回:
//   - *BlockPlacementSystem: 放置系统实例
//   - error: 生成第一个候选方块失败时返回错误
func NewBlockPlacementSystem(em *ecs.EntityManager, grid *GridMap, generator *BlockGenerator) (*BlockPlacementSystem, error) {
	if em == nil || grid == nil || generator == nil {
		return nil, fmt.Errorf("block placement system requires entity manager, grid and generator")
	}

	s := &BlockPlacementSystem{
		entityManager: em,
		grid:          grid,
		generator:     generator,
	}
	if err := s.NextCandidate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Candidate 返回当前候选方块
func (s *BlockPlacementSystem) Candidate() (GeneratedBlock, bool) {
	return s.candidate, s.hasCandidate
}

// NextCandidate 丢弃当前候选方块并生成新的
func (s *BlockPlacementSystem) NextCandidate() error {
	block, err := s.generator.Next()
	if err != nil {
		s.hasCandidate = false
		return fmt.Errorf("failed to generate candidate block: %w", err)
	}
	s.candidate = block
	s.hasCandidate = true
	return nil
}

// SelectShape 将候选方块替换为指定形状（格子内容重新随机）
func (s *BlockPlacementSystem) SelectShape(name string) error {
	block, err := s.generator.ForShape(name)
	if err != nil {
		return err
	}
	s.candidate = block
	s.hasCandidate = true
	return nil
}

// RotateCandidate 将候选方块顺时针旋转 90°
// 格子内容跟随各自的偏移量一起旋转（Rotate90 保持偏移量顺序）
func (s *BlockPlacementSystem) RotateCandidate() {
	if !s.hasCandidate {
		return
	}
	s.candidate.Shape = s.candidate.Shape.Rotate90()
}

// PreviewCells 返回候选方块放在锚点处时覆盖的格子
func (s *BlockPlacementSystem) PreviewCells(anchor types.GridCoord) []types.GridCoord {
	if !s.hasCandidate {
		return nil
	}
	return s.candidate.Shape.Cells(anchor)
}

// CanPlaceCandidate 检查候选方块能否放在锚点处（纯查询）
func (s *BlockPlacementSystem) CanPlaceCandidate(anchor types.GridCoord) bool {
	return s.hasCandidate && s.grid.CanPlaceBlock(anchor, s.candidate.Shape)
}

// QueuePlace 请求在锚点处放置候选方块
func (s *BlockPlacementSystem) QueuePlace(anchor types.GridCoord) {
	s.queue = append(s.queue, placementCommand{kind: commandPlace, cell: anchor})
}

// QueueRemoveAt 请求移除覆盖该格子的方块
func (s *BlockPlacementSystem) QueueRemoveAt(cell types.GridCoord) {
	s.queue = append(s.queue, placementCommand{kind: commandRemove, cell: cell})
}

// QueueClear 请求清空整个网格
func (s *BlockPlacementSystem) QueueClear() {
	s.queue = append(s.queue, placementCommand{kind: commandClear})
}

// PendingCommands 返回尚未执行的命令数量
func (s *BlockPlacementSystem) PendingCommands() int {
	return len(s.queue)
}

// LastError 返回最近一次 Update 中最后一个失败命令的错误（全部成功时为 nil）
func (s *BlockPlacementSystem) LastError() error {
	return s.lastErr
}

// Update 执行排队的命令并推进闪烁计时
func (s *BlockPlacementSystem) Update(deltaTime float64) {
	if s.rejectTimer > 0 {
		s.rejectTimer = math.Max(0, s.rejectTimer-deltaTime)
	}

	if len(s.queue) == 0 {
		return
	}

	s.lastErr = nil
	queue := s.queue
	s.queue = nil

	for _, cmd := range queue {
		var err error
		switch cmd.kind {
		case commandPlace:
			err = s.applyPlace(cmd.cell)
		case commandRemove:
			err = s.applyRemove(cmd.cell)
		case commandClear:
			s.applyClear()
		}
		if err != nil {
			s.lastErr = err
		}
	}

	s.entityManager.RemoveMarkedEntities()
}

func (s *BlockPlacementSystem) applyPlace(anchor types.GridCoord) error {
	if !s.hasCandidate {
		return fmt.Errorf("no candidate block to place")
	}

	id, err := entities.NewBlockEntity(s.entityManager, s.candidate.Shape, s.candidate.Contents)
	if err != nil {
		return fmt.Errorf("failed to create block entity: %w", err)
	}

	if err := s.grid.PlaceBlock(anchor, s.candidate.Shape, id); err != nil {
		entities.DestroyBlockEntity(s.entityManager, id)
		s.rejectTimer = rejectFlashDuration

		var perr *PlacementError
		if errors.As(err, &perr) {
			log.Printf("[BlockPlacementSystem] Rejected %s at %v: %s (cell %v)",
				s.candidate.Shape.Name(), anchor, perr.Reason, perr.Cell)
		}
		return err
	}

	if err := entities.MarkBlockPlaced(s.entityManager, id, anchor, s.grid.GridToWorld(anchor)); err != nil {
		return err
	}
	log.Printf("[BlockPlacementSystem] Placed %s at %v (entity %d)", s.candidate.Shape.Name(), anchor, id)

	// 已放置的候选方块不能再次使用
	if err := s.NextCandidate(); err != nil {
		log.Printf("[BlockPlacementSystem] Warning: %v", err)
	}
	return nil
}

func (s *BlockPlacementSystem) applyRemove(cell types.GridCoord) error {
	block, ok := s.grid.FindBlockCovering(cell)
	if !ok {
		return &RemovalError{Anchor: cell}
	}

	handle, err := s.grid.RemoveBlock(block.Anchor)
	if err != nil {
		return err
	}
	entities.DestroyBlockEntity(s.entityManager, handle)
	log.Printf("[BlockPlacementSystem] Removed block at %v (entity %d)", block.Anchor, handle)
	return nil
}

func (s *BlockPlacementSystem) applyClear() {
	for _, handle := range s.grid.ClearAll() {
		entities.DestroyBlockEntity(s.entityManager, handle)
	}
}

// IsRejectFlashing 候选方块是否处于放置失败闪烁中
func (s *BlockPlacementSystem) IsRejectFlashing() bool {
	return s.rejectTimer > 0
}

// GetRejectAlpha 获取放置失败闪烁的 alpha 值（0.0-0.6，随时间衰减）
func (s *BlockPlacementSystem) GetRejectAlpha() float64 {
	if s.rejectTimer <= 0 {
		return 0
	}
	const maxAlpha = 0.6
	const frequency = 6.0
	fade := s.rejectTimer / rejectFlashDuration
	return maxAlpha * fade * (0.5 + 0.5*math.Cos((rejectFlashDuration-s.rejectTimer)*2*math.Pi*frequency))
}
