package systems

import (
	"log"

	"github.com/decker502/blockgrid/pkg/config"
)

// RandomSource 随机数源
// *math/rand.Rand 满足此接口；测试可注入确定性实现
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// WeightedSelector 按权重从权重表中选取条目
// 用于随机形状选择和随机格子内容（塔/道具）选择
type WeightedSelector[T any] struct {
	rng RandomSource
}

// NewWeightedSelector 创建权重选择器
func NewWeightedSelector[T any](rng RandomSource) *WeightedSelector[T] {
	return &WeightedSelector[T]{rng: rng}
}

// Validate 校验权重表
// 权重和不在 (0, 100] 时记录警告并返回 *config.ConfigError，
// 选择器本身仍可继续使用该表（按截断后的分布采样）
func (s *WeightedSelector[T]) Validate(table config.WeightedTable[T]) error {
	if err := table.Validate(); err != nil {
		log.Printf("[WeightedSelector] Warning: %v", err)
		return err
	}
	return nil
}

// Sample 按权重随机选取一个条目
//
// 在 [0, total) 中均匀抽取一个值，然后按 SampleAt 规则选取
//
// 返回:
//   - T: 选中的对象
//   - bool: 表为空时返回 false
func (s *WeightedSelector[T]) Sample(table config.WeightedTable[T]) (T, bool) {
	draw := s.rng.Float64() * table.Total()
	return SampleAt(table, draw)
}

// SampleAt 用给定的抽取值选取条目（确定性）
//
// 按表内顺序累加权重，返回第一个累计权重严格大于 draw 的条目：
// 对于 [{A,30},{B,70}]，draw=29.9 选中 A，draw=30.0 选中 B。
//
// 截断规则：
//   - 负权重按 0 处理（永远不会被选中）
//   - 总权重 <= 0 时退化为第一个条目，并记录警告
//   - draw 超出总权重时返回最后一个权重为正的条目
//   - 空表返回零值和 false
func SampleAt[T any](table config.WeightedTable[T], draw float64) (T, bool) {
	var zero T
	if len(table) == 0 {
		return zero, false
	}

	if table.Total() <= 0 {
		log.Printf("[WeightedSelector] WARNING: total weight is zero, falling back to first entry")
		return table[0].Item, true
	}

	cumulative := 0.0
	last := -1
	for i, e := range table {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		last = i
		if draw < cumulative {
			return e.Item, true
		}
	}

	// draw >= total（调用方传入越界值），返回最后一个有效条目
	return table[last].Item, true
}
