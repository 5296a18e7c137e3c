package config

// MaxTotalWeight 权重表总权重上限
// 编辑工具按百分比编写权重，总和应落在 (0, 100]
const MaxTotalWeight = 100.0

// weightEpsilon 浮点误差容限（EqualizeWeights 的结果可能略大于 100）
const weightEpsilon = 1e-9

// WeightedEntry 权重表中的一项
type WeightedEntry[T any] struct {
	Item   T       `yaml:"item"`   // 被选中的对象（形状名、格子内容ID等）
	Weight float64 `yaml:"weight"` // 权重，不能为负数
}

// WeightedTable 有序权重表
// 条目 i 的选中概率 = weight_i / sum(weights)
type WeightedTable[T any] []WeightedEntry[T]

// Entry 便捷构造函数
func Entry[T any](item T, weight float64) WeightedEntry[T] {
	return WeightedEntry[T]{Item: item, Weight: weight}
}

// Clone 返回权重表的副本
func (t WeightedTable[T]) Clone() WeightedTable[T] {
	out := make(WeightedTable[T], len(t))
	copy(out, t)
	return out
}

// Total 返回总权重（负权重按 0 计算）
func (t WeightedTable[T]) Total() float64 {
	total := 0.0
	for _, e := range t {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// rawTotal 返回未截断的权重和，仅用于校验
func (t WeightedTable[T]) rawTotal() float64 {
	total := 0.0
	for _, e := range t {
		total += e.Weight
	}
	return total
}

// Validate 校验权重表
//
// 返回 *ConfigError 的情况：
//   - 存在负权重
//   - 权重和 <= 0
//   - 权重和 > 100
//
// 这是编辑期错误：调用方应记录警告，选择器仍按截断后的分布工作
func (t WeightedTable[T]) Validate() error {
	for i, e := range t {
		if e.Weight < 0 {
			return newConfigError("weights", "entry %d (%v) has negative weight %.2f", i, e.Item, e.Weight)
		}
	}

	sum := t.rawTotal()
	if sum <= 0 {
		return newConfigError("weights", "total weight must be > 0, got %.2f", sum)
	}
	if sum > MaxTotalWeight+weightEpsilon {
		return newConfigError("weights", "total weight must be <= %.0f, got %.2f", MaxTotalWeight, sum)
	}
	return nil
}

// EqualizeWeights 将每项权重改写为 100 / count，保持总和为 100
// 空表不做任何处理
func (t WeightedTable[T]) EqualizeWeights() {
	if len(t) == 0 {
		return
	}
	n := len(t)
	w := MaxTotalWeight / float64(n)
	for i := 0; i < n-1; i++ {
		t[i].Weight = w
	}
	// 最后一项吸收舍入误差
	t[n-1].Weight = MaxTotalWeight - w*float64(n-1)
}

// Items 返回所有条目的对象（按表内顺序）
func (t WeightedTable[T]) Items() []T {
	items := make([]T, len(t))
	for i, e := range t {
		items[i] = e.Item
	}
	return items
}
