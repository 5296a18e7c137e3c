package systems

import (
	"fmt"
	"log"

	"github.com/decker502/blockgrid/pkg/config"
)

// GeneratedBlock 随机生成的候选方块
type GeneratedBlock struct {
	Shape    config.ShapeConfig // 已应用随机旋转的形状
	Contents []string           // 每个格子的内容ID，与 Shape.Coordinates() 顺序一致
}

// BlockGenerator 按方块目录的权重表随机生成方块
//
// 生成步骤：
//  1. 按 shapeWeights 选取形状名
//  2. 随机旋转 0~3 次（每次 Rotate90）
//  3. 按 contentWeights 为每个格子选取内容
type BlockGenerator struct {
	catalog *config.BlockCatalog
	rng     RandomSource

	shapeSelector   *WeightedSelector[string]
	contentSelector *WeightedSelector[string]
}

// NewBlockGenerator 创建方块生成器
// 参数:
//   - catalog: 已校验的方块目录
//   - rng: 随机源（*rand.Rand 或测试用确定性实现）
func NewBlockGenerator(catalog *config.BlockCatalog, rng RandomSource) *BlockGenerator {
	g := &BlockGenerator{
		catalog:         catalog,
		rng:             rng,
		shapeSelector:   NewWeightedSelector[string](rng),
		contentSelector: NewWeightedSelector[string](rng),
	}

	// 权重表越界只警告，不阻止生成
	_ = g.shapeSelector.Validate(catalog.ShapeWeights)
	_ = g.contentSelector.Validate(catalog.ContentWeights)

	return g
}

// Next 生成下一个候选方块
//
// 返回:
//   - GeneratedBlock: 生成的方块
//   - error: 权重表为空、形状名未知或形状没有格子时返回 *config.ConfigError
func (g *BlockGenerator) Next() (GeneratedBlock, error) {
	name, ok := g.shapeSelector.Sample(g.catalog.ShapeWeights)
	if !ok {
		return GeneratedBlock{}, &config.ConfigError{Field: "shapeWeights", Reason: "table is empty"}
	}

	shape, err := g.shapeByName(name)
	if err != nil {
		return GeneratedBlock{}, err
	}

	shape = shape.RotateTimes(g.rng.Intn(4))

	contents, err := g.sampleContents(shape.CellCount())
	if err != nil {
		return GeneratedBlock{}, err
	}

	block := GeneratedBlock{Shape: shape, Contents: contents}
	logGenerated(block)
	return block, nil
}

// ForShape 为指定形状生成方块（不旋转，仅随机格子内容）
// 用于在 UI 中手动切换形状
func (g *BlockGenerator) ForShape(name string) (GeneratedBlock, error) {
	shape, err := g.shapeByName(name)
	if err != nil {
		return GeneratedBlock{}, err
	}
	contents, err := g.sampleContents(shape.CellCount())
	if err != nil {
		return GeneratedBlock{}, err
	}
	return GeneratedBlock{Shape: shape, Contents: contents}, nil
}

func (g *BlockGenerator) shapeByName(name string) (config.ShapeConfig, error) {
	shape, ok := g.catalog.Shape(name)
	if !ok {
		return config.ShapeConfig{}, &config.ConfigError{
			Field:  "shapeWeights",
			Reason: fmt.Sprintf("unknown shape %q", name),
		}
	}
	if shape.CellCount() <= 0 {
		return config.ShapeConfig{}, &config.ConfigError{
			Field:  "shapes",
			Reason: fmt.Sprintf("shape %q has no cells", name),
		}
	}
	return shape, nil
}

func (g *BlockGenerator) sampleContents(n int) ([]string, error) {
	contents := make([]string, n)
	for i := range contents {
		item, ok := g.contentSelector.Sample(g.catalog.ContentWeights)
		if !ok {
			return nil, &config.ConfigError{Field: "contentWeights", Reason: "table is empty"}
		}
		contents[i] = item
	}
	return contents, nil
}

// logGenerated 调试输出
func logGenerated(b GeneratedBlock) {
	log.Printf("[BlockGenerator] Generated %s with %d cells: %v", b.Shape.Name(), b.Shape.CellCount(), b.Contents)
}
