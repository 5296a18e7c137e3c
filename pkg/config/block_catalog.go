package config

import (
	"fmt"
	"log"

	"github.com/decker502/blockgrid/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultCatalogPath 内置方块目录的嵌入路径
const DefaultCatalogPath = "data/block_catalog.yaml"

// MaxGridCells 网格格子总数上限（宽 × 高）
const MaxGridCells = 1 << 20

// GridConfig 网格尺寸配置
type GridConfig struct {
	Width    int     `yaml:"width"`    // 列数
	Height   int     `yaml:"height"`   // 行数
	CellSize float64 `yaml:"cellSize"` // 每格边长（世界单位）
	OriginX  float64 `yaml:"originX"`  // 网格左上角 X（世界坐标）
	OriginY  float64 `yaml:"originY"`  // 网格左上角 Y（世界坐标）
}

// Validate 校验网格尺寸
func (g GridConfig) Validate() error {
	if g.Width <= 0 {
		return newConfigError("grid.width", "must be > 0, got %d", g.Width)
	}
	if g.Height <= 0 {
		return newConfigError("grid.height", "must be > 0, got %d", g.Height)
	}
	// 先除后比，避免 Width*Height 溢出
	if g.Width > MaxGridCells/g.Height {
		return newConfigError("grid", "width*height must be <= %d, got %d x %d", MaxGridCells, g.Width, g.Height)
	}
	if g.CellSize <= 0 {
		return newConfigError("grid.cellSize", "must be > 0, got %v", g.CellSize)
	}
	return nil
}

// BlockCatalog 方块目录
// 包含网格尺寸、形状目录，以及形状和格子内容的权重表
type BlockCatalog struct {
	Grid           GridConfig            `yaml:"grid"`
	Shapes         []ShapeDefinition     `yaml:"shapes"`
	ShapeWeights   WeightedTable[string] `yaml:"shapeWeights"`   // 形状名 -> 权重
	ContentWeights WeightedTable[string] `yaml:"contentWeights"` // 格子内容ID（塔、道具）-> 权重

	shapes map[string]ShapeConfig
	order  []string
}

// LoadBlockCatalog 从嵌入资源加载方块目录
// 参数：
//
//	filePath - 资源路径（以 "data/" 开头）
//
// 返回：
//
//	*BlockCatalog - 解析并校验后的目录
//	error - 文件不存在时包装 ErrCatalogNotFound；读取、解析或校验失败时返回错误
func LoadBlockCatalog(filePath string) (*BlockCatalog, error) {
	if embedded.IsInitialized() && !embedded.Exists(filePath) {
		return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, filePath)
	}

	data, err := embedded.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read block catalog file %s: %w", filePath, err)
	}

	catalog, err := ParseBlockCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load block catalog %s: %w", filePath, err)
	}
	return catalog, nil
}

// ParseBlockCatalog 从 YAML 数据解析方块目录
func ParseBlockCatalog(data []byte) (*BlockCatalog, error) {
	var catalog BlockCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse block catalog YAML: %w", err)
	}

	if err := catalog.Build(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Build 校验目录并构建形状索引
//
// 硬错误（返回 *ConfigError）：
//   - 网格尺寸非法
//   - 形状为空、偏移量重复、名称为空或重名
//   - 权重表为空，或形状权重表引用了不存在的形状
//
// 软错误（仅记录警告）：权重和不在 (0, 100] 区间内
func (c *BlockCatalog) Build() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}

	if len(c.Shapes) == 0 {
		return newConfigError("shapes", "at least one shape is required")
	}

	shapes := make(map[string]ShapeConfig, len(c.Shapes))
	order := make([]string, 0, len(c.Shapes))
	for i, def := range c.Shapes {
		if def.Name == "" {
			return newConfigError(fmt.Sprintf("shapes[%d].name", i), "shape name cannot be empty")
		}
		if _, dup := shapes[def.Name]; dup {
			return newConfigError(fmt.Sprintf("shapes[%d].name", i), "duplicate shape name %q", def.Name)
		}
		shape, err := def.Build()
		if err != nil {
			return err
		}
		// 锚点约定为形状自身的左上角，未规范化的形状仍可使用
		if norm := shape.Normalize(); !norm.SameCells(shape) {
			log.Printf("[BlockCatalog] Warning: shape %q is not normalized, anchor is not its top-left corner (normalized: %v)",
				def.Name, norm.Coordinates())
		}
		shapes[def.Name] = shape
		order = append(order, def.Name)
	}

	if len(c.ShapeWeights) == 0 {
		return newConfigError("shapeWeights", "at least one entry is required")
	}
	for i, name := range c.ShapeWeights.Items() {
		if _, ok := shapes[name]; !ok {
			return newConfigError(fmt.Sprintf("shapeWeights[%d]", i), "unknown shape %q", name)
		}
	}
	if len(c.ContentWeights) == 0 {
		return newConfigError("contentWeights", "at least one entry is required")
	}

	// 权重和越界只是编辑期警告，选择器按截断后的分布继续工作
	if err := c.ShapeWeights.Validate(); err != nil {
		log.Printf("[BlockCatalog] Warning: shapeWeights: %v (continuing with normalized distribution)", err)
	}
	if err := c.ContentWeights.Validate(); err != nil {
		log.Printf("[BlockCatalog] Warning: contentWeights: %v (continuing with normalized distribution)", err)
	}

	c.shapes = shapes
	c.order = order
	return nil
}

// Shape 按名称查找形状
func (c *BlockCatalog) Shape(name string) (ShapeConfig, bool) {
	s, ok := c.shapes[name]
	return s, ok
}

// ShapeNames 返回所有形状名称（按目录顺序）
func (c *BlockCatalog) ShapeNames() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Marshal 将目录序列化为 YAML（用于编辑工具保存覆盖配置）
// 已构建的目录按形状索引重新生成 shapes 列表，权重表输出副本
func (c *BlockCatalog) Marshal() ([]byte, error) {
	out := BlockCatalog{
		Grid:           c.Grid,
		Shapes:         c.Shapes,
		ShapeWeights:   c.ShapeWeights.Clone(),
		ContentWeights: c.ContentWeights.Clone(),
	}
	if c.shapes != nil {
		out.Shapes = make([]ShapeDefinition, 0, len(c.order))
		for _, name := range c.order {
			out.Shapes = append(out.Shapes, c.shapes[name].Definition())
		}
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal block catalog: %w", err)
	}
	return data, nil
}
