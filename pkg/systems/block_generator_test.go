package systems

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/decker502/blockgrid/pkg/config"
)

const testCatalogYAML = `
grid:
  width: 6
  height: 5
  cellSize: 10
shapes:
  - name: mono
    cells: [[0, 0]]
  - name: bar
    cells: [[0, 0], [1, 0], [2, 0]]
shapeWeights:
  - item: mono
    weight: 30
  - item: bar
    weight: 70
contentWeights:
  - item: arrow_tower
    weight: 50
  - item: gold_chest
    weight: 50
`

func loadTestCatalog(t *testing.T) *config.BlockCatalog {
	t.Helper()
	catalog, err := config.ParseBlockCatalog([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("failed to parse test catalog: %v", err)
	}
	return catalog
}

// TestBlockGeneratorNext 测试按权重选形状、旋转并填充内容
func TestBlockGeneratorNext(t *testing.T) {
	catalog := loadTestCatalog(t)

	tests := []struct {
		name      string
		floats    []float64
		rotations int
		wantShape string
		wantCells int
	}{
		{"选中单格", []float64{0.1, 0.2}, 0, "mono", 1},
		{"选中长条不旋转", []float64{0.5, 0.2, 0.7, 0.9}, 0, "bar", 3},
		{"选中长条旋转一次", []float64{0.5, 0.2, 0.7, 0.9}, 1, "bar", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &fixedRandom{floats: tt.floats, ints: []int{tt.rotations}}
			gen := NewBlockGenerator(catalog, rng)

			block, err := gen.Next()
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if block.Shape.Name() != tt.wantShape {
				t.Errorf("shape = %s, want %s", block.Shape.Name(), tt.wantShape)
			}
			if block.Shape.CellCount() != tt.wantCells || len(block.Contents) != tt.wantCells {
				t.Errorf("got %d cells / %d contents, want %d", block.Shape.CellCount(), len(block.Contents), tt.wantCells)
			}

			base, _ := catalog.Shape(tt.wantShape)
			if !block.Shape.SameCells(base.RotateTimes(tt.rotations)) {
				t.Errorf("shape %v is not base rotated %d times", block.Shape, tt.rotations)
			}
		})
	}
}

// TestBlockGeneratorContents 测试每个格子的内容都来自内容权重表
func TestBlockGeneratorContents(t *testing.T) {
	catalog := loadTestCatalog(t)
	gen := NewBlockGenerator(catalog, rand.New(rand.NewSource(42)))

	allowed := map[string]bool{"arrow_tower": true, "gold_chest": true}
	for i := 0; i < 200; i++ {
		block, err := gen.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		for _, c := range block.Contents {
			if !allowed[c] {
				t.Fatalf("unexpected content %q", c)
			}
		}
	}
}

// TestBlockGeneratorForShape 测试按名称生成
func TestBlockGeneratorForShape(t *testing.T) {
	catalog := loadTestCatalog(t)
	gen := NewBlockGenerator(catalog, &fixedRandom{floats: []float64{0.9}})

	block, err := gen.ForShape("bar")
	if err != nil {
		t.Fatalf("ForShape failed: %v", err)
	}
	want := []string{"gold_chest", "gold_chest", "gold_chest"}
	for i := range want {
		if block.Contents[i] != want[i] {
			t.Errorf("Contents = %v, want %v", block.Contents, want)
			break
		}
	}

	if _, err := gen.ForShape("missing"); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ConfigError for unknown shape, got %v", err)
	}
}

// TestBlockGeneratorErrors 测试目录不完整时返回配置错误
func TestBlockGeneratorErrors(t *testing.T) {
	tests := []struct {
		name    string
		catalog *config.BlockCatalog
	}{
		{"形状权重表为空", &config.BlockCatalog{}},
		{"未知形状", &config.BlockCatalog{
			ShapeWeights:   config.WeightedTable[string]{config.Entry("ghost", 100)},
			ContentWeights: config.WeightedTable[string]{config.Entry("a", 100)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewBlockGenerator(tt.catalog, &fixedRandom{floats: []float64{0.5}})
			if _, err := gen.Next(); !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}
