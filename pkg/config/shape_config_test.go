package config

import (
	"errors"
	"testing"

	"github.com/decker502/blockgrid/pkg/types"
)

func gc(x, y int) types.GridCoord {
	return types.GridCoord{X: x, Y: y}
}

// TestNewShapeConfigValidation 测试形状构造校验
func TestNewShapeConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		offsets []types.GridCoord
		wantErr bool
	}{
		{"单格", []types.GridCoord{gc(0, 0)}, false},
		{"L形", []types.GridCoord{gc(0, 0), gc(0, 1), gc(1, 1)}, false},
		{"空形状", nil, true},
		{"重复偏移", []types.GridCoord{gc(0, 0), gc(1, 0), gc(0, 0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := NewShapeConfig(tt.name, tt.offsets)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewShapeConfig error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ConfigError, got %T: %v", err, err)
				}
				return
			}
			if shape.CellCount() != len(tt.offsets) {
				t.Errorf("CellCount = %d, want %d", shape.CellCount(), len(tt.offsets))
			}
		})
	}
}

// TestShapeCoordinatesAreCopies 测试 Coordinates 返回副本，形状不可被外部修改
func TestShapeCoordinatesAreCopies(t *testing.T) {
	input := []types.GridCoord{gc(0, 0), gc(1, 0)}
	shape := MustShapeConfig("domino", input...)

	input[0] = gc(9, 9)
	coords := shape.Coordinates()
	coords[1] = gc(7, 7)

	want := []types.GridCoord{gc(0, 0), gc(1, 0)}
	got := shape.Coordinates()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("shape mutated through external slice: got %v, want %v", got, want)
		}
	}
}

// TestZeroShapeIsEmpty 测试零值形状
func TestZeroShapeIsEmpty(t *testing.T) {
	var s ShapeConfig
	if !s.IsEmpty() || s.CellCount() != 0 {
		t.Error("zero ShapeConfig should be empty")
	}
	if !s.Rotate90().IsEmpty() {
		t.Error("rotating an empty shape should stay empty")
	}
}

// TestRotate90 测试旋转 (dx,dy) -> (dy,-dx) 并规范化
func TestRotate90(t *testing.T) {
	tests := []struct {
		name  string
		shape ShapeConfig
		want  []types.GridCoord
	}{
		{
			name:  "横条变竖条",
			shape: MustShapeConfig("tromino_i", gc(0, 0), gc(1, 0), gc(2, 0)),
			want:  []types.GridCoord{gc(0, 2), gc(0, 1), gc(0, 0)},
		},
		{
			name:  "L形",
			shape: MustShapeConfig("tromino_l", gc(0, 0), gc(0, 1), gc(1, 1)),
			// (0,0)->(0,0) (0,1)->(1,0) (1,1)->(1,-1)，平移 +1 行
			want: []types.GridCoord{gc(0, 1), gc(1, 1), gc(1, 0)},
		},
		{
			name:  "单格不变",
			shape: MustShapeConfig("mono", gc(0, 0)),
			want:  []types.GridCoord{gc(0, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotated := tt.shape.Rotate90()
			want := MustShapeConfig("", tt.want...)
			if !rotated.SameCells(want) {
				t.Errorf("Rotate90 = %v, want %v", rotated.Coordinates(), tt.want)
			}
			minCorner, _ := rotated.Bounds()
			if minCorner != gc(0, 0) {
				t.Errorf("rotated shape not normalized, min corner = %v", minCorner)
			}
			if rotated.Name() != tt.shape.Name() {
				t.Errorf("Rotate90 changed name: %q -> %q", tt.shape.Name(), rotated.Name())
			}
		})
	}
}

// TestRotate90KeepsMinCorner 测试旋转保留原形状的包围盒最小角
// 规范化形状的最小角是 (0,0)，结果与"旋转后重新规范化"一致
func TestRotate90KeepsMinCorner(t *testing.T) {
	tests := []struct {
		name  string
		shape ShapeConfig
	}{
		{"规范化L形", MustShapeConfig("tromino_l", gc(0, 0), gc(0, 1), gc(1, 1))},
		{"偏移形状", MustShapeConfig("offset", gc(2, 3), gc(3, 3), gc(3, 5))},
		{"负偏移形状", MustShapeConfig("negative", gc(-1, 0), gc(0, 0), gc(0, -2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantMin, _ := tt.shape.Bounds()
			rotated := tt.shape.Rotate90()
			gotMin, _ := rotated.Bounds()
			if gotMin != wantMin {
				t.Errorf("min corner after Rotate90 = %v, want %v", gotMin, wantMin)
			}
			// 与先规范化再旋转得到的形状只差一个平移
			if !rotated.Normalize().SameCells(tt.shape.Normalize().Rotate90()) {
				t.Errorf("Rotate90().Normalize() = %v, want %v",
					rotated.Normalize().Coordinates(), tt.shape.Normalize().Rotate90().Coordinates())
			}
		})
	}
}

// TestRotationClosure 测试旋转四次回到原形状（包括非规范化形状）
func TestRotationClosure(t *testing.T) {
	shapes := []ShapeConfig{
		MustShapeConfig("mono", gc(0, 0)),
		MustShapeConfig("domino", gc(0, 0), gc(1, 0)),
		MustShapeConfig("tetromino_t", gc(0, 0), gc(1, 0), gc(2, 0), gc(1, 1)),
		MustShapeConfig("tetromino_s", gc(1, 0), gc(2, 0), gc(0, 1), gc(1, 1)),
		MustShapeConfig("offset", gc(2, 3), gc(3, 3), gc(3, 5)),
		MustShapeConfig("negative", gc(-1, 0), gc(0, 0), gc(0, -2)),
	}

	for _, s := range shapes {
		t.Run(s.Name(), func(t *testing.T) {
			r := s
			for i := 0; i < 4; i++ {
				r = r.Rotate90()
				if r.CellCount() != s.CellCount() {
					t.Fatalf("rotation %d changed cell count", i+1)
				}
			}
			if !r.SameCells(s) {
				t.Errorf("4x Rotate90 = %v, want %v", r.Coordinates(), s.Coordinates())
			}
			if !s.RotateTimes(4).SameCells(s) || !s.RotateTimes(-1).SameCells(s.RotateTimes(3)) {
				t.Error("RotateTimes is inconsistent with Rotate90")
			}
		})
	}
}

// TestNormalizeAndBounds 测试包围盒与规范化
func TestNormalizeAndBounds(t *testing.T) {
	s := MustShapeConfig("offset", gc(2, 3), gc(3, 3), gc(3, 5))

	minCorner, maxCorner := s.Bounds()
	if minCorner != gc(2, 3) || maxCorner != gc(3, 5) {
		t.Errorf("Bounds = %v..%v, want (2,3)..(3,5)", minCorner, maxCorner)
	}

	n := s.Normalize()
	want := MustShapeConfig("", gc(0, 0), gc(1, 0), gc(1, 2))
	if !n.SameCells(want) {
		t.Errorf("Normalize = %v, want %v", n.Coordinates(), want.Coordinates())
	}
}

// TestShapeCells 测试锚点 + 偏移量
func TestShapeCells(t *testing.T) {
	s := MustShapeConfig("domino", gc(0, 0), gc(1, 0))
	cells := s.Cells(gc(5, 5))
	if len(cells) != 2 || cells[0] != gc(5, 5) || cells[1] != gc(6, 5) {
		t.Errorf("Cells(5,5) = %v, want [(5,5) (6,5)]", cells)
	}
}

// TestShapeDefinitionRoundTrip 测试编辑形式与 ShapeConfig 互转
func TestShapeDefinitionRoundTrip(t *testing.T) {
	def := ShapeDefinition{Name: "tromino_l", Cells: [][]int{{0, 0}, {0, 1}, {1, 1}}}
	s, err := def.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	back := s.Definition()
	if back.Name != def.Name || len(back.Cells) != 3 || back.Cells[2][0] != 1 || back.Cells[2][1] != 1 {
		t.Errorf("Definition() = %+v, want %+v", back, def)
	}

	bad := ShapeDefinition{Name: "bad", Cells: [][]int{{0}}}
	if _, err := bad.Build(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ConfigError for malformed cell, got %v", err)
	}
}
