package render

import (
	"testing"

	"github.com/decker502/blockgrid/pkg/config"
	"github.com/decker502/blockgrid/pkg/ecs"
	"github.com/decker502/blockgrid/pkg/entities"
	"github.com/decker502/blockgrid/pkg/systems"
	"github.com/decker502/blockgrid/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

func gc(x, y int) types.GridCoord {
	return types.GridCoord{X: x, Y: y}
}

var lShape = config.MustShapeConfig("tromino_l", gc(0, 0), gc(0, 1), gc(1, 1))

// placeTestBlock 创建方块实体并放置到网格上
func placeTestBlock(t *testing.T, em *ecs.EntityManager, grid *systems.GridMap, anchor types.GridCoord, contents []string) ecs.EntityID {
	t.Helper()
	id, err := entities.NewBlockEntity(em, lShape, contents)
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.PlaceBlock(anchor, lShape, id); err != nil {
		t.Fatal(err)
	}
	if err := entities.MarkBlockPlaced(em, id, anchor, mgl64.Vec2{}); err != nil {
		t.Fatal(err)
	}
	return id
}

// TestGridRenderSystemTracksCells 测试渲染系统的显示副本跟随网格变化
func TestGridRenderSystemTracksCells(t *testing.T) {
	em := ecs.NewEntityManager()
	grid := systems.NewGridMap(nil)
	if err := grid.Initialize(8, 8, 16); err != nil {
		t.Fatal(err)
	}
	render := NewGridRenderSystem(em, grid)
	grid.SetSink(render)

	id := placeTestBlock(t, em, grid, gc(2, 2), []string{"gold_chest", "frost_tower", "unknown"})

	if render.FilledCount() != 3 {
		t.Errorf("FilledCount = %d, want 3", render.FilledCount())
	}
	for _, c := range lShape.Cells(gc(2, 2)) {
		if !render.IsFilled(c) {
			t.Errorf("cell %v should be filled", c)
		}
	}

	if _, err := grid.RemoveBlock(gc(2, 2)); err != nil {
		t.Fatal(err)
	}
	entities.DestroyBlockEntity(em, id)
	if render.FilledCount() != 0 {
		t.Errorf("FilledCount after remove = %d, want 0", render.FilledCount())
	}
	if len(render.placedBlocks()) != 0 {
		t.Error("destroyed block should not be reported as placed")
	}
}

// TestGridRenderSystemCellColors 测试格子颜色来自已放置方块的内容
func TestGridRenderSystemCellColors(t *testing.T) {
	em := ecs.NewEntityManager()
	grid := systems.NewGridMap(nil)
	if err := grid.Initialize(8, 8, 16); err != nil {
		t.Fatal(err)
	}
	render := NewGridRenderSystem(em, grid)
	grid.SetSink(render)

	placeTestBlock(t, em, grid, gc(2, 2), []string{"gold_chest", "frost_tower", "unknown"})
	placeTestBlock(t, em, grid, gc(5, 0), []string{"arrow_tower", "arrow_tower", "heal_totem"})

	// 尚未放置的方块实体不参与着色
	if _, err := entities.NewBlockEntity(em, lShape, []string{"cannon_tower", "cannon_tower", "cannon_tower"}); err != nil {
		t.Fatal(err)
	}

	colors := render.cellColors()
	tests := []struct {
		name   string
		cell   types.GridCoord
		want   string
		hasClr bool
	}{
		{"锚点格子", gc(2, 2), "gold_chest", true},
		{"第二个格子", gc(2, 3), "frost_tower", true},
		{"未知内容", gc(3, 3), "", false},
		{"第二个方块", gc(6, 1), "heal_totem", true},
		{"空格子", gc(0, 0), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := colors[tt.cell]
			if ok != tt.hasClr {
				t.Fatalf("color present = %v, want %v", ok, tt.hasClr)
			}
			if ok && got != contentColors[tt.want] {
				t.Errorf("color = %v, want %v", got, contentColors[tt.want])
			}
		})
	}

	if n := len(render.placedBlocks()); n != 2 {
		t.Errorf("placedBlocks = %d, want 2", n)
	}
}
