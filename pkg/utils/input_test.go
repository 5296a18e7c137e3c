package utils

import (
	"testing"

	"github.com/decker502/blockgrid/pkg/types"
)

func TestPointerGridAction(t *testing.T) {
	layout := GridLayout{OriginX: 40, OriginY: 30, Columns: 10, Rows: 8, CellSize: 32}

	tests := []struct {
		name       string
		state      PointerState
		wantAction PointerAction
		wantCell   types.GridCoord
		wantIn     bool
	}{
		{"悬停", PointerState{X: 40, Y: 30}, PointerNone, types.GridCoord{X: 0, Y: 0}, true},
		{"左键放置", PointerState{X: 105, Y: 63, PrimaryJustPressed: true}, PointerPlace, types.GridCoord{X: 2, Y: 1}, true},
		{"右键移除", PointerState{X: 359, Y: 285, SecondaryJustPressed: true}, PointerRemove, types.GridCoord{X: 9, Y: 7}, true},
		{"左右键同时按下以放置为准", PointerState{X: 50, Y: 40, PrimaryJustPressed: true, SecondaryJustPressed: true}, PointerPlace, types.GridCoord{X: 0, Y: 0}, true},
		{"网格左侧", PointerState{X: 39, Y: 40, PrimaryJustPressed: true}, PointerNone, types.GridCoord{}, false},
		{"网格右侧", PointerState{X: 360, Y: 40, PrimaryJustPressed: true}, PointerNone, types.GridCoord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, cell, in := tt.state.GridAction(layout)
			if action != tt.wantAction || cell != tt.wantCell || in != tt.wantIn {
				t.Errorf("GridAction = (%v, %v, %v), want (%v, %v, %v)",
					action, cell, in, tt.wantAction, tt.wantCell, tt.wantIn)
			}
		})
	}
}
