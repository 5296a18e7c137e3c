package app

import (
	"github.com/decker502/blockgrid/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// readPointerState 读取当前帧的指针状态
// 优先检测触摸，其次检测鼠标
func readPointerState() utils.PointerState {
	state := utils.PointerState{}

	// 新的触摸事件
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.PrimaryJustPressed = true
		return state
	}

	// 活动的触摸（用于悬停）
	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	state.PrimaryJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.SecondaryJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	return state
}
