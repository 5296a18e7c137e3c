// Package tui 提供方块网格的终端界面
//
// TerminalGridSink 作为 GridMap 的可视化接收端维护终端显示副本，
// Model 是 bubbletea 交互模型（光标移动、放置、移除、旋转、清空）。
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/decker502/blockgrid/pkg/systems"
	"github.com/decker502/blockgrid/pkg/types"
)

var (
	emptyCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	filledCellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("172"))
	previewOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	previewBadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cursorCellStyle  = lipgloss.NewStyle().Reverse(true)
	gridBorderStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("240"))
	statusPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

// 单元格字符
const (
	emptyRune   = "·"
	filledRune  = "█"
	previewRune = "▒"
)

// TerminalGridSink 终端网格显示副本
type TerminalGridSink struct {
	width  int
	height int
	filled map[types.GridCoord]bool
}

// NewTerminalGridSink 创建终端接收端
func NewTerminalGridSink(width, height int) *TerminalGridSink {
	return &TerminalGridSink{
		width:  width,
		height: height,
		filled: make(map[types.GridCoord]bool),
	}
}

// OnCellsChanged 实现 systems.VisualizationSink
func (s *TerminalGridSink) OnCellsChanged(updates []systems.CellUpdate) {
	for _, u := range updates {
		if u.Filled {
			s.filled[u.Cell] = true
		} else {
			delete(s.filled, u.Cell)
		}
	}
}

// FilledCount 返回已填充的格子数
func (s *TerminalGridSink) FilledCount() int {
	return len(s.filled)
}

// PlainRows 返回不带样式的网格行（'#' 已填充，'.' 空格子）
func (s *TerminalGridSink) PlainRows() []string {
	rows := make([]string, s.height)
	for y := 0; y < s.height; y++ {
		var sb strings.Builder
		for x := 0; x < s.width; x++ {
			if s.filled[types.GridCoord{X: x, Y: y}] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// Render 渲染带样式的网格
// 参数:
//   - cursor: 光标格子
//   - preview: 候选方块覆盖的格子
//   - previewValid: 候选方块能否放在光标处
func (s *TerminalGridSink) Render(cursor types.GridCoord, preview []types.GridCoord, previewValid bool) string {
	inPreview := make(map[types.GridCoord]bool, len(preview))
	for _, c := range preview {
		inPreview[c] = true
	}

	previewStyle := previewOKStyle
	if !previewValid {
		previewStyle = previewBadStyle
	}

	var sb strings.Builder
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c := types.GridCoord{X: x, Y: y}

			var cell string
			switch {
			case inPreview[c]:
				cell = previewStyle.Render(previewRune)
			case s.filled[c]:
				cell = filledCellStyle.Render(filledRune)
			default:
				cell = emptyCellStyle.Render(emptyRune)
			}
			if c == cursor {
				cell = cursorCellStyle.Render(cell)
			}
			sb.WriteString(cell)
		}
		if y < s.height-1 {
			sb.WriteByte('\n')
		}
	}
	return gridBorderStyle.Render(sb.String())
}
