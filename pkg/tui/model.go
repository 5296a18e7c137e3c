package tui

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/decker502/blockgrid/pkg/config"
	"github.com/decker502/blockgrid/pkg/ecs"
	"github.com/decker502/blockgrid/pkg/systems"
	"github.com/decker502/blockgrid/pkg/types"
)

// Model 终端放置界面的 bubbletea 模型
//
// 每次按键都会排入命令并立即调用一次放置系统的 Update，
// 即终端界面以"按键"为 tick。
type Model struct {
	entityManager   *ecs.EntityManager
	grid            *systems.GridMap
	sink            *TerminalGridSink
	placementSystem *systems.BlockPlacementSystem

	cursor  types.GridCoord
	keys    keyMap
	help    help.Model
	logger  *log.Logger
	message string
}

// NewModel 创建终端界面模型
// 参数:
//   - catalog: 已加载的方块目录
//   - rng: 随机源
//   - logger: charmbracelet 日志器（终端界面运行时标准输出被占用，应写入文件）
func NewModel(catalog *config.BlockCatalog, rng *rand.Rand, logger *log.Logger) (*Model, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}

	em := ecs.NewEntityManager()
	sink := NewTerminalGridSink(catalog.Grid.Width, catalog.Grid.Height)
	grid := systems.NewGridMap(sink)
	if err := grid.InitializeFromConfig(catalog.Grid); err != nil {
		return nil, err
	}

	placement, err := systems.NewBlockPlacementSystem(em, grid, systems.NewBlockGenerator(catalog, rng))
	if err != nil {
		return nil, err
	}

	logger.Info("terminal grid ready", "width", grid.Width(), "height", grid.Height())
	return &Model{
		entityManager:   em,
		grid:            grid,
		sink:            sink,
		placementSystem: placement,
		keys:            defaultKeyMap(),
		help:            help.New(),
		logger:          logger,
	}, nil
}

// Init 实现 tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update 实现 tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(keyMsg, m.keys.Place):
		m.placementSystem.QueuePlace(m.cursor)
	case key.Matches(keyMsg, m.keys.Remove):
		m.placementSystem.QueueRemoveAt(m.cursor)
	case key.Matches(keyMsg, m.keys.Rotate):
		m.placementSystem.RotateCandidate()
	case key.Matches(keyMsg, m.keys.Next):
		if err := m.placementSystem.NextCandidate(); err != nil {
			m.logger.Warn("next candidate failed", "error", err)
		}
	case key.Matches(keyMsg, m.keys.Clear):
		m.placementSystem.QueueClear()
	default:
		return m, nil
	}

	m.tick()
	return m, nil
}

// tick 执行排队的命令并记录结果
func (m *Model) tick() {
	if m.placementSystem.PendingCommands() == 0 {
		return
	}
	m.placementSystem.Update(0)

	if err := m.placementSystem.LastError(); err != nil {
		m.message = err.Error()
		m.logger.Warn("command rejected", "cursor", m.cursor.String(), "error", err)
		return
	}
	m.message = ""
	m.logger.Debug("commands applied", "blocks", m.grid.BlockCount(), "entities", m.entityManager.EntityCount())
}

// moveCursor 移动光标，限制在网格范围内
func (m *Model) moveCursor(dx, dy int) {
	m.cursor.X = max(0, min(m.grid.Width()-1, m.cursor.X+dx))
	m.cursor.Y = max(0, min(m.grid.Height()-1, m.cursor.Y+dy))
}

// View 实现 tea.Model
func (m *Model) View() string {
	preview := m.placementSystem.PreviewCells(m.cursor)
	valid := m.placementSystem.CanPlaceCandidate(m.cursor)
	gridView := m.sink.Render(m.cursor, preview, valid)

	var sb strings.Builder
	fmt.Fprintf(&sb, "blocks   %d\n", m.grid.BlockCount())
	fmt.Fprintf(&sb, "cursor   %s\n", m.cursor)
	if c, ok := m.placementSystem.Candidate(); ok {
		fmt.Fprintf(&sb, "shape    %s\n", c.Shape.Name())
		fmt.Fprintf(&sb, "contents %s\n", strings.Join(c.Contents, ", "))
	}
	if m.message != "" {
		sb.WriteString("\n" + previewBadStyle.Render(m.message))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, gridView, statusPanelStyle.Render(sb.String()))
	return body + "\n" + m.help.View(m.keys)
}

// Cursor 返回光标位置
func (m *Model) Cursor() types.GridCoord {
	return m.cursor
}

// Grid 返回网格（供测试和工具读取状态）
func (m *Model) Grid() *systems.GridMap {
	return m.grid
}

// Sink 返回终端显示副本
func (m *Model) Sink() *TerminalGridSink {
	return m.sink
}
