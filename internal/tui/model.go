package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type focus int

const (
	focusBoard focus = iota
	focusHistory
)

// Model is the terminal front end of one game session.
type Model struct {
	logger        *slog.Logger
	state         *tictactoe.GameState
	styles        *Styles
	focus         focus
	cursor        int // board cell under the cursor
	historyCursor int // history entry under the cursor
	showHelp      bool
}

// Styles holds all the lipgloss styles
type Styles struct {
	cell        lipgloss.Style
	cursorCell  lipgloss.Style
	winningCell lipgloss.Style
	markX       lipgloss.Style
	markO       lipgloss.Style
	empty       lipgloss.Style
	status      lipgloss.Style
	title       lipgloss.Style
	move        lipgloss.Style
	currentMove lipgloss.Style
	selected    lipgloss.Style
	help        lipgloss.Style
	panel       lipgloss.Style
	activePanel lipgloss.Style
}

func NewModel(logger *slog.Logger) Model {
	return Model{
		logger: logger.With("component", "tui"),
		state:  tictactoe.NewGameState(),
		styles: createStyles(),
		cursor: 4,
	}
}

func createStyles() *Styles {
	panel := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return &Styles{
		cell: lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center),
		cursorCell: lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Background(lipgloss.Color("237")),
		winningCell: lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Background(lipgloss.Color("58")),
		markX:       lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		markO:       lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		status:      lipgloss.NewStyle().Bold(true).MarginBottom(1),
		title:       lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true).Padding(0, 1),
		move:        lipgloss.NewStyle(),
		currentMove: lipgloss.NewStyle().Bold(true),
		selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		panel:       panel,
		activePanel: panel.BorderForeground(lipgloss.Color("212")),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and forwards board and history selections to the game.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.toggleFocus()
	case "n":
		m.state = tictactoe.NewGameState()
		m.historyCursor = 0
		m.logger.Debug("new game")
	case "?":
		m.showHelp = !m.showHelp
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.cursor = int(key[0] - '1')
		m.play()
	default:
		if m.focus == focusBoard {
			m.handleBoardKey(key)
		} else {
			m.handleHistoryKey(key)
		}
	}

	return m, nil
}

func (m *Model) handleBoardKey(key string) {
	row, col := m.cursor/3, m.cursor%3

	switch key {
	case "up", "k":
		row = max(row-1, 0)
	case "down", "j":
		row = min(row+1, 2)
	case "left", "h":
		col = max(col-1, 0)
	case "right", "l":
		col = min(col+1, 2)
	case "enter", " ":
		m.play()
		return
	}

	m.cursor = row*3 + col
}

func (m *Model) handleHistoryKey(key string) {
	last := len(m.state.History()) - 1

	switch key {
	case "up", "k":
		m.historyCursor = max(m.historyCursor-1, 0)
	case "down", "j":
		m.historyCursor = min(m.historyCursor+1, last)
	case "home", "g":
		m.historyCursor = 0
	case "end", "G":
		m.historyCursor = last
	case "enter", " ":
		if err := m.state.JumpTo(m.historyCursor); err != nil {
			m.logger.Debug("jump ignored", "move", m.historyCursor, "reason", err)
		}
	}
}

func (m *Model) play() {
	if err := m.state.Play(m.cursor); err != nil {
		m.logger.Debug("play ignored", "cell", m.cursor, "reason", err)
		return
	}

	m.historyCursor = m.state.CurrentMove()
}

func (m *Model) toggleFocus() {
	if m.focus == focusBoard {
		m.focus = focusHistory
		m.historyCursor = m.state.CurrentMove()
		return
	}

	m.focus = focusBoard
}

// View renders the board next to the move list.
func (m Model) View() string {
	view := presenter.Present(m.state)

	boardPanel := m.styles.panel
	historyPanel := m.styles.panel
	if m.focus == focusBoard {
		boardPanel = m.styles.activePanel
	} else {
		historyPanel = m.styles.activePanel
	}

	board := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.status.Render(view.Status),
		m.renderBoard(view),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		boardPanel.Render(board),
		historyPanel.Render(m.renderMoves(view)),
	)

	sections := []string{m.styles.title.Render("tic-tac-toe"), body}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, m.styles.help.Render("tab switch panel • enter select • n new game • ? help • q quit"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderBoard(view presenter.View) string {
	rows := make([]string, 0, 5)

	for row := range 3 {
		cells := make([]string, 0, 3)
		for col := range 3 {
			cells = append(cells, m.renderCell(view, row*3+col))
		}
		rows = append(rows, strings.Join(cells, "│"))
		if row < 2 {
			rows = append(rows, "─────┼─────┼─────")
		}
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderCell(view presenter.View, index int) string {
	var content string
	switch mark := view.Cells[index]; mark {
	case "X":
		content = m.styles.markX.Render(mark)
	case "O":
		content = m.styles.markO.Render(mark)
	default:
		content = m.styles.empty.Render(fmt.Sprint(index + 1))
	}

	switch {
	case m.focus == focusBoard && index == m.cursor:
		return m.styles.cursorCell.Render(content)
	case view.InLine(index):
		return m.styles.winningCell.Render(content)
	default:
		return m.styles.cell.Render(content)
	}
}

func (m Model) renderMoves(view presenter.View) string {
	lines := make([]string, 0, len(view.Moves))

	for _, move := range view.Moves {
		pointer := "  "
		if m.focus == focusHistory && move.Move == m.historyCursor {
			pointer = m.styles.selected.Render("> ")
		}

		style := m.styles.move
		if move.Current {
			style = m.styles.currentMove
		}

		lines = append(lines, pointer+style.Render(fmt.Sprintf("%d. %s", move.Move, move.Label)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	return m.styles.help.Render(strings.Join([]string{
		"board:   arrows/hjkl move • enter/space play • 1-9 play cell",
		"history: up/down or j/k select • g/G first/last • enter jump",
		"tab switch panel • n new game • q quit",
	}, "\n"))
}
