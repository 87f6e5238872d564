package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// pieceColors maps piece kinds to their guideline display colors.
var pieceColors = map[engine.PieceKind]core.Color{
	engine.PieceI: core.ColorBrightCyan,
	engine.PieceO: core.ColorBrightYellow,
	engine.PieceT: core.ColorBrightMagenta,
	engine.PieceS: core.ColorBrightGreen,
	engine.PieceZ: core.ColorBrightRed,
	engine.PieceJ: core.ColorBrightBlue,
	engine.PieceL: core.ColorOrange,
}

// cellColor maps a settled cell value to a display color.
func cellColor(v engine.CellValue) core.Color {
	if v == engine.CellGarbage {
		return core.ColorGray
	}
	for kind, c := range pieceColors {
		if kind.Cell() == v {
			return c
		}
	}
	return core.ColorWhite
}

// Board placement on screen.
const (
	boardX = 2
	boardY = 1
)

// draw renders the whole session into the screen buffer.
func (m *Model) draw() {
	s := m.screen
	s.Clear()

	cfg := m.engineCfg
	s.DrawBox(core.NewRect(boardX, boardY, cfg.Width+2, cfg.VisibleHeight+2))

	m.drawBoard()
	m.drawSidebar()
	m.drawBanner()
}

// drawBoard renders the visible playfield: settled cells, the ghost outline
// and the active piece. Cells in hidden rows never reach the screen.
func (m *Model) drawBoard() {
	s := m.screen
	cfg := m.engineCfg

	for y := 0; y < cfg.VisibleHeight; y++ {
		for x := 0; x < cfg.Width; x++ {
			v := m.state.Board.Cell(x, y)
			if v != engine.CellEmpty {
				s.SetCell(boardX+1+x, boardY+1+y, '█', cellColor(v))
			}
		}
	}

	if !m.state.HasActive {
		return
	}

	ghost := m.state.Active
	ghost.Y = m.state.GhostY()
	for _, c := range ghost.OccupiedCells() {
		if c.Y >= 0 {
			s.SetCell(boardX+1+c.X, boardY+1+c.Y, '░', core.ColorGray)
		}
	}
	for _, c := range m.state.Active.OccupiedCells() {
		if c.Y >= 0 {
			s.SetCell(boardX+1+c.X, boardY+1+c.Y, '█', pieceColors[m.state.Active.Kind])
		}
	}
}

// drawSidebar renders hold, next queue and the HUD next to the board.
func (m *Model) drawSidebar() {
	s := m.screen
	cfg := m.engineCfg
	sx := boardX + cfg.Width + 4

	s.DrawText(sx, boardY+1, "HOLD")
	if m.state.Hold.Filled {
		color := pieceColors[m.state.Hold.Kind]
		if m.state.Hold.Used {
			color = core.ColorGray
		}
		s.SetCell(sx+6, boardY+1, rune(m.state.Hold.Kind.String()[0]), color)
	} else {
		s.SetCell(sx+6, boardY+1, '-', core.ColorGray)
	}

	s.DrawText(sx, boardY+3, "NEXT")
	preview := cfg.Preview
	if preview > len(m.state.Queue) {
		preview = len(m.state.Queue)
	}
	for i := 0; i < preview; i++ {
		kind := m.state.Queue[i]
		s.SetCell(sx+6+i*2, boardY+3, rune(kind.String()[0]), pieceColors[kind])
	}

	s.DrawText(sx, boardY+5, fmt.Sprintf("Score %d", m.score))
	s.DrawText(sx, boardY+6, fmt.Sprintf("Lines %d", m.lines))
	s.DrawText(sx, boardY+7, fmt.Sprintf("Tick  %d", m.state.Tick))
	if m.status != "" {
		s.DrawTextColored(sx, boardY+9, m.status, core.ColorBrightWhite)
	}
	if m.message != "" && m.msgLeft > 0 {
		s.DrawTextColored(sx, boardY+11, m.message, core.ColorBrightYellow)
	}

	s.DrawTextColored(sx, boardY+13, "←→ move  ↑ rotate  z ccw", core.ColorGray)
	s.DrawTextColored(sx, boardY+14, "↓ soft  space hard  c hold", core.ColorGray)
	s.DrawTextColored(sx, boardY+15, "p pause  r restart  q quit", core.ColorGray)
}

// drawBanner overlays the paused / finished / topped-out state.
func (m *Model) drawBanner() {
	var text string
	var color core.Color
	switch {
	case m.state.TopOut:
		text = " TOP OUT - r to retry "
		color = core.ColorBrightRed
	case m.done:
		text = " FINISHED - r to retry "
		color = core.ColorBrightGreen
	case m.paused:
		text = " PAUSED "
		color = core.ColorBrightYellow
	default:
		return
	}

	y := boardY + 1 + m.engineCfg.VisibleHeight/2
	x := boardX + 1 + (m.engineCfg.Width+2-len(text))/2
	if x < 0 {
		x = 0
	}
	m.screen.DrawTextColored(x, y, text, color)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
