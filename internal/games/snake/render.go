package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	hudHeight  = 2 // status line + separator
	cellWidth  = 2 // terminal columns per board cell, keeps cells roughly square
	overlayPad = 4
)

// RequiredSize returns the smallest screen that fits the board of snap.
func RequiredSize(snap Snapshot) (w, h int) {
	n := boardColumns(snap)
	return n*cellWidth + 2, n + 2 + hudHeight
}

func boardColumns(snap Snapshot) int {
	if snap.CellSize <= 0 {
		return 0
	}
	return snap.BoardSize / snap.CellSize
}

// Render draws snap into dst. The screen is cleared first.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	renderHUD(snap, dst)

	w, h := RequiredSize(snap)
	if dst.Width() < w || dst.Height() < h {
		renderOverlay(dst, dst.Bounds(), "Window too small", fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	frame := core.NewRect((dst.Width()-w)/2, hudHeight, w, h-hudHeight)
	dst.DrawBox(frame, core.ColorGray)

	if snap.HasFood() {
		drawCell(dst, frame, snap, snap.Food, '●', core.ColorRed)
	}
	// Tail first so the head wins if segments ever overlap.
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			drawCell(dst, frame, snap, snap.Snake[i], '█', core.ColorBrightGreen)
		} else {
			drawCell(dst, frame, snap, snap.Snake[i], '▓', core.ColorGreen)
		}
	}

	if snap.Message != "" {
		renderOverlay(dst, frame, snap.Message, overlayHint(snap.State))
	}
}

// drawCell paints one board cell inside frame.
func drawCell(dst *core.Screen, frame core.Rect, snap Snapshot, c Cell, r rune, color core.Color) {
	col, row := c.X/snap.CellSize, c.Y/snap.CellSize
	x := frame.X + 1 + col*cellWidth
	y := frame.Y + 1 + row
	for i := 0; i < cellWidth; i++ {
		dst.SetColored(x+i, y, r, color)
	}
}

// renderHUD draws the top status bar.
func renderHUD(snap Snapshot, dst *core.Screen) {
	hud := fmt.Sprintf(" Snake | Score: %d  NG: %d/%d  Speed: %dms",
		snap.Score, snap.NGCount, snap.MaxNG, snap.Interval.Milliseconds())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

func overlayHint(s State) string {
	switch s {
	case StateIdle, StateGameOver, StateWon:
		return "Press Enter to start"
	case StatePausedRetry:
		return "Restarting..."
	default:
		return ""
	}
}

// renderOverlay draws a centered message box inside area.
func renderOverlay(dst *core.Screen, area core.Rect, line1, line2 string) {
	textW := max(len([]rune(line1)), len([]rune(line2)))
	box := area.Centered(textW+overlayPad, 5)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box, box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box, box.Y+3, line2, core.ColorCyan)
}
