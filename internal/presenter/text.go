package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// TextRenderer prints a view as plain terminal text, coloured when the output supports it.
type TextRenderer struct {
	output *termenv.Output
}

func NewTextRenderer(w io.Writer, opts ...termenv.OutputOption) *TextRenderer {
	return &TextRenderer{
		output: termenv.NewOutput(w, opts...),
	}
}

func (that *TextRenderer) Render(view View) error {
	var sb strings.Builder

	for row := range 3 {
		cells := make([]string, 0, 3)
		for col := range 3 {
			cells = append(cells, that.cell(view, row*3+col))
		}

		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	sb.WriteString("\n" + that.output.String(view.Status).Bold().String() + "\n\n")

	for _, move := range view.Moves {
		label := fmt.Sprintf("%2d. %s", move.Move, move.Label)
		if move.Current {
			label = that.output.String(label + "  <").Underline().String()
		}
		sb.WriteString(label + "\n")
	}

	if _, err := io.WriteString(that.output, sb.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

func (that *TextRenderer) cell(view View, index int) string {
	mark := view.Cells[index]
	if mark == "" {
		return that.output.String(fmt.Sprint(index)).Faint().String()
	}

	style := that.output.String(mark).Bold()
	switch mark {
	case "X":
		style = style.Foreground(that.output.Color("#FF5F87"))
	case "O":
		style = style.Foreground(that.output.Color("#5FAFFF"))
	}

	if view.InLine(index) {
		style = style.Underline()
	}

	return style.String()
}
