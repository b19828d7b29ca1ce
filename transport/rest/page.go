package rest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
)

const pageStyle = `body{font-family:sans-serif;margin:20px}
.game{display:flex;flex-direction:row}
.game-info{margin-left:20px}
.board-row{display:flex}
.square{background:#fff;border:1px solid #999;font-size:24px;font-weight:bold;height:34px;width:34px;margin:-1px -1px 0 0;padding:0}
.square.win{background:#ffe08a}
.status{margin-bottom:10px}
.moves button.current{font-weight:bold}
form{display:inline;margin:0}`

// gamePage renders the board, the status line and the move list.
// Every control is a form button so the page works without scripts.
func gamePage(view presenter.View) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder

		sb.WriteString("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>Tic-tac-toe</title><style>")
		sb.WriteString(pageStyle)
		sb.WriteString("</style></head><body><div class=\"game\"><div class=\"game-board\">")
		fmt.Fprintf(&sb, "<div class=\"status\">%s</div>", templ.EscapeString(view.Status))

		for row := range 3 {
			sb.WriteString("<div class=\"board-row\">")
			for col := range 3 {
				writeSquare(&sb, view, row*3+col)
			}
			sb.WriteString("</div>")
		}

		sb.WriteString("</div><div class=\"game-info\"><ol class=\"moves\">")
		for _, move := range view.Moves {
			class := ""
			if move.Current {
				class = " class=\"current\""
			}
			fmt.Fprintf(&sb, "<li><form method=\"post\" action=\"/jump/%d\"><button%s>%s</button></form></li>",
				move.Move, class, templ.EscapeString(move.Label))
		}
		sb.WriteString("</ol><form method=\"post\" action=\"/reset\"><button>new game</button></form>")
		sb.WriteString("</div></div></body></html>")

		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func writeSquare(sb *strings.Builder, view presenter.View, cell int) {
	class := "square"
	if view.InLine(cell) {
		class += " win"
	}

	fmt.Fprintf(sb, "<form method=\"post\" action=\"/play/%d\"><button class=\"%s\" aria-label=\"cell %d\">%s</button></form>",
		cell, class, cell, templ.EscapeString(view.Cells[cell]))
}
