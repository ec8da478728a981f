package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/codex-hex/internal/app"
	"github.com/jaminalder/codex-hex/internal/domain"
	"github.com/jaminalder/codex-hex/internal/render"
)

type templates struct {
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"diagram": func(gs app.GameState) string { return render.Board(gs.Game.Board.Cells()) },
		"status": func(gs app.GameState) string {
			g := gs.Game
			if w := g.Winner(); w != domain.Empty {
				return w.String() + " (" + render.Glyph(w) + ") has won"
			}
			return g.Turn.String() + " (" + render.Glyph(g.Turn) + ") to move"
		},
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Hex</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Hex</h1>
<ul id="games">{{range .}}<li><a href="/game/{{.}}">{{.}}</a></li>{{else}}<li>No games yet</li>{{end}}</ul>`))
	// The fragment carries id="board"; the wrapper only receives swaps.
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div sse-swap="board">{{template "board" .}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{game: game, board: board, index: index}
}

// renderTemplate executes a fragment template as is.
func renderTemplate(t *template.Template, data any) []byte {
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.Bytes()
}

// renderPage executes the whole document around a page's content.
func renderPage(t *template.Template, data any) []byte {
	var buf bytes.Buffer
	_ = t.ExecuteTemplate(&buf, "base", data)
	return buf.Bytes()
}

const boardTemplate = `<div id="board">
<p class="status">{{status .}}</p>
<pre>{{diagram .}}</pre>
</div>`
