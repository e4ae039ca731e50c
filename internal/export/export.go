// Package export renders ranking snapshots as static HTML reports.
package export

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/game-tec/pointsboard/internal/ledger"
)

var reportTmpl = template.Must(template.New("ranking").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Ranking - {{.Title}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 20px; background-color: #222; color: white; }
  h1 { color: #f39c12; text-align: center; }
  table { width: 100%; border-collapse: collapse; margin: 20px 0; }
  th, td { border: 1px solid #ddd; padding: 12px; text-align: center; }
  th { background-color: #3498db; color: white; }
  tr:nth-child(even) { background-color: #34495e; }
  tr:nth-child(odd) { background-color: #2c3e50; }
</style>
</head>
<body>
<h1>🎮 Ranking - {{.Title}} 🎮</h1>
<p style="text-align: center; color: #bdc3c7;">Gerado em: {{.GeneratedAt}}</p>
<table>
  <thead>
    <tr><th>Posição</th><th>Aluno</th><th>Pontos</th></tr>
  </thead>
  <tbody>
  {{- range .Rows}}
    <tr><td>{{.Pos}}</td><td>{{.Name}}</td><td>{{.Score}}</td></tr>
  {{- end}}
  </tbody>
</table>
</body>
</html>
`))

type reportData struct {
	Title       string
	GeneratedAt string
	Rows        []ledger.Row
}

// WriteHTML renders the rows into a uniquely named report file under dir
// and returns its path. The filename carries a timestamp plus a short
// random suffix so concurrent exports never collide.
func WriteHTML(dir, title string, rows []ledger.Row, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("ranking_%s_%s_%s.html",
		sanitize(title),
		now.Format("20060102_150405"),
		uuid.NewString()[:8])
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data := reportData{
		Title:       title,
		GeneratedAt: now.Format("02/01/2006 às 15:04"),
		Rows:        rows,
	}
	if err := reportTmpl.Execute(f, data); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// sanitize keeps filenames portable: spaces and path separators become
// underscores.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':':
			return '_'
		}
		return r
	}, s)
}
