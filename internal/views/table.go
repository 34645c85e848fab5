// Package views holds the HTML components served by the API.
package views

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/threecushion/backend/internal/game"
)

// TablePage holds data for the table viewer page.
type TablePage struct {
	Title        string
	TableID      string
	Version      int64
	SVG          []byte
	Balls        []game.Ball
	Trajectories []game.Trajectory
	StatePath    string
	SVGPath      string
	WSPath       string
}

// Table renders the full viewer page.
func Table(p TablePage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title>`, templ.EscapeString(p.Title)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<style>body{font-family:sans-serif;background:#1b1b1b;color:#eee}table{border-collapse:collapse}td,th{padding:2px 8px;text-align:right}</style></head><body>`); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<h1>Table <code>%s</code></h1>`, templ.EscapeString(p.TableID)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<div id="scene" data-svg="%s">`, templ.EscapeString(p.SVGPath)); err != nil {
			return err
		}
		if err := templ.Raw(string(p.SVG)).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
		if err := BallTable(p.Balls, p.Trajectories, p.Version).Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<script>%s</script>`, liveScript(p.WSPath)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// BallTable renders the ball positions, velocities and path summaries.
func BallTable(balls []game.Ball, trajectories []game.Trajectory, version int64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<table id="balls" data-version="%d"><thead><tr><th>ball</th><th>x</th><th>y</th><th>vx</th><th>vy</th><th>bounces</th><th>length</th></tr></thead><tbody>`, version); err != nil {
			return err
		}
		for i, b := range balls {
			bounces, length := 0, 0.0
			if i < len(trajectories) && trajectories[i].Color == b.Color {
				bounces, length = trajectories[i].Bounces, trajectories[i].Length
			}
			if _, err := fmt.Fprintf(w, `<tr class="%s"><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>`,
				templ.EscapeString(string(b.Color)), templ.EscapeString(string(b.Color)),
				format(b.X), format(b.Y), format(b.VX), format(b.VY), bounces, format(length)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func format(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// liveScript reloads the scene whenever the table changes.
func liveScript(wsPath string) string {
	return fmt.Sprintf(`(function(){var s=document.getElementById("scene");var p=location.protocol==="https:"?"wss://":"ws://";var ws=new WebSocket(p+location.host+%s);ws.onmessage=function(e){var m=JSON.parse(e.data);if(m.type!=="table_state")return;fetch(s.dataset.svg).then(function(r){return r.text()}).then(function(t){s.innerHTML=t})}})();`,
		strconv.Quote(wsPath))
}
