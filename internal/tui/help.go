package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# todoboard

## Add screen

| Key | Action |
|---|---|
| tab / shift+tab | Next / previous field |
| ← / → | Change time, priority, category, recurrence |
| enter | Next field, or save on Notes |
| ctrl+s | Save task |
| ctrl+l | View all tasks |

## Task list

| Key | Action |
|---|---|
| ↑ / ↓ | Select task |
| enter | Show task details |
| c | Mark complete |
| e | Edit task |
| x | Delete task |
| D | Clear all tasks |
| p / g / s | Cycle priority, category, status filter |
| / | Search task text |
| r | Reset filters |
| 1-8 | Sort by column (again to reverse) |
| E / I | Export / import (csv, json, pdf) |
| u | Upcoming tasks |
| esc / b | Back to add screen |
| q | Quit |
`

// renderMarkdown renders md for a terminal of the given width. A negative
// width or a renderer error returns md unchanged.
func renderMarkdown(md string, width int) string {
	if width < 0 {
		return md
	}
	if width == 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
