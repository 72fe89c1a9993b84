package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by style and wrap width. WithAutoStyle can block on terminal
	// background queries, so the style is always given explicitly.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	r := mdRenderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = r
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

const helpMarkdown = `
# navedit

Edit the outline (bookmarks) of a DjVu document.

## Moving

| Key | Action |
|-----|--------|
| ` + "`j` `↓`" + ` | next visible entry |
| ` + "`k` `↑`" + ` | previous visible entry |
| ` + "`l` `→`" + ` | open the entry |
| ` + "`h` `←`" + ` | close the entry, or go to its parent |
| ` + "`space`" + ` | open/close |
| ` + "`g` `G`" + ` | first / last entry |
| ` + "`E` `C`" + ` | expand / collapse everything |

## Editing

| Key | Action |
|-----|--------|
| ` + "`i` `enter`" + ` | edit label and target in your editor |
| ` + "`o`" + ` | add an entry below (as first child when open) |
| ` + "`d`" + ` | delete the entry and everything under it |
| ` + "`y`" + ` | copy the label |

## Document

| Key | Action |
|-----|--------|
| ` + "`w`" + ` | write the outline into the document |
| ` + "`R`" + ` | reload the outline from the document |
| ` + "`q`" + ` | quit (twice with unsaved changes) |

The editor gets two lines: the label, then the target. A target made of
digits is a page number; anything else is a named target such as
` + "`page0012.djvu`" + `.
`
