package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	"github.com/misanthropic-codes/sports360/internal/tui/styles"
)

// Row is one renderable line in a list
type Row struct {
	ID          string
	Title       string
	Description string
	Glyph       string
}

// rowSource implements fuzzy.Source over the row titles
type rowSource []Row

func (r rowSource) String(i int) string { return r[i].Title }
func (r rowSource) Len() int            { return len(r) }

// List is a scrollable, filterable row list
type List struct {
	title string
	rows  []Row

	cursor int
	offset int

	width  int
	height int

	loading bool
	stale   bool // rendered when showing a persisted fallback

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into rows; nil when no filter applied
}

// NewList creates an empty list with a header title
func NewList(title string) *List {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &List{title: title, filterInput: ti}
}

// SetRows replaces the list content, clamping the cursor
func (l *List) SetRows(rows []Row) {
	l.rows = rows
	l.applyFilter()
	if l.cursor >= len(l.visible()) {
		l.cursor = max(0, len(l.visible())-1)
	}
}

// SetSize updates the render dimensions
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetLoading toggles the loading indicator
func (l *List) SetLoading(v bool) { l.loading = v }

// SetStale marks the content as a persisted fallback
func (l *List) SetStale(v bool) { l.stale = v }

// Selected returns the row under the cursor
func (l *List) Selected() (Row, bool) {
	vis := l.visible()
	if len(vis) == 0 || l.cursor >= len(vis) {
		return Row{}, false
	}
	return vis[l.cursor], true
}

// MoveUp moves the cursor one row up
func (l *List) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
	l.scroll()
}

// MoveDown moves the cursor one row down
func (l *List) MoveDown() {
	if l.cursor < len(l.visible())-1 {
		l.cursor++
	}
	l.scroll()
}

// StartFilter enters filter mode
func (l *List) StartFilter() {
	l.filterActive = true
	l.filterInput.Focus()
}

// StopFilter leaves filter mode and clears the query
func (l *List) StopFilter() {
	l.filterActive = false
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.filteredIdx = nil
	l.cursor = 0
	l.offset = 0
}

// Filtering reports whether filter mode is active
func (l *List) Filtering() bool { return l.filterActive }

// FilterInput exposes the text input for Update wiring
func (l *List) FilterInput() *textinput.Model { return &l.filterInput }

// ApplyFilter re-runs the fuzzy match against the current query
func (l *List) ApplyFilter() {
	l.applyFilter()
	if l.cursor >= len(l.visible()) {
		l.cursor = max(0, len(l.visible())-1)
	}
}

func (l *List) applyFilter() {
	query := strings.TrimSpace(l.filterInput.Value())
	if query == "" {
		l.filteredIdx = nil
		return
	}
	matches := fuzzy.FindFrom(query, rowSource(l.rows))
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	l.filteredIdx = idx
}

func (l *List) visible() []Row {
	if l.filteredIdx == nil {
		return l.rows
	}
	vis := make([]Row, len(l.filteredIdx))
	for i, idx := range l.filteredIdx {
		vis[i] = l.rows[idx]
	}
	return vis
}

func (l *List) maxVisible() int {
	// Header + optional filter line + borders
	h := l.height - 3
	if l.filterActive {
		h--
	}
	return max(1, h)
}

func (l *List) scroll() {
	maxVis := l.maxVisible()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+maxVis {
		l.offset = l.cursor - maxVis + 1
	}
}

// View renders the list
func (l *List) View() string {
	var b strings.Builder

	header := styles.TitleStyle.Render(l.title)
	if l.loading {
		header += " " + styles.DimStyle.Render("(loading...)")
	} else if l.stale {
		header += " " + styles.WarnStyle.Render(styles.GlyphStale+" offline copy")
	}
	b.WriteString(header)
	b.WriteString("\n")

	if l.filterActive {
		b.WriteString(l.filterInput.View())
		b.WriteString("\n")
	}

	vis := l.visible()
	if len(vis) == 0 {
		b.WriteString(styles.DimStyle.Render("  nothing here yet"))
	}

	maxVis := l.maxVisible()
	end := min(l.offset+maxVis, len(vis))
	for i := l.offset; i < end; i++ {
		row := vis[i]
		line := row.Title
		if row.Glyph != "" {
			line = row.Glyph + " " + line
		}
		if row.Description != "" {
			line = fmt.Sprintf("%s  %s", line, styles.SubtitleStyle.Render(row.Description))
		}
		if i == l.cursor {
			line = styles.HighlightStyle.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	style := styles.InactiveBorder.Width(max(20, l.width-2))
	return style.Render(strings.TrimRight(b.String(), "\n"))
}
