package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/strrl/unsplash-gallery/internal/gallery"
	"github.com/strrl/unsplash-gallery/pkg/models"
)

// tileHeight is the rendered height of one grid tile including its border
const tileHeight = 6

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	v := m.galleryView()
	body := m.viewport.View()
	if v.Selection.IsOpen && v.Selection.Item != nil {
		body = lipgloss.Place(m.viewport.Width, m.viewport.Height,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(*v.Selection.Item))
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s",
		m.renderHeader(v),
		m.input.View(),
		body,
		m.renderStatus(),
		m.renderFooter())
}

// renderBody renders everything that scrolls: grid, load-more button,
// loader and error banner
func (m model) renderBody() string {
	v := m.galleryView()
	var sections []string

	if len(v.Items) > 0 {
		sections = append(sections, m.renderGrid(v.Items))
	}
	if v.CanLoadMore {
		sections = append(sections, renderLoadMoreButton())
	}
	if v.Loading {
		sections = append(sections, m.loader.View())
	}
	if v.ErrorMessage != "" {
		sections = append(sections, renderError(v.ErrorMessage))
	}
	if len(sections) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		return emptyStyle.Render("Press / and type a search term")
	}
	return strings.Join(sections, "\n\n")
}

func (m model) tileWidth() int {
	w := m.width/m.columns - 2
	if w < 12 {
		w = 12
	}
	return w
}

func (m model) renderGrid(items []models.Photo) string {
	width := m.tileWidth()
	var rows []string
	for start := 0; start < len(items); start += m.columns {
		end := start + m.columns
		if end > len(items) {
			end = len(items)
		}
		tiles := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			tiles = append(tiles, renderTile(items[i], i, width, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderTile(p models.Photo, index, width int, selected bool) string {
	inner := width - 2
	border := lipgloss.Color("238")
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	if selected {
		border = lipgloss.Color("212")
		titleStyle = titleStyle.Foreground(lipgloss.Color("212")).Bold(true)
	}
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	author := p.User.Name
	if author == "" {
		author = p.User.Username
	}
	size := ""
	if p.Width > 0 && p.Height > 0 {
		size = fmt.Sprintf("%d×%d", p.Width, p.Height)
	}

	lines := []string{
		titleStyle.Render(truncate(fmt.Sprintf("%d. %s", index+1, p.Title()), inner)),
		metaStyle.Render(truncate("by "+orDash(author), inner)),
		metaStyle.Render(truncate(orDash(size), inner)),
		swatch(p.Color, inner),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(inner).
		Height(tileHeight - 2).
		Render(strings.Join(lines, "\n"))
}

// swatch draws a bar in the photo's dominant color
func swatch(color string, width int) string {
	if color == "" || width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(strings.Repeat("▀", width))
}

func renderLoadMoreButton() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63")).
		Padding(0, 2).
		Render("Load more (m)")
}

func renderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("160")).
		Padding(0, 1).
		Render(message)
}

func (m model) renderModal(p models.Photo) string {
	width := m.width - 8
	if width > 72 {
		width = 72
	}
	if width < 20 {
		width = 20
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var s strings.Builder
	for i, line := range wrapText(p.Title(), width) {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(headerStyle.Render(line))
	}
	s.WriteString("\n" + strings.Repeat("─", width) + "\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		s.WriteString(labelStyle.Render(fmt.Sprintf("%-8s", label)) + truncate(value, width-8) + "\n")
	}
	field("Author", strings.TrimSpace(p.User.Name+" @"+p.User.Username))
	if p.Width > 0 && p.Height > 0 {
		field("Size", fmt.Sprintf("%d×%d (%.2f:1)", p.Width, p.Height, p.Aspect()))
	}
	if p.Likes > 0 {
		field("Likes", fmt.Sprintf("%d", p.Likes))
	}
	field("Image", p.FullURL())
	field("Page", p.Links.HTML)
	if bar := swatch(p.Color, width); bar != "" {
		s.WriteString(bar + "\n")
	}
	s.WriteString("\n" + hintStyle.Render("o: open in browser • esc: close"))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2).
		Render(s.String())
}

func (m model) renderHeader(v gallery.View) string {
	title := "Unsplash Gallery"
	if v.Query != "" {
		title = fmt.Sprintf("Unsplash Gallery - %s (%d)", v.Query, len(v.Items))
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render(m.status)
}

func (m model) renderFooter() string {
	var info string
	switch {
	case m.selection.IsOpen:
		info = "o: open in browser • esc: close • q: quit"
	case m.focus == focusSearch:
		info = "enter: search • esc: back to results"
	default:
		info = "↑/↓/←/→: navigate • enter: enlarge • /: search"
		if m.session.CanLoadMore() {
			info += " • m: load more"
		}
		info += " • q: quit"
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	return style.Render(info)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to at most maxLen runes, marking the cut with "..."
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to fit within the specified width. Words longer than
// width are split across lines.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	currentLine := ""
	for _, word := range words {
		for utf8.RuneCountInString(word) > width {
			if currentLine != "" {
				lines = append(lines, currentLine)
				currentLine = ""
			}
			r := []rune(word)
			lines = append(lines, string(r[:width]))
			word = string(r[width:])
		}
		if word == "" {
			continue
		}

		switch {
		case currentLine == "":
			currentLine = word
		case utf8.RuneCountInString(currentLine)+1+utf8.RuneCountInString(word) > width:
			lines = append(lines, currentLine)
			currentLine = word
		default:
			currentLine += " " + word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
