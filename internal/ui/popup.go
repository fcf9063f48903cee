package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/guide/internal/wiki"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

const popupHint = "[ ESC ] TO CLOSE ENTRY  |  [ ARROWS ] TO SCROLL DATA  |  [ C ] COPY SOURCE"

// popup shows one article over the search screen.
type popup struct {
	article  wiki.Article
	viewport viewport.Model
	notice   string
	width    int
	height   int
}

func newPopup(article wiki.Article, theme Theme, width, height int) *popup {
	p := &popup{article: article}
	p.resize(theme, width, height)
	return p
}

func (p *popup) boxWidth() int {
	w := p.width - 2
	if w > popupMaxWidth {
		w = popupMaxWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// textWidth is the usable width inside the border and padding.
func (p *popup) textWidth() int {
	return p.boxWidth() - 4
}

func (p *popup) resize(theme Theme, width, height int) {
	p.width, p.height = width, height
	vpHeight := height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	offset := p.viewport.YOffset
	p.viewport = viewport.New(p.textWidth(), vpHeight)
	p.viewport.SetContent(p.body(theme))
	p.viewport.SetYOffset(offset)
}

func (p *popup) body(theme Theme) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(renderArticleBody(p.article.Content, p.textWidth()))
	if len(p.article.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.WarningText.Bold(true).Render("SUB-ETHER DATA SOURCES:"))
		for _, src := range p.article.Sources {
			b.WriteString("\n")
			b.WriteString(styles.AccentText.Render("> " + src.Label()))
		}
	}
	return b.String()
}

// renderArticleBody renders the article text as markdown, falling back to a
// plain word wrap when glamour cannot.
func renderArticleBody(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := renderer.Render(content); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return wordwrap.String(content, width)
}

func (p *popup) scroll(lines int) {
	if lines < 0 {
		p.viewport.ScrollUp(-lines)
		return
	}
	p.viewport.ScrollDown(lines)
}

// copySource puts the first citation URI on the clipboard.
func (p *popup) copySource() {
	if len(p.article.Sources) == 0 || p.article.Sources[0].URI == "" {
		p.notice = "NO SOURCE TO COPY"
		return
	}
	uri := p.article.Sources[0].URI
	if err := clipboardWrite(uri); err != nil {
		p.notice = "COPY FAILED"
		return
	}
	p.notice = "COPIED: " + uri
}

func (p *popup) view(theme Theme) string {
	styles := theme.Styles()

	footer := styles.FaintText.Render(popupHint)
	if p.notice != "" {
		footer = styles.AccentText.Render(p.notice)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.WarningText.Bold(true).Render(p.article.Title),
		styles.FaintText.Render(strings.Repeat("─", p.textWidth())),
		p.viewport.View(),
		"",
		footer,
	)
	box := styles.Box.Width(p.boxWidth()).Render(content)
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
}
