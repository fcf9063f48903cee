package ui

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/five82/guide/internal/prefs"
	"github.com/five82/guide/internal/wiki"
)

type searchPhase int

const (
	phaseIdle searchPhase = iota
	phaseSearching
	phaseSuccess
	phaseError
)

// searchResultMsg is the outcome of one lookup, tagged with the generation
// that issued it.
type searchResultMsg struct {
	mounted
	gen     int
	article wiki.Article
	err     error
}

type searchScreen struct {
	env
	query   string
	phase   searchPhase
	article *popup
	errText string
	gen     int
	kb      keyboard
	spinner spinner.Model
	theme   Theme
}

func newSearchScreen(e env, theme Theme) *searchScreen {
	s := &searchScreen{
		env:     e,
		spinner: spinner.New(spinner.WithSpinner(spinner.Line)),
		theme:   theme,
	}
	if q, ok := e.prefs.Get(prefs.KeyQuery); ok {
		s.query = q
	}
	return s
}

func (s *searchScreen) Init() tea.Cmd {
	return nil
}

// suppressed reports whether typing and keyboard navigation are ignored.
func (s *searchScreen) suppressed() bool {
	return s.phase == phaseSearching || s.article != nil || s.errText != ""
}

func (s *searchScreen) Update(msg tea.Msg, keys keyMap) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		if s.article != nil {
			s.article.resize(s.theme, s.width, s.height)
		}
		return s, nil

	case searchResultMsg:
		return s, s.applyResult(msg)

	case spinner.TickMsg:
		if s.phase != phaseSearching {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case clickMsg:
		return s, s.handleClick(msg)

	case tea.KeyMsg:
		return s, s.handleKey(msg, keys)
	}
	return s, nil
}

func (s *searchScreen) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	if s.article != nil {
		switch {
		case key.Matches(msg, keys.Back):
			s.closeArticle()
		case key.Matches(msg, keys.Up):
			s.article.scroll(-popupScrollLines)
		case key.Matches(msg, keys.Down):
			s.article.scroll(popupScrollLines)
		case key.Matches(msg, keys.Copy):
			s.article.copySource()
		}
		return nil
	}
	if key.Matches(msg, keys.Back) {
		if s.errText != "" {
			s.errText = ""
			s.phase = phaseIdle
		}
		return nil
	}
	if s.suppressed() {
		return nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		s.kb = s.kb.move(-1, 0)
	case key.Matches(msg, keys.Down):
		s.kb = s.kb.move(1, 0)
	case key.Matches(msg, keys.Left):
		s.kb = s.kb.move(0, -1)
	case key.Matches(msg, keys.Right):
		s.kb = s.kb.move(0, 1)
	case key.Matches(msg, keys.Confirm):
		return s.press(s.kb.focused())
	case key.Matches(msg, keys.Backspace):
		s.backspace()
	case msg.Type == tea.KeySpace:
		s.space()
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && typeable(msg.Runes[0]):
		s.typeCharacter(msg.Runes[0])
	}
	return nil
}

func typeable(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func (s *searchScreen) handleClick(msg clickMsg) tea.Cmd {
	if s.suppressed() {
		return nil
	}
	row, col, ok := keyAt(msg.X-keyboardLeft, msg.Y-keyboardTop)
	if !ok {
		return nil
	}
	s.kb = keyboard{row: row, col: col}
	return s.press(s.kb.focused())
}

// press activates one on-screen key.
func (s *searchScreen) press(k string) tea.Cmd {
	switch k {
	case keySpace:
		s.space()
	case keyBackspace:
		s.backspace()
	case keySearch:
		return s.search()
	default:
		for _, r := range k {
			s.typeCharacter(r)
		}
	}
	return nil
}

func (s *searchScreen) setQuery(q string) {
	s.query = q
	s.persist(prefs.KeyQuery, q)
}

func (s *searchScreen) typeCharacter(r rune) {
	s.setQuery(s.query + strings.ToUpper(string(r)))
}

func (s *searchScreen) space() {
	s.setQuery(s.query + " ")
}

func (s *searchScreen) backspace() {
	if s.query == "" {
		return
	}
	runes := []rune(s.query)
	s.setQuery(string(runes[:len(runes)-1]))
}

// search starts a lookup for the current query. A blank query does nothing.
func (s *searchScreen) search() tea.Cmd {
	query := s.query
	if strings.TrimSpace(query) == "" {
		return nil
	}
	s.phase = phaseSearching
	s.article = nil
	s.errText = ""
	s.gen++
	return tea.Batch(s.lookupCmd(query, s.gen), s.spinner.Tick)
}

func (s *searchScreen) lookupCmd(query string, gen int) tea.Cmd {
	searcher, parent, tag := s.searcher, s.ctx, mounted{mount: s.mount}
	return func() tea.Msg {
		if searcher == nil {
			return searchResultMsg{mounted: tag, gen: gen, err: errors.New("search is not configured")}
		}
		ctx, cancel := context.WithTimeout(parent, lookupTimeout)
		defer cancel()
		article, err := searcher.Lookup(ctx, query)
		return searchResultMsg{mounted: tag, gen: gen, article: article, err: err}
	}
}

// applyResult installs a lookup outcome unless a newer search was issued.
func (s *searchScreen) applyResult(msg searchResultMsg) tea.Cmd {
	if msg.gen != s.gen {
		s.logger.Debug("dropping superseded search result", zap.Int("gen", msg.gen), zap.Int("latest", s.gen))
		return nil
	}
	if msg.err != nil {
		s.phase = phaseError
		s.article = nil
		s.errText = lookupErrorText(msg.err)
		s.logger.Info("search failed", zap.String("query", s.query), zap.Error(msg.err))
		return nil
	}
	s.phase = phaseSuccess
	s.errText = ""
	s.article = newPopup(msg.article, s.theme, s.width, s.height)
	s.logger.Info("article displayed", zap.String("query", s.query), zap.String("title", msg.article.Title))
	return nil
}

func (s *searchScreen) closeArticle() {
	s.article = nil
	s.phase = phaseIdle
}

func lookupErrorText(err error) string {
	switch {
	case errors.Is(err, wiki.ErrNoResults):
		return "No results found."
	case errors.Is(err, wiki.ErrSearchFailed):
		return "Search request failed"
	case errors.Is(err, wiki.ErrSummaryFailed):
		return "Failed to fetch page summary"
	case err != nil && err.Error() != "":
		return err.Error()
	default:
		return "Search failed. Please try again later."
	}
}

func (s *searchScreen) View(theme Theme, width, height int) string {
	if s.article != nil {
		return s.article.view(theme)
	}
	styles := theme.Styles()

	boxWidth := width - 2*keyboardLeft - 2
	if boxWidth < 10 {
		boxWidth = 10
	}
	shown := s.query
	if limit := boxWidth - 4; runewidth.StringWidth(shown) > limit {
		tail := []rune(shown)
		for runewidth.StringWidth(string(tail)) > limit-1 && len(tail) > 0 {
			tail = tail[1:]
		}
		shown = "…" + string(tail)
	}
	input := styles.Box.Width(boxWidth).Render(styles.Text.Render("> "+shown) + styles.Selected.Render(" "))

	var status string
	switch {
	case s.phase == phaseSearching:
		status = styles.AccentText.Render(s.spinner.View() + " Querying Wikipedia...")
	case s.errText != "":
		status = styles.DangerText.Render("Error: "+s.errText) + styles.FaintText.Render("  [ ESC ] DISMISS")
	default:
		status = styles.FaintText.Render("[ ARROWS ] MOVE  [ ENTER ] PRESS KEY")
	}

	pad := lipgloss.NewStyle().PaddingLeft(keyboardLeft)
	return lipgloss.JoinVertical(lipgloss.Left,
		pad.Render(input),
		"",
		pad.Render(s.kb.view(styles, !s.suppressed())),
		"",
		pad.Render(status),
	)
}
