package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JohnDeved/cinemate/internal/catalog"
	"github.com/JohnDeved/cinemate/internal/lists"
	"github.com/JohnDeved/cinemate/internal/logging"
	"github.com/JohnDeved/cinemate/internal/session"
)

// Tab identifies the active view.
type Tab int

const (
	TabMovies Tab = iota
	TabTop
	TabSearch
	TabGenres
	TabYear
	TabFavourites
	TabWatchList
)

var tabs = []struct {
	name string
	tab  Tab
	key  string
}{
	{"Movies", TabMovies, "1"},
	{"Top", TabTop, "2"},
	{"Search", TabSearch, "3"},
	{"Genres", TabGenres, "4"},
	{"Year", TabYear, "5"},
	{"Favourites", TabFavourites, "6"},
	{"Watch list", TabWatchList, "7"},
}

// LoadFunc produces the catalog. It runs off the UI goroutine.
type LoadFunc func() ([]*catalog.Movie, error)

// Messages
type catalogMsg struct{ movies []*catalog.Movie }

type loadErrMsg struct{ err error }

type statusClearMsg struct{ id int }

type promptAction int

const (
	promptAdd promptAction = iota
	promptRemove
	promptJump
)

// promptModel asks for a movie number. Adds stay open after success so
// several movies can be added in a row.
type promptModel struct {
	active bool
	action promptAction
	kind   session.ListKind
	input  textinput.Model
}

// Model is the main Bubble Tea model.
type Model struct {
	load       LoadFunc
	opts       session.Options
	log        *slog.Logger
	sess       *session.Session
	activeTab  Tab
	movies     movieTable
	top        movieTable
	favourites movieTable
	watchList  movieTable
	search     queryModel
	year       queryModel
	genres     genreModel
	prompt     promptModel
	spinner    spinner.Model
	loading    bool
	fatal      error
	width      int
	height     int
	showHelp   bool
	helpOffset int
	statusMsg  string
	statusErr  bool
	statusID   int
}

// NewModel creates the TUI model.
func NewModel(load LoadFunc, opts session.Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	if opts.Years == (catalog.YearRange{}) {
		opts.Years = catalog.DefaultYears
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	pi := textinput.New()
	pi.CharLimit = 9
	pi.Width = 12
	pi.PromptStyle = searchPromptStyle

	return Model{
		load:       load,
		opts:       opts,
		log:        log,
		activeTab:  TabMovies,
		movies:     newMovieTable("The catalog is empty."),
		top:        newMovieTable("No movies to rank."),
		favourites: newMovieTable("Your favourites list is empty."),
		watchList:  newMovieTable("Your watch list is empty."),
		search:     newQueryModel(queryTitle, opts.Years),
		year:       newQueryModel(queryYear, opts.Years),
		genres:     newGenreModel(),
		prompt:     promptModel{input: pi},
		spinner:    s,
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCatalog(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewHeight := m.height - 8 // Account for header, tabs, status bar
		m.movies.height = viewHeight - 3
		m.top.height = viewHeight - 3
		m.favourites.height = viewHeight - 3
		m.watchList.height = viewHeight - 3
		m.search.table.height = viewHeight - 6
		m.year.table.height = viewHeight - 6
		m.genres.height = viewHeight - 2
		m.genres.table.height = viewHeight - 3
		return m, nil

	case catalogMsg:
		m.loading = false
		m.sess = session.New(catalog.New(msg.movies), m.opts)
		m.genres.setGenres(m.sess.Genres())
		m.refreshTab(TabMovies)
		return m, nil

	case loadErrMsg:
		m.log.Error("loading catalog failed", logging.Err(msg.err))
		m.loading = false
		m.fatal = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case statusClearMsg:
		if msg.id == m.statusID {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Pass through to the focused input.
	var cmd tea.Cmd
	switch {
	case m.prompt.active:
		m.prompt.input, cmd = m.prompt.input.Update(msg)
	case m.activeTab == TabSearch:
		m.search.input, cmd = m.search.input.Update(msg)
	case m.activeTab == TabYear:
		m.year.input, cmd = m.year.input.Update(msg)
	}
	return m, cmd
}

// inputFocused reports whether key presses are text for an input line.
func (m Model) inputFocused() bool {
	switch {
	case m.prompt.active:
		return true
	case m.activeTab == TabSearch:
		return m.search.input.Focused()
	case m.activeTab == TabYear:
		return m.year.input.Focused()
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading || m.sess == nil {
		if key == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.prompt.active {
		return m.handlePromptKey(key, msg)
	}

	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
			m.helpOffset = 0
		case "up", "k":
			if m.helpOffset > 0 {
				m.helpOffset--
			}
		case "down", "j":
			m.helpOffset++
		case "pgup", "ctrl+u":
			m.helpOffset = max(0, m.helpOffset-8)
		case "pgdown", "ctrl+d":
			m.helpOffset += 8
		case "home", "g":
			m.helpOffset = 0
		}
		return m, nil
	}

	switch key {
	case "tab":
		return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabs)))
	case "shift+tab":
		return m.switchTab(Tab((int(m.activeTab) + len(tabs) - 1) % len(tabs)))
	}

	if m.inputFocused() {
		return m.handleQueryKey(key, msg)
	}

	// Global keys.
	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	}
	for _, t := range tabs {
		if key == t.key {
			return m.switchTab(t.tab)
		}
	}

	switch m.activeTab {
	case TabSearch, TabYear:
		switch key {
		case "/", "i":
			m.focusQuery()
			return m, textinput.Blink
		case "esc":
			m.focusQuery()
			return m, textinput.Blink
		}
	case TabGenres:
		if !m.genres.showing {
			return m.handleGenreListKey(key)
		}
		if key == "esc" || key == "backspace" || key == "h" || key == "left" {
			m.genres.back()
			return m, nil
		}
	case TabFavourites, TabWatchList:
		switch key {
		case "d", "x", "delete":
			return m.removeSelected()
		case "D":
			return m.openPrompt(promptRemove, m.listKind())
		}
	}

	return m.handleTableKey(key)
}

func (m Model) handleTableKey(key string) (tea.Model, tea.Cmd) {
	t := m.activeTable()
	if t == nil {
		return m, nil
	}
	switch key {
	case "up", "k":
		t.moveUp()
	case "down", "j":
		t.moveDown()
	case "pgup", "ctrl+u":
		t.pageUp()
	case "pgdown", "ctrl+d":
		t.pageDown()
	case "home", "g":
		t.goHome()
	case "end", "G":
		t.goEnd()
	case "f":
		return m.addSelected(session.Favourites)
	case "w":
		return m.addSelected(session.WatchList)
	case "F":
		return m.openPrompt(promptAdd, session.Favourites)
	case "W":
		return m.openPrompt(promptAdd, session.WatchList)
	case ":":
		return m.openPrompt(promptJump, session.Favourites)
	}
	return m, nil
}

func (m Model) handleGenreListKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.genres.moveUp()
	case "down", "j":
		m.genres.moveDown()
	case "enter", "l", "right":
		genre := m.genres.selected()
		if genre == "" {
			return m, nil
		}
		view := m.sess.Genre(genre)
		rows, err := m.sess.Rows(view)
		if err != nil {
			return m, m.setError(err)
		}
		m.genres.showing = true
		m.genres.table.cursor = 0
		m.genres.table.offset = 0
		m.genres.table.setRows(view, rows)
	}
	return m, nil
}

func (m Model) handleQueryKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.activeQuery()
	switch key {
	case "enter":
		raw := strings.TrimSpace(q.input.Value())
		if raw == "" {
			return m, nil
		}
		var (
			view session.View
			err  error
		)
		if q.kind == queryYear {
			view, err = m.sess.Year(raw)
		} else {
			view = m.sess.Search(raw)
		}
		if err != nil {
			// Leave the input focused so the user can correct it.
			q.setError(err)
			return m, nil
		}
		rows, err := m.sess.Rows(view)
		if err != nil {
			q.setError(err)
			return m, nil
		}
		q.err = nil
		q.table.cursor = 0
		q.table.offset = 0
		q.table.setRows(view, rows)
		q.input.Blur()
		return m, nil
	case "esc":
		q.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	q.input, cmd = q.input.Update(msg)
	return m, cmd
}

func (m Model) handlePromptKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		raw := m.prompt.input.Value()
		switch m.prompt.action {
		case promptAdd:
			t := m.activeTable()
			if t == nil {
				m.closePrompt()
				return m, nil
			}
			movie, err := m.sess.AddInput(m.prompt.kind, t.view, raw)
			m.prompt.input.SetValue("")
			if err != nil {
				return m, m.setError(err)
			}
			m.refreshList(m.prompt.kind)
			return m, m.setStatus(fmt.Sprintf("%s added to %s. Enter another number or Esc to finish", movie.Title, m.prompt.kind))
		case promptRemove:
			movie, err := m.sess.RemoveInput(m.prompt.kind, raw)
			if err != nil {
				m.prompt.input.SetValue("")
				return m, m.setError(err)
			}
			m.closePrompt()
			m.refreshList(m.prompt.kind)
			return m, m.setStatus(fmt.Sprintf("%s removed from %s", movie.Title, m.prompt.kind))
		case promptJump:
			pos, err := catalog.ParsePosition(raw)
			if err != nil {
				m.prompt.input.SetValue("")
				return m, m.setError(err)
			}
			t := m.activeTable()
			if t == nil || !t.jumpTo(pos) {
				m.prompt.input.SetValue("")
				size := 0
				if t != nil {
					size = len(t.rows)
				}
				return m, m.setError(&catalog.IndexError{Position: pos, Len: size})
			}
			m.closePrompt()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.sess == nil {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.showHelp {
			if m.helpOffset > 0 {
				m.helpOffset--
			}
			return m, nil
		}
		if m.activeTab == TabGenres && !m.genres.showing {
			m.genres.moveUp()
		} else if t := m.activeTable(); t != nil {
			t.moveUp()
		}
	case tea.MouseButtonWheelDown:
		if m.showHelp {
			m.helpOffset++
			return m, nil
		}
		if m.activeTab == TabGenres && !m.genres.showing {
			m.genres.moveDown()
		} else if t := m.activeTable(); t != nil {
			t.moveDown()
		}
	}
	return m, nil
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.search.input.Blur()
	m.year.input.Blur()
	m.activeTab = tab
	cmd := m.refreshTab(tab)
	if (tab == TabSearch && !m.search.table.loaded) || (tab == TabYear && !m.year.table.loaded) {
		m.focusQuery()
		return m, tea.Batch(cmd, textinput.Blink)
	}
	return m, cmd
}

// refreshTab renumbers the rows of a tab from the session.
func (m *Model) refreshTab(tab Tab) tea.Cmd {
	if m.sess == nil {
		return nil
	}
	switch tab {
	case TabMovies:
		if !m.movies.loaded {
			view := session.CatalogView()
			rows, err := m.sess.Rows(view)
			if err != nil {
				return m.setError(err)
			}
			m.movies.setRows(view, rows)
		}
	case TabTop:
		if !m.top.loaded {
			view := session.TopView()
			view.Label = fmt.Sprintf("Top %d", m.sess.Options().TopN)
			rows, err := m.sess.Rows(view)
			if err != nil {
				return m.setError(err)
			}
			m.top.setRows(view, rows)
		}
	case TabFavourites:
		m.refreshList(session.Favourites)
	case TabWatchList:
		m.refreshList(session.WatchList)
	}
	return nil
}

func (m *Model) refreshList(kind session.ListKind) {
	l := m.sess.List(kind)
	view := session.FilterView(listLabel(l), l.Movies())
	m.listTable(kind).setRows(view, l.Rows())
}

func listLabel(l *lists.List) string {
	name := l.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}

func (m *Model) listTable(kind session.ListKind) *movieTable {
	if kind == session.WatchList {
		return &m.watchList
	}
	return &m.favourites
}

func (m Model) listKind() session.ListKind {
	if m.activeTab == TabWatchList {
		return session.WatchList
	}
	return session.Favourites
}

// activeTable returns the movie table on screen, or nil when the tab
// shows something else.
func (m *Model) activeTable() *movieTable {
	switch m.activeTab {
	case TabMovies:
		return &m.movies
	case TabTop:
		return &m.top
	case TabSearch:
		if m.search.table.loaded {
			return &m.search.table
		}
	case TabYear:
		if m.year.table.loaded {
			return &m.year.table
		}
	case TabGenres:
		if m.genres.showing {
			return &m.genres.table
		}
	case TabFavourites:
		return &m.favourites
	case TabWatchList:
		return &m.watchList
	}
	return nil
}

func (m *Model) activeQuery() *queryModel {
	if m.activeTab == TabYear {
		return &m.year
	}
	return &m.search
}

func (m *Model) focusQuery() {
	q := m.activeQuery()
	q.input.Focus()
}

func (m Model) addSelected(kind session.ListKind) (tea.Model, tea.Cmd) {
	t := m.activeTable()
	if t == nil || t.position() == 0 {
		return m, m.setStatus("Nothing selected")
	}
	movie, err := m.sess.Add(kind, t.view, t.position())
	if err != nil {
		return m, m.setError(err)
	}
	m.refreshList(kind)
	return m, m.setStatus(fmt.Sprintf("%s added to %s", movie.Title, kind))
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	kind := m.listKind()
	t := m.listTable(kind)
	if t.position() == 0 {
		return m, m.setStatus(fmt.Sprintf("Your %s is empty", kind))
	}
	movie, err := m.sess.Remove(kind, t.position())
	if err != nil {
		return m, m.setError(err)
	}
	m.refreshList(kind)
	return m, m.setStatus(fmt.Sprintf("%s removed from %s", movie.Title, kind))
}

func (m Model) openPrompt(action promptAction, kind session.ListKind) (tea.Model, tea.Cmd) {
	if action != promptRemove {
		if t := m.activeTable(); t == nil || len(t.rows) == 0 {
			return m, m.setStatus("No movies to choose from")
		}
	}
	m.prompt.active = true
	m.prompt.action = action
	m.prompt.kind = kind
	switch action {
	case promptAdd:
		m.prompt.input.Prompt = fmt.Sprintf("Add # to %s: ", kind)
	case promptRemove:
		m.prompt.input.Prompt = fmt.Sprintf("Remove # from %s: ", kind)
	case promptJump:
		m.prompt.input.Prompt = "Go to #: "
	}
	m.prompt.input.SetValue("")
	m.prompt.input.Focus()
	return m, textinput.Blink
}

func (m *Model) closePrompt() {
	m.prompt.active = false
	m.prompt.input.Blur()
	m.prompt.input.SetValue("")
}

// Commands

func (m Model) loadCatalog() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		movies, err := load()
		if err != nil {
			return loadErrMsg{err: err}
		}
		return catalogMsg{movies: movies}
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("  Cinemate  "))
	sb.WriteString("\n")

	// Tabs
	var tabLine strings.Builder
	for _, t := range tabs {
		label := fmt.Sprintf(" %s %s ", t.key, t.name)
		if m.activeTab == t.tab {
			tabLine.WriteString(tabActiveStyle.Render(label))
		} else {
			tabLine.WriteString(tabInactiveStyle.Render(label))
		}
		tabLine.WriteString(" ")
	}
	if m.sess != nil {
		if n := m.sess.List(session.Favourites).Len(); n > 0 {
			tabLine.WriteString(markedStyle.Render(fmt.Sprintf(" [%d fav]", n)))
		}
		if n := m.sess.List(session.WatchList).Len(); n > 0 {
			tabLine.WriteString(successStyle.Render(fmt.Sprintf(" [%d to watch]", n)))
		}
	}
	sb.WriteString(tabLine.String())
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")

	// Content area.
	switch {
	case m.loading:
		sb.WriteString(fmt.Sprintf("\n  %s Loading movies...\n", m.spinner.View()))
	case m.fatal != nil:
		sb.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.fatal)))
		sb.WriteString("\n")
	case m.showHelp:
		sb.WriteString(m.helpView(m.height - 8))
	default:
		switch m.activeTab {
		case TabMovies:
			sb.WriteString(m.movies.render(m.width))
		case TabTop:
			sb.WriteString(m.top.render(m.width))
		case TabSearch:
			sb.WriteString(m.search.view(m.width))
		case TabYear:
			sb.WriteString(m.year.view(m.width))
		case TabGenres:
			sb.WriteString(m.genres.view(m.width))
		case TabFavourites:
			sb.WriteString(m.favourites.render(m.width))
		case TabWatchList:
			sb.WriteString(m.watchList.render(m.width))
		}
	}

	if m.prompt.active {
		sb.WriteString(promptStyle.Render(m.prompt.input.View()))
		sb.WriteString("\n")
	}

	// Status bar.
	statusLine := m.statusMsg
	if statusLine == "" {
		statusLine = m.defaultStatus()
	} else if m.statusErr {
		statusLine = errorStyle.Render(statusLine)
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")
	sb.WriteString(statusBarStyle.Width(m.width).Render(statusLine))

	return sb.String()
}

func (m Model) defaultStatus() string {
	if m.prompt.active {
		return "Type a number and press Enter  Esc:done"
	}
	switch m.activeTab {
	case TabSearch, TabYear:
		if m.inputFocused() {
			return "Enter:search  Esc:browse results  ?:help"
		}
		return "/:new search  j/k:navigate  f/w:add to favourites/watch list  ?:help"
	case TabGenres:
		if !m.genres.showing {
			return "j/k:navigate  Enter:show movies  ?:help"
		}
		return "Esc:back to genres  f/w:add to favourites/watch list  ?:help"
	case TabFavourites, TabWatchList:
		return "j/k:navigate  d:remove selected  D:remove by number  ?:help"
	}
	return "j/k:navigate  f:favourite  w:watch list  F/W:add by number  ::go to  ?:help"
}

func (m Model) helpView(maxLines int) string {
	lines := []string{
		"  Keyboard Shortcuts",
		"  ──────────────────",
		"",
		"  Global:",
		"    Tab / 1-7     Switch views",
		"    Shift+Tab     Reverse view cycle",
		"    ?             Toggle help",
		"    q / Ctrl+C    Quit",
		"",
		"  Movie lists:",
		"    j/k / Up/Down Navigate",
		"    g / G         Go to top/bottom",
		"    PgUp / PgDn   Page up/down",
		"    :             Go to movie number",
		"    f / w         Add selected to favourites / watch list",
		"    F / W         Add by number (repeat until Esc)",
		"",
		"  Search / Year:",
		"    / or i        Focus input",
		"    Enter         Run search",
		"",
		"  Genres:",
		"    Enter         Show movies in genre",
		"    Esc           Back to genre list",
		"",
		"  Favourites / Watch list:",
		"    d / x         Remove selected",
		"    D             Remove by number",
		"",
		"  Press ? or Esc to close help.",
	}

	if maxLines < 6 {
		maxLines = 6
	}
	maxOffset := max(0, len(lines)-maxLines)
	helpOffset := min(max(0, m.helpOffset), maxOffset)

	end := min(helpOffset+maxLines, len(lines))
	visible := lines[helpOffset:end]
	if maxOffset > 0 {
		visible = append(visible, fmt.Sprintf("  [%d/%d]", helpOffset+1, maxOffset+1))
	}

	return helpStyle.Render(strings.Join(visible, "\n"))
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = false
	m.statusID++
	id := m.statusID
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

func (m *Model) setError(err error) tea.Cmd {
	cmd := m.setStatus(describeError(err))
	m.statusErr = true
	return cmd
}

// describeError turns the catalog and list errors into status text.
func describeError(err error) string {
	var (
		dupErr   *lists.DuplicateError
		idxErr   *catalog.IndexError
		rangeErr *catalog.RangeError
		parseErr *catalog.ParseError
	)
	switch {
	case errors.As(err, &dupErr):
		return fmt.Sprintf("%s is already in your %s", dupErr.Title, dupErr.List)
	case errors.As(err, &idxErr):
		if idxErr.Len == 0 {
			return "There are no movies to choose from"
		}
		return fmt.Sprintf("Choose a number between 1 and %d", idxErr.Len)
	case errors.As(err, &rangeErr):
		return fmt.Sprintf("Enter a year between %d and %d", rangeErr.Min, rangeErr.Max)
	case errors.As(err, &parseErr):
		if parseErr.Field == "position" || parseErr.Field == "year" {
			return fmt.Sprintf("%q is not a number", parseErr.Input)
		}
		return err.Error()
	}
	return err.Error()
}

// Run starts the TUI and returns the catalog load error, if any.
func Run(load LoadFunc, opts session.Options) error {
	m := NewModel(load, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.fatal != nil {
		return fm.fatal
	}
	return nil
}
