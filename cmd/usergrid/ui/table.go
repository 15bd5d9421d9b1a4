package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"usergrid/internal/fetch"
	"usergrid/internal/format"
	"usergrid/internal/gql"
	"usergrid/internal/model"
	"usergrid/internal/popover"
	"usergrid/internal/posts"
	"usergrid/internal/query"
	"usergrid/internal/refresh"
)

const (
	loadingText = "Loading users and posts..."
	helpText    = "↑/↓ move · enter posts · / search · r refresh · q quit"
	searchHelp  = "enter apply · esc close"
)

type usersLoadedMsg struct {
	gen   uint64
	users []model.User
	err   error
}

type postsLoadedMsg struct {
	gen   uint64
	posts []model.Post
	err   error
}

// closeTimerMsg reports that a popover's hover-leave grace period elapsed.
type closeTimerMsg struct {
	row int
	id  uint64
}

// Options configures a TableModel. Zero values select defaults.
type Options struct {
	Search          string
	Endpoint        string
	Formatter       *format.Formatter
	Styles          *Styles
	HoverCloseDelay time.Duration
	SearchDebounce  time.Duration
	RenderMarkdown  bool
	Refresh         *refresh.Scheduler
	Logger          *zap.Logger
}

// TableModel is the users grid screen.
type TableModel struct {
	client   query.Doer
	format   *format.Formatter
	styles   Styles
	logger   *zap.Logger
	layout   LayoutConfig
	columns  []Column
	endpoint string

	search   textinput.Model
	spinner  spinner.Model
	debounce *Debouncer
	applied  string // search term of the latest users request

	usersGen   fetch.Tracker
	postsGen   fetch.Tracker
	usersState fetch.State[[]model.User]
	postsState fetch.State[[]model.Post]

	rows       []model.User
	displays   [][]format.Display
	index      posts.Index
	popovers   []*popover.Popover
	doc        *popover.Document
	closeDelay time.Duration
	grid       *Grid

	panel     *PostsPanel
	markdown  bool
	panelRow  int
	panelView string
	active    int // row whose panel is drawn, -1 for none
	hovered   int // row whose trigger or panel is under the mouse, -1 for none
	refresh   *refresh.Scheduler
}

// NewTableModel creates the grid screen backed by client.
func NewTableModel(client query.Doer, opts Options) *TableModel {
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	f := opts.Formatter
	if f == nil {
		f = format.NewFormatter()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	delay := opts.HoverCloseDelay
	if delay <= 0 {
		delay = popover.DefaultCloseDelay
	}

	si := textinput.New()
	si.Prompt = "Search: "
	si.Placeholder = "Filter users by name..."
	si.CharLimit = 100
	si.Width = SearchInputWidth
	si.SetValue(opts.Search)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))

	m := &TableModel{
		client:     client,
		format:     f,
		styles:     styles,
		logger:     logger,
		columns:    UserColumns(),
		endpoint:   opts.Endpoint,
		search:     si,
		spinner:    sp,
		debounce:   NewDebouncer(opts.SearchDebounce),
		applied:    strings.TrimSpace(opts.Search),
		doc:        popover.NewDocument(),
		closeDelay: delay,
		markdown:   opts.RenderMarkdown,
		panelRow:   -1,
		active:     -1,
		hovered:    -1,
		refresh:    opts.Refresh,
	}
	m.panel = NewPostsPanel(f, styles, m.layout.PopoverContentWidth(), m.markdown)
	return m
}

// Init starts both fetches.
func (m *TableModel) Init() tea.Cmd {
	return tea.Batch(m.fetchAll(gql.CacheFirst), m.refresh.Next())
}

// Update handles messages.
func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayoutConfig(msg.Width, msg.Height)
		if m.grid != nil {
			m.grid.SetHeight(m.layout.BodyRows())
		}
		m.panelRow = -1
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case usersLoadedMsg:
		if !m.usersGen.IsCurrent(msg.gen) {
			m.logger.Debug("dropping stale users response", zap.Uint64("generation", msg.gen))
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("users fetch failed", zap.String("search", m.applied), zap.Error(msg.err))
		}
		m.usersState = fetch.Resolve(msg.gen, msg.users, msg.err)
		m.rebuild()
		return m, nil

	case postsLoadedMsg:
		if !m.postsGen.IsCurrent(msg.gen) {
			m.logger.Debug("dropping stale posts response", zap.Uint64("generation", msg.gen))
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("posts fetch failed", zap.Error(msg.err))
		}
		m.postsState = fetch.Resolve(msg.gen, msg.posts, msg.err)
		m.rebuild()
		return m, nil

	case debounceMsg:
		if !m.debounce.Current(msg) {
			return m, nil
		}
		return m, m.applySearch(msg.value)

	case closeTimerMsg:
		if msg.row >= 0 && msg.row < len(m.popovers) {
			if m.popovers[msg.row].TimerFired(msg.id) {
				m.syncActive()
			}
		}
		return m, nil

	case refresh.TickMsg:
		if !m.refresh.Current(msg) {
			return m, nil
		}
		m.logger.Debug("scheduled refresh", zap.String("schedule", m.refresh.String()))
		return m, tea.Batch(m.fetchAll(gql.NetworkOnly), m.refresh.Next())

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *TableModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if key == "esc" {
		if !m.doc.KeyDown(popover.KeyEscape) && m.search.Focused() {
			m.search.Blur()
		}
		m.syncActive()
		return m, nil
	}

	if m.search.Focused() {
		if key == "enter" {
			m.debounce.Cancel()
			m.search.Blur()
			return m, m.applySearch(m.search.Value())
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			return m, tea.Batch(cmd, m.debounce.Trigger(m.search.Value()))
		}
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		return m, m.search.Focus()
	case "r":
		return m, m.fetchAll(gql.NetworkOnly)
	}

	if m.grid == nil || !m.gridVisible() {
		return m, nil
	}
	switch key {
	case "up", "k":
		m.grid.MoveCursor(-1)
	case "down", "j":
		m.grid.MoveCursor(1)
	case "pgup":
		m.grid.MoveCursor(-m.grid.PageSize())
	case "pgdown":
		m.grid.MoveCursor(m.grid.PageSize())
	case "home", "g":
		m.grid.SetCursor(0)
	case "end", "G":
		m.grid.SetCursor(len(m.rows) - 1)
	case "enter", " ":
		m.tap(m.grid.Cursor())
	}
	return m, nil
}

func (m *TableModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Action == tea.MouseActionMotion:
		return m.hover(msg.X, msg.Y)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.doc.PointerDown(msg.X, msg.Y)
		m.syncActive()

		if msg.Y >= TitleHeight && msg.Y < TitleHeight+SearchBarHeight {
			return m.search.Focus()
		}
		m.search.Blur()

		if row, ok := m.postsCellAt(msg.X, msg.Y); ok {
			m.grid.SetCursor(row)
			m.toggle(row)
			return nil
		}
		if m.gridVisible() && msg.X < m.grid.Width() {
			if row, ok := m.grid.RowAt(GridTop, msg.Y); ok {
				m.grid.SetCursor(row)
			}
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		if m.gridVisible() {
			m.grid.MoveCursor(-1)
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		if m.gridVisible() {
			m.grid.MoveCursor(1)
		}
	}
	return nil
}

// hover moves the mouse to (x, y), translating region changes into popover
// hover-leave and hover-enter events.
func (m *TableModel) hover(x, y int) tea.Cmd {
	row := m.regionAt(x, y)
	if row == m.hovered {
		return nil
	}

	var cmd tea.Cmd
	if m.hovered >= 0 && m.hovered < len(m.popovers) {
		if t, ok := m.popovers[m.hovered].HoverLeave(popover.PointerMouse); ok {
			cmd = closeAfter(m.hovered, t)
		}
	}

	m.hovered = row
	if row >= 0 {
		p := m.popovers[row]
		p.HoverEnter(popover.PointerMouse)
		if p.IsOpen() {
			m.active = row
		}
	}
	m.syncActive()
	return cmd
}

// tap is the keyboard equivalent of pressing the row's posts cell: the press
// reaches the document first, then toggles the row.
func (m *TableModel) tap(row int) {
	if r, ok := m.postsCellRect(row); ok {
		m.doc.PointerDown(r.X, r.Y)
	}
	m.toggle(row)
}

func (m *TableModel) toggle(row int) {
	if row < 0 || row >= len(m.popovers) {
		return
	}
	p := m.popovers[row]
	if p.Toggle() && p.IsOpen() {
		m.active = row
	}
	m.syncActive()
}

func closeAfter(row int, t popover.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return closeTimerMsg{row: row, id: t.ID}
	})
}

// syncActive keeps the drawn panel on an open popover.
func (m *TableModel) syncActive() {
	if m.active >= 0 && m.active < len(m.popovers) && m.popovers[m.active].IsOpen() {
		return
	}
	m.active = -1
	for i, p := range m.popovers {
		if p.IsOpen() {
			m.active = i
			return
		}
	}
}

func (m *TableModel) applySearch(value string) tea.Cmd {
	term := strings.TrimSpace(value)
	if term == m.applied && !m.usersState.IsFailed() {
		return nil
	}
	m.applied = term
	m.logger.Debug("search changed", zap.String("search", term))
	return tea.Batch(m.fetchUsers(gql.CacheFirst), m.spinner.Tick)
}

func (m *TableModel) fetchAll(policy gql.FetchPolicy) tea.Cmd {
	return tea.Batch(m.fetchUsers(policy), m.fetchPosts(policy), m.spinner.Tick)
}

func (m *TableModel) fetchUsers(policy gql.FetchPolicy) tea.Cmd {
	gen := m.usersGen.Next()
	m.usersState = fetch.Pending[[]model.User](gen)
	client, search := m.client, m.applied
	return func() tea.Msg {
		users, err := query.Users(context.Background(), client, search, policy)
		return usersLoadedMsg{gen: gen, users: users, err: err}
	}
}

func (m *TableModel) fetchPosts(policy gql.FetchPolicy) tea.Cmd {
	gen := m.postsGen.Next()
	m.postsState = fetch.Pending[[]model.Post](gen)
	client := m.client
	return func() tea.Msg {
		list, err := query.Posts(context.Background(), client, policy)
		return postsLoadedMsg{gen: gen, posts: list, err: err}
	}
}

func (m *TableModel) loading() bool {
	return m.usersState.IsPending() || m.postsState.IsPending()
}

func (m *TableModel) gridVisible() bool {
	return m.grid != nil && m.usersState.IsReady() && m.postsState.IsReady()
}

// rebuild recomputes rows, cells and popovers once both fetches succeeded.
func (m *TableModel) rebuild() {
	if !m.usersState.IsReady() || !m.postsState.IsReady() {
		return
	}

	for _, p := range m.popovers {
		p.Dispose()
	}

	m.rows = m.usersState.Data
	m.index = posts.GroupByUser(m.postsState.Data)
	m.popovers = make([]*popover.Popover, len(m.rows))
	m.displays = make([][]format.Display, len(m.rows))

	headers := Headers(m.columns)

	cells := make([][]string, len(m.rows))
	for i, u := range m.rows {
		count := len(m.index.For(u.ID))
		m.popovers[i] = popover.New(count,
			popover.WithDocument(m.doc),
			popover.WithCloseDelay(m.closeDelay),
			popover.WithBounds(m.bounds(i)),
		)

		row := make([]string, 0, len(headers))
		disp := make([]format.Display, 0, len(m.columns))
		for _, c := range m.columns {
			d := m.format.Format(c.Value(u))
			disp = append(disp, d)
			row = append(row, d.Text)
		}
		m.displays[i] = disp
		cells[i] = append(row, m.format.Format(count).Text)
	}

	footer := Footer(m.format, len(headers), len(m.rows), m.index.TotalFor(m.rows))

	cursor := 0
	if m.grid != nil {
		cursor = m.grid.Cursor()
	}
	m.grid = NewGrid(headers, cells, footer)
	m.grid.SetHeight(m.layout.BodyRows())
	m.grid.SetCursor(cursor)

	m.active, m.hovered, m.panelRow = -1, -1, -1
	m.logger.Debug("grid rebuilt",
		zap.Int("users", len(m.rows)),
		zap.Int("posts", len(m.postsState.Data)),
		zap.Int("buckets", len(m.index)))
}

func (m *TableModel) postsColumn() int {
	return len(m.columns)
}

func (m *TableModel) postsCellRect(row int) (Rect, bool) {
	if !m.gridVisible() {
		return Rect{}, false
	}
	return m.grid.CellRect(0, GridTop, row, m.postsColumn())
}

func (m *TableModel) postsCellAt(x, y int) (int, bool) {
	if !m.gridVisible() {
		return 0, false
	}
	row, ok := m.grid.RowAt(GridTop, y)
	if !ok {
		return 0, false
	}
	if col, ok := m.grid.ColumnAt(0, x); !ok || col != m.postsColumn() {
		return 0, false
	}
	return row, true
}

// panelRect is the screen region of the drawn posts panel.
func (m *TableModel) panelRect() (Rect, bool) {
	if m.active < 0 || !m.gridVisible() {
		return Rect{}, false
	}
	view := m.activePanel()
	return Rect{
		X: m.grid.Width() + PopoverGap,
		Y: GridTop,
		W: lipgloss.Width(view),
		H: lipgloss.Height(view),
	}, true
}

// bounds is row's hit-test for outside-press detection: its posts cell plus,
// while drawn, its panel.
func (m *TableModel) bounds(row int) popover.Bounds {
	return func(x, y int) bool {
		if r, ok := m.postsCellRect(row); ok && r.Contains(x, y) {
			return true
		}
		if m.active == row {
			if r, ok := m.panelRect(); ok && r.Contains(x, y) {
				return true
			}
		}
		return false
	}
}

// regionAt returns the row whose trigger or drawn panel contains (x, y).
func (m *TableModel) regionAt(x, y int) int {
	if r, ok := m.panelRect(); ok && r.Contains(x, y) {
		return m.active
	}
	if row, ok := m.postsCellAt(x, y); ok {
		return row
	}
	return -1
}

func (m *TableModel) activePanel() string {
	if m.active < 0 || m.active >= len(m.rows) {
		return ""
	}
	if m.panelRow != m.active {
		m.panelView = m.panel.Render(m.index.For(m.rows[m.active].ID), m.layout.PopoverMaxHeight())
		m.panelRow = m.active
	}
	return m.panelView
}

// View renders the screen.
func (m *TableModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.titleView())
	sb.WriteString("\n")

	searchStyle := m.styles.Search
	if m.search.Focused() {
		searchStyle = m.styles.SearchFocused
	}
	sb.WriteString(searchStyle.Render(m.search.View()))
	sb.WriteString("\n\n")

	switch {
	case m.loading():
		sb.WriteString(m.spinner.View() + " " + m.styles.Muted.Render(loadingText))
	case m.failed():
		msg, _ := fetch.FirstError(m.usersState, m.postsState)
		sb.WriteString(m.styles.Error.Render("Error: " + msg))
	default:
		sb.WriteString(m.gridView())
	}

	sb.WriteString("\n")
	sb.WriteString(m.statusView())
	return sb.String()
}

func (m *TableModel) failed() bool {
	return m.usersState.IsFailed() || m.postsState.IsFailed()
}

func (m *TableModel) titleView() string {
	title := m.styles.Header.Render("usergrid")
	if m.endpoint != "" {
		title += m.styles.Muted.Render("  " + m.endpoint)
	}
	if s := m.refresh.String(); s != "" {
		title += m.styles.Muted.Render("  refresh " + s)
	}
	return title
}

func (m *TableModel) gridView() string {
	view := m.grid.View(m.styles, func(row, col int) (lipgloss.Style, bool) {
		if col != m.postsColumn() {
			return lipgloss.Style{}, false
		}
		if m.popovers[row].IsOpen() {
			return m.styles.PostsOpen, true
		}
		if m.popovers[row].Count() > 0 {
			return m.styles.PostsCell, true
		}
		return lipgloss.Style{}, false
	})

	if panel := m.activePanel(); panel != "" {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, strings.Repeat(" ", PopoverGap), panel)
	}
	return view
}

// statusView shows the cursor row's tooltips, or key help.
func (m *TableModel) statusView() string {
	if m.search.Focused() {
		return m.styles.Status.Render(searchHelp)
	}
	if m.gridVisible() && len(m.rows) > 0 {
		var tips []string
		for i, d := range m.displays[m.grid.Cursor()] {
			if d.HasTooltip() {
				tips = append(tips, fmt.Sprintf("%s: %s", m.columns[i].Title, d.Tooltip))
			}
		}
		if len(tips) > 0 {
			line := strings.Join(tips, " · ")
			if w := m.layout.TerminalWidth; w > 0 {
				line = format.Truncate(line, w-1).Text
			}
			return m.styles.Status.Render(line)
		}
	}
	return m.styles.Status.Render(helpText)
}
