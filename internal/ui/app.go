package ui

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    catalog.CatalogFetcher
	Config    *config.Config
	ThemeName string
	PrefsPath string
	StartPath string // initial route; "/" when empty
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    catalog.CatalogFetcher
	config    *config.Config
	prefsPath string
	keys      keyMap

	// UI state
	theme   Theme
	route   Route
	width   int
	height  int
	ready   bool
	spinner spinner.Model

	// Lifetime of the mounted view; cancelled on unmount.
	viewCtx    context.Context
	viewCancel context.CancelFunc
	nextToken  state.Token

	// Per-view state
	list   listState
	detail detailState
	form   addState
	logs   logState

	// Overlays
	showHelp bool
	showLogs bool
}

// New creates a new Bubble Tea model. Nothing is mounted until Init's
// navigation message arrives.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Styles().AccentText

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		config:    opts.Config,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     theme,
		route:     ParseRoute(opts.StartPath),
		spinner:   sp,
		list:      newListState(),
		form:      newAddState(),
		logs:      newLogState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return navigateCmd(m.route)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampSelection()
		m.updateLogViewport()
		return m, nil

	case navigateMsg:
		cmd := m.navigate(msg.route)
		return m, cmd

	case booksLoadedMsg:
		m.handleBooksLoaded(msg)
		return m, nil

	case bookLoadedMsg:
		m.handleBookLoaded(msg)
		return m, nil

	case bookCreatedMsg:
		return m.handleBookCreated(msg)

	case logsLoadedMsg:
		m.handleLogsLoaded(msg)
		return m, nil

	case spinner.TickMsg:
		// Let the tick chain die once nothing is loading.
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// handleKey routes keyboard input. Focused text entry takes every key
// except ctrl+c, so letters typed into a field never trigger commands.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.unmount()
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	switch {
	case m.route.Kind == RouteAdd:
		return m.handleAddKey(msg)
	case m.route.Kind == RouteList && m.list.search.Focused():
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.unmount()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.ViewLog):
		m.showLogs = true
		m.updateLogViewport()
		return m, m.refreshLogs()
	}

	switch m.route.Kind {
	case RouteDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = m.theme.Styles().AccentText
	m.updateLogViewport()
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		log.Printf("ui: save theme failed: %v", err)
	}
}

// navigate unmounts the current view and mounts the one for r. Every mount
// starts its own fetch; nothing carries over from the previous visit.
func (m *Model) navigate(r Route) tea.Cmd {
	m.unmount()
	m.route = r
	m.showLogs = false

	ctx, cancel := context.WithCancel(m.ctx)
	m.viewCtx = ctx
	m.viewCancel = cancel

	switch r.Kind {
	case RouteDetail:
		return m.mountDetail(ctx, r.ID)
	case RouteAdd:
		return m.mountAdd()
	default:
		return m.mountList(ctx)
	}
}

// unmount disposes the mounted view. Results still in flight for it are
// discarded when they arrive.
func (m *Model) unmount() {
	if m.viewCancel != nil {
		m.viewCancel()
		m.viewCancel = nil
	}
	m.viewCtx = nil

	switch m.route.Kind {
	case RouteDetail:
		m.detail.token = 0
	case RouteAdd:
		m.form.token = 0
		m.form.submitting = false
	default:
		m.list.store.Dispose()
		m.list.search.Blur()
	}
}

// busy reports whether the mounted view is waiting on the catalog.
func (m Model) busy() bool {
	switch m.route.Kind {
	case RouteDetail:
		return m.detail.token != 0 && m.detail.phase == state.PhaseLoading
	case RouteAdd:
		return m.form.submitting
	default:
		return m.list.store.Phase() == state.PhaseLoading
	}
}

// takeToken issues a token for a detail or add request.
func (m *Model) takeToken() state.Token {
	m.nextToken++
	return m.nextToken
}

// baseURL is the catalog endpoint shown in the header.
func (m Model) baseURL() string {
	if m.config == nil {
		return ""
	}
	return m.config.BaseURL
}

// renderContent renders the area below the command bar.
func (m Model) renderContent() string {
	height := max(1, m.height-chromeLines)
	if m.showLogs {
		return m.renderLogs(height)
	}
	switch m.route.Kind {
	case RouteDetail:
		return m.renderDetail(height)
	case RouteAdd:
		return m.renderAdd(height)
	default:
		return m.renderList(height)
	}
}

// Messages

type navigateMsg struct {
	route Route
}

type booksLoadedMsg struct {
	token state.Token
	books []catalog.Book
	err   error
}

type bookLoadedMsg struct {
	token state.Token
	book  catalog.Book
	err   error
}

type bookCreatedMsg struct {
	token state.Token
	book  catalog.Book
	err   error
}

// Commands

var errNoClient = errors.New("no catalog client configured")

func navigateCmd(r Route) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{route: r}
	}
}

func fetchBooksCmd(ctx context.Context, client catalog.CatalogFetcher, token state.Token) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return booksLoadedMsg{token: token, err: errNoClient}
		}
		books, err := client.FetchAll(ctx)
		return booksLoadedMsg{token: token, books: books, err: err}
	}
}

func fetchBookCmd(ctx context.Context, client catalog.CatalogFetcher, token state.Token, id catalog.BookID) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return bookLoadedMsg{token: token, err: errNoClient}
		}
		book, err := client.FetchBook(ctx, id)
		return bookLoadedMsg{token: token, book: book, err: err}
	}
}

func createBookCmd(ctx context.Context, client catalog.CatalogFetcher, token state.Token, draft catalog.Draft) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return bookCreatedMsg{token: token, err: errNoClient}
		}
		book, err := client.Create(ctx, draft)
		return bookCreatedMsg{token: token, book: book, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.unmount()
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
