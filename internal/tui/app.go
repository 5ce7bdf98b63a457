package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenHome     Screen = "home"
	ScreenProducts Screen = "products"
	ScreenUsers    Screen = "users"
	ScreenClients  Screen = "clients"
	ScreenOrders   Screen = "orders"
	ScreenForm     Screen = "form"
)

// summaryLoadedMsg carries the home screen collection counts
type summaryLoadedMsg struct {
	summary *backoffice.Summary
	err     error
}

// homeMenuEntry is one destination on the home screen
type homeMenuEntry struct {
	label  string
	screen Screen
}

var homeMenu = []homeMenuEntry{
	{"Products", ScreenProducts},
	{"Users", ScreenUsers},
	{"Clients", ScreenClients},
	{"Orders", ScreenOrders},
}

// AppModel is the top-level coordinator that owns the active screen and
// the shared API client. Screens hand control back through their
// BackRequested flags; the coordinator closes a screen's context before
// leaving it so no orphaned request can write into a dead view.
type AppModel struct {
	Client  *backoffice.Client
	Profile string

	CurrentScreen Screen

	ListModel ListModel
	FormModel FormModel

	// Home screen state
	MenuCursor  int
	Summary     *backoffice.Summary
	SummaryErr  error
	Spinner     spinner.Model
	LoadingHome bool

	// StatusLine shows transient feedback after returning from a screen
	StatusLine string

	Width  int
	Height int
}

// NewAppModel creates the application model
func NewAppModel(client *backoffice.Client, profile string) AppModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return AppModel{
		Client:        client,
		Profile:       profile,
		CurrentScreen: ScreenHome,
		Spinner:       s,
		LoadingHome:   true,
	}
}

// Init starts the home screen summary fetch
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, fetchSummaryCmd(m.Client))
}

// fetchSummaryCmd fetches the dashboard counts off the UI goroutine
func fetchSummaryCmd(client *backoffice.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		summary, err := client.FetchSummary(ctx)
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

// Update handles all messages and routes them to the active screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ListModel.Width = msg.Width
		m.ListModel.Height = msg.Height
		m.FormModel.Width = msg.Width
		m.FormModel.Height = msg.Height
		if m.CurrentScreen == ScreenHome {
			return m, nil
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closeCurrentScreen()
			return m, tea.Quit
		}

	case summaryLoadedMsg:
		m.LoadingHome = false
		m.Summary = msg.summary
		m.SummaryErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.CurrentScreen == ScreenHome && m.LoadingHome {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			return m, cmd
		}
	}

	switch m.CurrentScreen {
	case ScreenHome:
		return m.updateHome(msg)
	case ScreenForm:
		return m.updateFormScreen(msg)
	default:
		return m.updateListScreen(msg)
	}
}

// updateHome handles the home menu
func (m AppModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.MenuCursor > 0 {
			m.MenuCursor--
		}
	case "down", "j":
		if m.MenuCursor < len(homeMenu)-1 {
			m.MenuCursor++
		}
	case "enter":
		return m.openList(homeMenu[m.MenuCursor].screen)
	case "r":
		m.LoadingHome = true
		m.SummaryErr = nil
		return m, tea.Batch(m.Spinner.Tick, fetchSummaryCmd(m.Client))
	case "q", "esc":
		return m, tea.Quit
	}

	return m, nil
}

// updateListScreen routes messages to the active list screen
func (m AppModel) updateListScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	// List-to-form transitions are handled here, before the list sees
	// the keystroke, so the list model stays navigation-only
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.CurrentScreen == ScreenProducts {
		switch keyMsg.String() {
		case "n":
			return m.openForm(NewFormModel(m.Client))
		case "c":
			if p := m.ListModel.SelectedProduct(); p != nil {
				return m.openForm(NewFormModelFromProduct(m.Client, p))
			}
			return m, nil
		}
	}

	updated, cmd := m.ListModel.Update(msg)
	m.ListModel = updated.(ListModel)

	if m.ListModel.IsBackRequested() {
		m.ListModel.Close()
		m.CurrentScreen = ScreenHome
		m.LoadingHome = true
		return m, tea.Batch(m.Spinner.Tick, fetchSummaryCmd(m.Client))
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "q" {
		m.ListModel.Close()
		return m, tea.Quit
	}

	return m, cmd
}

// updateFormScreen routes messages to the form screen
func (m AppModel) updateFormScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.FormModel.Update(msg)
	m.FormModel = updated.(FormModel)

	// Navigate away only after a confirmed success; the refreshed list
	// is the proof the record landed
	if m.FormModel.Succeeded {
		m.StatusLine = fmt.Sprintf("Created %q", m.FormModel.CreatedTitle)
		m.FormModel.Close()
		return m.openList(ScreenProducts)
	}

	if m.FormModel.IsBackRequested() {
		m.FormModel.Close()
		return m.openList(ScreenProducts)
	}

	return m, cmd
}

// openList transitions to a list screen and starts its fetch
func (m AppModel) openList(screen Screen) (tea.Model, tea.Cmd) {
	kind := map[Screen]EntityKind{
		ScreenProducts: KindProducts,
		ScreenUsers:    KindUsers,
		ScreenClients:  KindClients,
		ScreenOrders:   KindOrders,
	}[screen]

	m.CurrentScreen = screen
	m.ListModel = NewListModel(kind, m.Client)
	m.ListModel.Width = m.Width
	m.ListModel.Height = m.Height
	return m, m.ListModel.Init()
}

// openForm transitions from the product list to a form screen
func (m AppModel) openForm(form FormModel) (tea.Model, tea.Cmd) {
	m.ListModel.Close()
	m.StatusLine = ""
	m.CurrentScreen = ScreenForm
	m.FormModel = form
	m.FormModel.Width = m.Width
	m.FormModel.Height = m.Height
	return m, m.FormModel.Init()
}

// closeCurrentScreen releases whatever the active screen holds
func (m *AppModel) closeCurrentScreen() {
	switch m.CurrentScreen {
	case ScreenForm:
		m.FormModel.Close()
	case ScreenProducts, ScreenUsers, ScreenClients, ScreenOrders:
		m.ListModel.Close()
	}
}

// View renders the current screen inside the application container
func (m AppModel) View() string {
	var content, help string

	switch m.CurrentScreen {
	case ScreenHome:
		content = m.renderHome()
		help = "↑/↓ navigate • enter open • r refresh • q quit"

	case ScreenForm:
		content = m.FormModel.View()
		help = "tab next field • enter attach/submit • ctrl+s submit • esc back"

	default:
		content = m.ListModel.View()
		help = "↑/↓ navigate • r refresh • esc back • q quit"
		if m.CurrentScreen == ScreenProducts {
			help = "↑/↓ navigate • n new • c clone • d delete • r refresh • esc back"
		}
		if m.StatusLine != "" {
			content += "\n" + SuccessStyle.Render("✓ "+m.StatusLine) + "\n"
		}
	}

	return RenderApplicationContainer(content, help, m.Profile, m.Width, m.Height)
}

// renderHome renders the dashboard home screen
func (m AppModel) renderHome() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Dashboard"))
	b.WriteString("\n")

	switch {
	case m.LoadingHome:
		b.WriteString(fmt.Sprintf("  %s Contacting the API...\n", m.Spinner.View()))

	case m.SummaryErr != nil:
		b.WriteString(RenderError(backoffice.ShortMessage(m.SummaryErr)))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("  Press r to retry"))
		b.WriteString("\n")

	case m.Summary != nil:
		counts := []struct {
			label string
			count int
		}{
			{"Products", m.Summary.Products},
			{"Users", m.Summary.Users},
			{"Clients", m.Summary.Clients},
			{"Orders", m.Summary.Orders},
		}
		for _, c := range counts {
			b.WriteString(SubtitleStyle.Render(fmt.Sprintf("  %-10s %d", c.label, c.count)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	for i, entry := range homeMenu {
		if i == m.MenuCursor {
			b.WriteString(SelectedMenuItemStyle.Render("→ " + entry.label))
		} else {
			b.WriteString(MenuItemStyle.Render("  " + entry.label))
		}
		b.WriteString("\n")
	}

	return b.String()
}
