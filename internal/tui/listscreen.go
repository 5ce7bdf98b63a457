package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
	"github.com/farah-rezgui/ecume-admin/internal/ui"
)

// EntityKind identifies which collection a list screen shows
type EntityKind string

const (
	KindProducts EntityKind = "products"
	KindUsers    EntityKind = "users"
	KindClients  EntityKind = "clients"
	KindOrders   EntityKind = "orders"
)

// Title returns the screen heading for the entity kind
func (k EntityKind) Title() string {
	switch k {
	case KindProducts:
		return "Products"
	case KindUsers:
		return "Users"
	case KindClients:
		return "Clients"
	case KindOrders:
		return "Orders"
	default:
		return string(k)
	}
}

// ListState is the list screen's fetch state. The three states are
// mutually exclusive: a failed refetch shows the error, never stale rows.
type ListState int

const (
	ListLoading ListState = iota
	ListFailed
	ListLoaded
)

// Messages for async fetches
type listLoadedMsg struct {
	kind     EntityKind
	headers  []string
	rows     [][]string
	products []backoffice.Product
}

type listFailedMsg struct {
	kind EntityKind
	err  error
}

// ListModel is one entity collection screen. Every mount refetches the
// whole collection; there is no pagination and no cache.
type ListModel struct {
	Kind   EntityKind
	Client *backoffice.Client

	State ListState
	Err   error

	Headers []string
	Rows    [][]string

	// Products keeps the decoded records so the form screen can
	// pre-populate an edit draft. Other kinds only need display rows.
	Products []backoffice.Product

	Cursor  int
	Spinner spinner.Model
	Notice  string

	Width  int
	Height int

	BackRequested bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewListModel creates a list screen for the given entity kind
func NewListModel(kind EntityKind, client *backoffice.Client) ListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	ctx, cancel := context.WithCancel(context.Background())

	return ListModel{
		Kind:    kind,
		Client:  client,
		State:   ListLoading,
		Spinner: s,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Init starts the spinner and the initial fetch
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, fetchListCmd(m.ctx, m.Client, m.Kind))
}

// Close cancels the screen's in-flight requests. Called by the app
// coordinator when the screen is left.
func (m ListModel) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Update handles messages for the list screen
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case spinner.TickMsg:
		if m.State == ListLoading {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			return m, cmd
		}

	case listLoadedMsg:
		if msg.kind != m.Kind {
			return m, nil
		}
		m.State = ListLoaded
		m.Err = nil
		m.Headers = msg.headers
		m.Rows = msg.rows
		m.Products = msg.products
		if m.Cursor >= len(m.Rows) {
			m.Cursor = 0
		}

	case listFailedMsg:
		if msg.kind != m.Kind {
			return m, nil
		}
		m.State = ListFailed
		m.Err = msg.err
		m.Rows = nil
		m.Products = nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey handles keyboard input
func (m ListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Notice = ""

	switch msg.String() {
	case "up", "k":
		if m.State == ListLoaded && m.Cursor > 0 {
			m.Cursor--
		}

	case "down", "j":
		if m.State == ListLoaded && m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}

	case "r":
		return m.refresh()

	case "d":
		// The product grid shows a delete action but the API has no
		// delete endpoint wired yet. Say so instead of pretending.
		if m.Kind == KindProducts && m.State == ListLoaded {
			m.Notice = "Deleting products is not available yet"
		}

	case "esc":
		m.BackRequested = true
	}

	return m, nil
}

// refresh discards current rows and refetches the collection
func (m ListModel) refresh() (tea.Model, tea.Cmd) {
	m.State = ListLoading
	m.Err = nil
	m.Rows = nil
	m.Products = nil
	return m, tea.Batch(m.Spinner.Tick, fetchListCmd(m.ctx, m.Client, m.Kind))
}

// IsBackRequested reports whether the user asked to leave this screen
func (m ListModel) IsBackRequested() bool {
	return m.BackRequested
}

// SelectedProduct returns the product under the cursor, or nil
func (m ListModel) SelectedProduct() *backoffice.Product {
	if m.Kind != KindProducts || m.State != ListLoaded {
		return nil
	}
	if m.Cursor < 0 || m.Cursor >= len(m.Products) {
		return nil
	}
	return &m.Products[m.Cursor]
}

// View renders the list screen content (without the app container; the
// coordinator wraps it)
func (m ListModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle(m.Kind.Title()))
	b.WriteString("\n")

	switch m.State {
	case ListLoading:
		b.WriteString(fmt.Sprintf("\n  %s Loading %s...\n", m.Spinner.View(), m.Kind))

	case ListFailed:
		b.WriteString("\n")
		b.WriteString(RenderError(backoffice.ShortMessage(m.Err)))
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("  Press r to retry"))
		b.WriteString("\n")

	case ListLoaded:
		if len(m.Rows) == 0 {
			b.WriteString("\n")
			b.WriteString(SubtitleStyle.Render("  No " + string(m.Kind) + " yet."))
			b.WriteString("\n")
		} else {
			b.WriteString(m.renderTable())
			b.WriteString("\n")
			b.WriteString(SubtitleStyle.Render(fmt.Sprintf("  %d %s", len(m.Rows), m.Kind)))
			b.WriteString("\n")
		}
	}

	if m.Notice != "" {
		b.WriteString("\n")
		b.WriteString(NoticeStyle.Render("  " + m.Notice))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTable renders the loaded rows with the cursor row highlighted
func (m ListModel) renderTable() string {
	widths := make([]int, len(m.Headers))
	for i, header := range m.Headers {
		widths[i] = len(header)
	}
	for _, row := range m.Rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var b strings.Builder

	headerCells := make([]string, len(m.Headers))
	for i, header := range m.Headers {
		headerCells[i] = padCell(header, widths[i])
	}
	b.WriteString(TableHeaderStyle.Render("    " + strings.Join(headerCells, "  ")))
	b.WriteString("\n")

	for rowIdx, row := range m.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = padCell(cell, widths[i])
		}
		line := strings.Join(cells, "  ")
		if rowIdx == m.Cursor {
			b.WriteString(SelectedRowStyle.Render("  → " + line))
		} else {
			b.WriteString(RowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// padCell right-pads a table cell to the column width
func padCell(s string, width int) string {
	if gap := width - len([]rune(s)); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// fetchListCmd fetches one collection and maps it to display rows
func fetchListCmd(ctx context.Context, client *backoffice.Client, kind EntityKind) tea.Cmd {
	return func() tea.Msg {
		switch kind {
		case KindProducts:
			products, err := client.ListProducts(ctx)
			if err != nil {
				return listFailedMsg{kind: kind, err: err}
			}
			return listLoadedMsg{
				kind:     kind,
				headers:  []string{"TITLE", "PRICE", "STOCK", "CREATED"},
				rows:     productRows(products),
				products: products,
			}

		case KindUsers:
			users, err := client.ListUsers(ctx)
			if err != nil {
				return listFailedMsg{kind: kind, err: err}
			}
			return listLoadedMsg{
				kind:    kind,
				headers: []string{"USERNAME", "EMAIL", "ROLE", "STATUS"},
				rows:    userRows(users),
			}

		case KindClients:
			clients, err := client.ListClients(ctx)
			if err != nil {
				return listFailedMsg{kind: kind, err: err}
			}
			return listLoadedMsg{
				kind:    kind,
				headers: []string{"NAME", "EMAIL", "PHONE"},
				rows:    clientRows(clients),
			}

		case KindOrders:
			orders, err := client.ListOrders(ctx)
			if err != nil {
				return listFailedMsg{kind: kind, err: err}
			}
			return listLoadedMsg{
				kind:    kind,
				headers: []string{"ORDER", "CLIENT", "TOTAL", "STATUS"},
				rows:    orderRows(orders),
			}
		}

		return listFailedMsg{kind: kind, err: fmt.Errorf("unknown entity kind %q", kind)}
	}
}

// productRows maps products to display rows
func productRows(products []backoffice.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.Title,
			ui.FormatPrice(p.Price),
			fmt.Sprintf("%d", p.StockQuantity),
			ui.FormatDate(p.CreatedAt),
		})
	}
	return rows
}

// userRows maps users to display rows
func userRows(users []backoffice.User) [][]string {
	rows := make([][]string, 0, len(users))
	for i := range users {
		u := &users[i]
		rows = append(rows, []string{u.Username, u.Email, u.RoleLabel(), u.StatusLabel()})
	}
	return rows
}

// clientRows maps customers to display rows
func clientRows(clients []backoffice.Customer) [][]string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{c.Name, c.Email, c.Phone})
	}
	return rows
}

// orderRows maps orders to display rows
func orderRows(orders []backoffice.Order) [][]string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{o.ID, o.ClientID, ui.FormatPrice(o.Total), o.Status})
	}
	return rows
}
