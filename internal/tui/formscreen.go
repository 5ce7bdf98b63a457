package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
	"github.com/farah-rezgui/ecume-admin/internal/draft"
	"github.com/farah-rezgui/ecume-admin/internal/ui"
)

// Form field indices (focus order)
const (
	formFieldTitle = iota
	formFieldDescription
	formFieldPrice
	formFieldStock
	formFieldImagePath
	formFieldSubmit
	formFieldCount
)

// submitCompleteMsg carries the outcome of one submission attempt
type submitCompleteMsg struct {
	result *backoffice.SubmissionResult
}

// FormModel is the product creation screen. It owns one draft for the
// whole session: field edits, file staging, the confirmation step, and
// a single submission attempt. On failure the draft survives so the user
// retries without re-entering anything; the screen navigates away only
// after a confirmed success.
type FormModel struct {
	Client *backoffice.Client

	Draft *draft.Draft
	Gate  *draft.ConfirmationGate

	Inputs []textinput.Model
	Focus  int

	// ValidationMsg holds the accumulated validation problems from the
	// last submit attempt, one per line
	ValidationMsg string

	// Confirming is true while the gate holds a payload for review
	Confirming bool

	Submitting bool
	Spinner    spinner.Model

	// SubmitError is the failure from the last attempt, shown inline
	SubmitError *backoffice.APIError

	// Succeeded flips after a confirmed successful submission; the app
	// coordinator navigates back to the product list when it sees it
	Succeeded    bool
	CreatedTitle string

	Width  int
	Height int

	BackRequested bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewFormModel creates an empty product creation form
func NewFormModel(client *backoffice.Client) FormModel {
	return newFormModel(client, draft.NewWithAssets())
}

// NewFormModelFromProduct creates a form pre-populated from an existing
// record, for cloning a product into a new listing
func NewFormModelFromProduct(client *backoffice.Client, p *backoffice.Product) FormModel {
	d := draft.FromProduct(p)
	m := newFormModel(client, d)
	m.Inputs[formFieldTitle].SetValue(d.Title)
	m.Inputs[formFieldDescription].SetValue(d.Description)
	m.Inputs[formFieldPrice].SetValue(strconv.FormatFloat(d.Price, 'f', -1, 64))
	m.Inputs[formFieldStock].SetValue(strconv.Itoa(d.StockQuantity))
	return m
}

func newFormModel(client *backoffice.Client, d *draft.Draft) FormModel {
	title := textinput.New()
	title.Placeholder = "Product title"
	title.CharLimit = 120
	title.Width = 50
	title.Focus()

	description := textinput.New()
	description.Placeholder = "Short description"
	description.CharLimit = 500
	description.Width = 50

	price := textinput.New()
	price.Placeholder = "49.99"
	price.CharLimit = 12
	price.Width = 20

	stock := textinput.New()
	stock.Placeholder = "1"
	stock.CharLimit = 6
	stock.Width = 20

	imagePath := textinput.New()
	imagePath.Placeholder = "path/to/image.jpg (enter to attach)"
	imagePath.CharLimit = 255
	imagePath.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	ctx, cancel := context.WithCancel(context.Background())

	return FormModel{
		Client:  client,
		Draft:   d,
		Gate:    draft.NewConfirmationGate(d),
		Inputs:  []textinput.Model{title, description, price, stock, imagePath},
		Focus:   formFieldTitle,
		Spinner: s,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Init starts the cursor blink
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Close tears the form session down: cancels any in-flight submission
// and releases every staged preview, no matter how the screen was left.
func (m FormModel) Close() {
	if m.cancel != nil {
		m.cancel()
	}
	m.Draft.Discard()
}

// IsBackRequested reports whether the user asked to leave this screen
func (m FormModel) IsBackRequested() bool {
	return m.BackRequested
}

// Update handles messages for the form screen
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.Submitting {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case submitCompleteMsg:
		return m.handleSubmitComplete(msg)

	case tea.KeyMsg:
		if m.Submitting {
			// One attempt at a time; ignore input until it resolves
			return m, nil
		}
		if m.Confirming {
			return m.updateConfirmation(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

// updateForm handles input in normal editing mode
func (m FormModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.BackRequested = true
		return m, nil

	case "tab", "down":
		return m.moveFocus(1)

	case "shift+tab", "up":
		return m.moveFocus(-1)

	case "ctrl+u":
		if m.Draft.Staging().Count() > 0 {
			m.Draft.Staging().Clear()
			m.ValidationMsg = ""
		}
		return m, nil

	case "enter":
		switch m.Focus {
		case formFieldImagePath:
			return m.attachFile()
		case formFieldSubmit:
			return m.submit()
		default:
			return m.moveFocus(1)
		}

	case "ctrl+s":
		return m.submit()
	}

	// Route keystrokes to the focused input
	if m.Focus < len(m.Inputs) {
		var cmd tea.Cmd
		m.Inputs[m.Focus], cmd = m.Inputs[m.Focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateConfirmation handles input while the gate awaits confirmation
func (m FormModel) updateConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		payload, err := m.Gate.Confirm()
		if err != nil {
			m.Confirming = false
			return m, nil
		}
		m.Confirming = false
		m.Submitting = true
		m.SubmitError = nil
		return m, tea.Batch(m.Spinner.Tick, submitCmd(m.ctx, m.Client, payload))

	case "n", "esc":
		_ = m.Gate.Cancel()
		m.Confirming = false
		return m, nil
	}
	return m, nil
}

// moveFocus shifts input focus by delta, wrapping around
func (m FormModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.Focus = (m.Focus + delta + formFieldCount) % formFieldCount

	var cmd tea.Cmd
	for i := range m.Inputs {
		if i == m.Focus {
			cmd = m.Inputs[i].Focus()
		} else {
			m.Inputs[i].Blur()
		}
	}
	return m, cmd
}

// attachFile stages the file named in the image path input
func (m FormModel) attachFile() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.Inputs[formFieldImagePath].Value())
	if path == "" {
		return m, nil
	}

	selection, err := draft.SelectionFromFile(path)
	if err != nil {
		m.ValidationMsg = err.Error()
		return m, nil
	}

	if err := m.Draft.Staging().AddFiles([]draft.FileSelection{selection}); err != nil {
		m.ValidationMsg = backoffice.ShortMessage(err)
		return m, nil
	}

	m.Inputs[formFieldImagePath].SetValue("")
	m.ValidationMsg = ""
	return m, nil
}

// submit syncs the inputs into the draft and drives the gate
func (m FormModel) submit() (tea.Model, tea.Cmd) {
	m.syncDraft()
	m.SubmitError = nil

	payload, errs := m.Gate.Submit()
	if len(errs) > 0 {
		m.ValidationMsg = draft.FormatValidationErrors(errs)
		return m, nil
	}
	m.ValidationMsg = ""

	if payload != nil {
		// Scalar-only draft: no confirmation step
		m.Submitting = true
		return m, tea.Batch(m.Spinner.Tick, submitCmd(m.ctx, m.Client, payload))
	}

	m.Confirming = true
	return m, nil
}

// syncDraft copies the raw input values into the draft. Parse failures
// flag the field; the flag surfaces through Validate on submit.
func (m *FormModel) syncDraft() {
	_ = m.Draft.SetField(draft.FieldTitle, m.Inputs[formFieldTitle].Value())
	_ = m.Draft.SetField(draft.FieldDescription, m.Inputs[formFieldDescription].Value())
	_ = m.Draft.SetField(draft.FieldPrice, m.Inputs[formFieldPrice].Value())
	_ = m.Draft.SetField(draft.FieldStock, m.Inputs[formFieldStock].Value())
}

// handleSubmitComplete applies the submission outcome
func (m FormModel) handleSubmitComplete(msg submitCompleteMsg) (tea.Model, tea.Cmd) {
	m.Submitting = false

	if msg.result.Success {
		m.Succeeded = true
		m.CreatedTitle = m.Draft.Title
		m.Draft.Discard()
		return m, nil
	}

	// Failure: keep the draft and the staged files so the user can retry
	m.SubmitError = msg.result.Err
	return m, nil
}

// submitCmd posts the payload off the UI goroutine
func submitCmd(ctx context.Context, client *backoffice.Client, payload *backoffice.Payload) tea.Cmd {
	return func() tea.Msg {
		return submitCompleteMsg{result: client.CreateProduct(ctx, payload)}
	}
}

// View renders the form screen content
func (m FormModel) View() string {
	if m.Confirming {
		return m.renderConfirmation()
	}

	var b strings.Builder

	b.WriteString(RenderTitle("New Product"))
	b.WriteString("\n")

	b.WriteString(m.renderInput("Title", formFieldTitle))
	b.WriteString(m.renderInput("Description", formFieldDescription))
	b.WriteString(m.renderInput("Price", formFieldPrice))
	b.WriteString(m.renderInput("Stock", formFieldStock))
	b.WriteString(m.renderInput("Image", formFieldImagePath))

	b.WriteString("\n")
	b.WriteString(m.renderStagedAssets())

	b.WriteString("\n")
	if m.Focus == formFieldSubmit {
		b.WriteString(SelectedMenuItemStyle.Render("→ [ Submit ]"))
	} else {
		b.WriteString(MenuItemStyle.Render("  [ Submit ]"))
	}
	b.WriteString("\n")

	if m.Submitting {
		b.WriteString(fmt.Sprintf("\n  %s Submitting...\n", m.Spinner.View()))
	}

	if m.ValidationMsg != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(m.ValidationMsg, "\n") {
			b.WriteString(FieldErrorStyle.Render("  ✗ " + line))
			b.WriteString("\n")
		}
	}

	if m.SubmitError != nil {
		b.WriteString("\n")
		b.WriteString(RenderError(backoffice.ShortMessage(m.SubmitError)))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("  Your entries are preserved - fix and submit again"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderInput renders one labelled input line
func (m FormModel) renderInput(label string, field int) string {
	labelStyle := BlurredInputStyle
	if m.Focus == field {
		labelStyle = FocusedInputStyle
	}
	return fmt.Sprintf("  %s\n  %s\n", labelStyle.Render(label), m.Inputs[field].View())
}

// renderStagedAssets renders the staged file list
func (m FormModel) renderStagedAssets() string {
	assets := m.Draft.Staging().Assets()
	if len(assets) == 0 {
		return SubtitleStyle.Render("  No images attached yet (JPEG, PNG, or GIF)") + "\n"
	}

	var b strings.Builder
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("  %d image(s) attached (ctrl+u to clear):", len(assets))))
	b.WriteString("\n")
	for _, asset := range assets {
		b.WriteString(RowStyle.Render(fmt.Sprintf("  • %s (%s, %d bytes)", asset.Name, asset.MIME, asset.Size)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderConfirmation renders the pre-submission review overlay
func (m FormModel) renderConfirmation() string {
	var lines []string

	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render("⚠  Review before submitting")
	lines = append(lines, titleLine, "")

	details := []ui.Detail{
		{Key: "Title", Value: m.Draft.Title},
		{Key: "Description", Value: m.Draft.Description},
		{Key: "Price", Value: ui.FormatPrice(m.Draft.Price)},
		{Key: "Stock", Value: strconv.Itoa(m.Draft.StockQuantity)},
		{Key: "Images", Value: strconv.Itoa(m.Draft.Staging().Count())},
	}
	for _, detail := range details {
		key := lipgloss.NewStyle().Foreground(SubtleColor).Width(13).Render(detail.Key + ":")
		lines = append(lines, key+" "+detail.Value)
	}

	lines = append(lines, "", HelpStyle.Render("y/enter confirm • n/esc go back"))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Padding(1, 2).
		Width(SafeModalWidth(60, m.Width)).
		Render(strings.Join(lines, "\n"))

	return RenderModal(box, m.Width, m.Height)
}
