package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
	"github.com/farah-rezgui/ecume-admin/internal/draft"
)

// filledForm returns a form whose inputs hold a valid product with one
// staged image
func filledForm(t *testing.T) FormModel {
	t.Helper()

	m := NewFormModel(backoffice.NewClient(""))
	m.Inputs[formFieldTitle].SetValue("Chair")
	m.Inputs[formFieldDescription].SetValue("A wooden chair")
	m.Inputs[formFieldPrice].SetValue("49.99")
	m.Inputs[formFieldStock].SetValue("5")

	err := m.Draft.Staging().AddFiles([]draft.FileSelection{
		{Name: "chair.jpg", MIME: "image/jpeg", Data: []byte("jpeg-bytes")},
	})
	if err != nil {
		t.Fatalf("AddFiles() error = %v", err)
	}

	t.Cleanup(m.Close)
	return m
}

func ctrlS() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyCtrlS}
}

func TestForm_InvalidSubmitShowsEveryProblem(t *testing.T) {
	m := NewFormModel(backoffice.NewClient(""))
	t.Cleanup(m.Close)
	m.Inputs[formFieldStock].SetValue("0")

	updated, _ := m.Update(ctrlS())
	m = updated.(FormModel)

	if m.Confirming || m.Submitting {
		t.Fatal("invalid draft must never reach confirmation or submission")
	}
	if m.ValidationMsg == "" {
		t.Fatal("ValidationMsg should carry the accumulated problems")
	}

	// Title, description, price, stock, and the missing image: all at once
	lines := strings.Split(m.ValidationMsg, "\n")
	if len(lines) != 5 {
		t.Errorf("got %d validation lines, want 5:\n%s", len(lines), m.ValidationMsg)
	}
}

func TestForm_NonNumericStockNeverSubmits(t *testing.T) {
	m := filledForm(t)
	m.Inputs[formFieldStock].SetValue("many")

	updated, _ := m.Update(ctrlS())
	m = updated.(FormModel)

	if m.Confirming || m.Submitting {
		t.Fatal("a flagged field must block submission")
	}
	if !strings.Contains(m.ValidationMsg, "whole number") {
		t.Errorf("ValidationMsg = %q, want the stock parse error", m.ValidationMsg)
	}
}

func TestForm_ValidSubmitPausesForConfirmation(t *testing.T) {
	m := filledForm(t)

	updated, _ := m.Update(ctrlS())
	m = updated.(FormModel)

	if !m.Confirming {
		t.Fatal("asset-bearing draft should pause on the review overlay")
	}
	if m.Submitting {
		t.Fatal("nothing ships before the user confirms")
	}
	if !m.Draft.Frozen() {
		t.Error("draft should be frozen while awaiting confirmation")
	}

	view := m.View()
	for _, fragment := range []string{"Review", "Chair", "49.99"} {
		if !strings.Contains(view, fragment) {
			t.Errorf("confirmation overlay missing %q", fragment)
		}
	}
}

func TestForm_CancelReturnsToEditing(t *testing.T) {
	m := filledForm(t)

	updated, _ := m.Update(ctrlS())
	m = updated.(FormModel)

	updated, _ = m.Update(keyPress("n"))
	m = updated.(FormModel)

	if m.Confirming {
		t.Fatal("cancel should leave the confirmation overlay")
	}
	if m.Draft.Frozen() {
		t.Error("draft should thaw after cancel")
	}
	if m.Draft.Staging().Count() != 1 {
		t.Error("cancel must not touch the staged files")
	}
}

func TestForm_ConfirmStartsSubmission(t *testing.T) {
	m := filledForm(t)

	updated, _ := m.Update(ctrlS())
	m = updated.(FormModel)

	updated, cmd := m.Update(keyPress("y"))
	m = updated.(FormModel)

	if !m.Submitting {
		t.Fatal("confirm should start the submission")
	}
	if cmd == nil {
		t.Fatal("confirm should schedule the submit command")
	}
}

func TestForm_SuccessNavigatesAway(t *testing.T) {
	m := filledForm(t)

	updated, _ := m.Update(ctrlS())
	m = updated.(FormModel)
	updated, _ = m.Update(keyPress("y"))
	m = updated.(FormModel)

	updated, _ = m.Update(submitCompleteMsg{
		result: &backoffice.SubmissionResult{Success: true, StatusCode: 201},
	})
	m = updated.(FormModel)

	if !m.Succeeded {
		t.Fatal("Succeeded should flip on a confirmed success")
	}
	if m.CreatedTitle != "Chair" {
		t.Errorf("CreatedTitle = %q", m.CreatedTitle)
	}
	if m.Draft.Staging().Count() != 0 {
		t.Error("success should release the staged previews")
	}
}

func TestForm_FailureKeepsEverything(t *testing.T) {
	m := filledForm(t)

	updated, _ := m.Update(ctrlS())
	m = updated.(FormModel)
	updated, _ = m.Update(keyPress("y"))
	m = updated.(FormModel)

	updated, _ = m.Update(submitCompleteMsg{
		result: &backoffice.SubmissionResult{
			Success:    false,
			StatusCode: 500,
			Err:        backoffice.ClassifyStatus(500, "db down"),
		},
	})
	m = updated.(FormModel)

	if m.Succeeded {
		t.Fatal("a failed submission must not count as success")
	}
	if m.SubmitError == nil {
		t.Fatal("SubmitError should carry the failure")
	}

	// The draft and staged files survive for a retry
	if m.Draft.Title != "Chair" || m.Draft.Staging().Count() != 1 {
		t.Error("failure must preserve the draft and staged files")
	}
	if m.Draft.Frozen() {
		t.Error("draft should be editable again after a failure")
	}

	view := m.View()
	if !strings.Contains(view, "db down") {
		t.Errorf("view missing the server's error message:\n%s", view)
	}
	if !strings.Contains(view, "preserved") {
		t.Errorf("view should tell the user their entries survived:\n%s", view)
	}
}

func TestForm_InputIgnoredWhileSubmitting(t *testing.T) {
	m := filledForm(t)

	updated, _ := m.Update(ctrlS())
	m = updated.(FormModel)
	updated, _ = m.Update(keyPress("y"))
	m = updated.(FormModel)

	updated, _ = m.Update(ctrlS())
	m = updated.(FormModel)

	if !m.Submitting {
		t.Error("keystrokes during submission must not change state")
	}
}

func TestForm_AttachRejectsDisallowedType(t *testing.T) {
	m := filledForm(t)

	err := m.Draft.Staging().AddFiles([]draft.FileSelection{
		{Name: "manual.pdf", MIME: "application/pdf", Data: []byte("%PDF")},
	})
	if err == nil {
		t.Fatal("PDF should be rejected")
	}
	if m.Draft.Staging().Count() != 1 {
		t.Error("rejected file must not be staged")
	}
}

func TestForm_CloneFromProductPrefills(t *testing.T) {
	p := &backoffice.Product{Title: "Lamp", Description: "Desk lamp", Price: 19.99, StockQuantity: 3}
	m := NewFormModelFromProduct(backoffice.NewClient(""), p)
	t.Cleanup(m.Close)

	if m.Inputs[formFieldTitle].Value() != "Lamp" {
		t.Errorf("title input = %q", m.Inputs[formFieldTitle].Value())
	}
	if m.Inputs[formFieldPrice].Value() != "19.99" {
		t.Errorf("price input = %q", m.Inputs[formFieldPrice].Value())
	}
	if m.Inputs[formFieldStock].Value() != "3" {
		t.Errorf("stock input = %q", m.Inputs[formFieldStock].Value())
	}
}
