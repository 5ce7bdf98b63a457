package draft

import (
	"strings"
	"testing"
)

func TestGateSubmit_ScalarDraftPassesThrough(t *testing.T) {
	d := validScalarDraft()
	gate := NewConfirmationGate(d)

	if gate.Required() {
		t.Error("Required() = true for a scalar-only draft")
	}

	payload, errs := gate.Submit()
	if len(errs) > 0 {
		t.Fatalf("Submit() errors = %v", errs)
	}
	if payload == nil {
		t.Fatal("Submit() payload = nil, want immediate payload")
	}
	if gate.State() != GateIdle {
		t.Errorf("State() = %v, want GateIdle", gate.State())
	}
	if d.Frozen() {
		t.Error("scalar submission must not freeze the draft")
	}
}

func TestGateSubmit_InvalidDraftRefused(t *testing.T) {
	d := NewWithStaging(newFakeStaging())
	gate := NewConfirmationGate(d)

	payload, errs := gate.Submit()
	if len(errs) == 0 {
		t.Fatal("Submit() on an invalid draft should return errors")
	}
	if payload != nil {
		t.Error("Submit() on an invalid draft should not build a payload")
	}
	if gate.State() != GateIdle {
		t.Errorf("State() = %v, want GateIdle after refused submit", gate.State())
	}
	if d.Frozen() {
		t.Error("refused submit must not freeze the draft")
	}
}

func TestGateSubmit_AssetBearingAwaitsConfirmation(t *testing.T) {
	d := NewWithStaging(newFakeStaging())
	d.Title = "Chair"
	d.Description = "A wooden chair"
	d.Price = 49.99
	d.StockQuantity = 5
	if err := d.Staging().AddFiles([]FileSelection{jpegSelection("chair.jpg")}); err != nil {
		t.Fatalf("AddFiles() error = %v", err)
	}

	gate := NewConfirmationGate(d)
	if !gate.Required() {
		t.Error("Required() = false for an asset-bearing draft")
	}

	payload, errs := gate.Submit()
	if len(errs) > 0 {
		t.Fatalf("Submit() errors = %v", errs)
	}
	if payload != nil {
		t.Error("asset-bearing Submit() should hold the payload, not return it")
	}
	if gate.State() != GateAwaitingConfirmation {
		t.Errorf("State() = %v, want GateAwaitingConfirmation", gate.State())
	}

	// The draft is frozen while the gate holds its payload
	if !d.Frozen() {
		t.Error("Frozen() = false while awaiting confirmation")
	}
	if err := d.SetField(FieldTitle, "Different Chair"); err != ErrFrozen {
		t.Errorf("SetField() on frozen draft error = %v, want ErrFrozen", err)
	}
	if d.Title != "Chair" {
		t.Errorf("Title = %q, frozen draft must not change", d.Title)
	}

	// A second Submit while awaiting is rejected
	if _, errs := gate.Submit(); len(errs) == 0 {
		t.Error("Submit() while awaiting confirmation should fail")
	}
}

func TestGateConfirm_ReleasesSnapshot(t *testing.T) {
	d := NewWithStaging(newFakeStaging())
	d.Title = "Chair"
	d.Description = "A wooden chair"
	d.Price = 49.99
	d.StockQuantity = 5
	if err := d.Staging().AddFiles([]FileSelection{jpegSelection("chair.jpg")}); err != nil {
		t.Fatalf("AddFiles() error = %v", err)
	}

	gate := NewConfirmationGate(d)
	if _, errs := gate.Submit(); len(errs) > 0 {
		t.Fatalf("Submit() errors = %v", errs)
	}

	payload, err := gate.Confirm()
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if payload == nil || !payload.IsMultipart() {
		t.Errorf("Confirm() payload = %v, want the held multipart payload", payload)
	}
	if gate.State() != GateIdle {
		t.Errorf("State() after Confirm = %v, want GateIdle", gate.State())
	}
	if d.Frozen() {
		t.Error("draft should thaw after Confirm")
	}

	// Confirming again without a new Submit is rejected
	if _, err := gate.Confirm(); err != ErrNotAwaiting {
		t.Errorf("second Confirm() error = %v, want ErrNotAwaiting", err)
	}
}

func TestGateCancel_NoSideEffects(t *testing.T) {
	d := NewWithStaging(newFakeStaging())
	d.Title = "Chair"
	d.Description = "A wooden chair"
	d.Price = 49.99
	d.StockQuantity = 5
	if err := d.Staging().AddFiles([]FileSelection{jpegSelection("chair.jpg")}); err != nil {
		t.Fatalf("AddFiles() error = %v", err)
	}

	gate := NewConfirmationGate(d)
	if _, errs := gate.Submit(); len(errs) > 0 {
		t.Fatalf("Submit() errors = %v", errs)
	}

	if err := gate.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if gate.State() != GateIdle {
		t.Errorf("State() after Cancel = %v, want GateIdle", gate.State())
	}

	// Draft and staged files survive intact, edits work again
	if d.Staging().Count() != 1 {
		t.Errorf("staged count after Cancel = %d, want 1", d.Staging().Count())
	}
	if err := d.SetField(FieldTitle, "Armchair"); err != nil {
		t.Errorf("SetField() after Cancel error = %v", err)
	}
	if d.Title != "Armchair" {
		t.Errorf("Title = %q, want Armchair", d.Title)
	}

	if err := gate.Cancel(); err != ErrNotAwaiting {
		t.Errorf("Cancel() while idle error = %v, want ErrNotAwaiting", err)
	}
}

func TestGateConfirm_PayloadIsSnapshotOfSubmitTime(t *testing.T) {
	d := NewWithStaging(newFakeStaging())
	d.Title = "Chair"
	d.Description = "A wooden chair"
	d.Price = 49.99
	d.StockQuantity = 5
	if err := d.Staging().AddFiles([]FileSelection{jpegSelection("chair.jpg")}); err != nil {
		t.Fatalf("AddFiles() error = %v", err)
	}

	gate := NewConfirmationGate(d)
	if _, errs := gate.Submit(); len(errs) > 0 {
		t.Fatalf("Submit() errors = %v", errs)
	}

	payload, err := gate.Confirm()
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	// The released payload carries the values reviewed at submit time
	body := string(payload.Body)
	for _, fragment := range []string{"Chair", "A wooden chair", "49.99", "chair.jpg"} {
		if !strings.Contains(body, fragment) {
			t.Errorf("confirmed payload missing %q", fragment)
		}
	}
}
