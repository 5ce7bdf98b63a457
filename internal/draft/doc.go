// Package draft implements the client-side submission workflow for
// back-office entities: a mutable draft under user edit, file staging with
// scoped preview references, whole-pass validation, payload encoding, and
// the confirmation gate that sequences validate-confirm-submit.
//
// # Workflow
//
// A form session creates a Draft (empty, or from an existing record for
// edits), applies user input through SetField, and stages image files
// through the StagingArea. Pressing submit drives the ConfirmationGate:
//
//	gate := draft.NewConfirmationGate(d)
//	payload, errs := gate.Submit()
//	switch {
//	case len(errs) > 0:
//	    // show every validation problem at once
//	case payload != nil:
//	    // scalar-only draft: send it
//	default:
//	    // asset-bearing draft: show the confirmation step, then
//	    // gate.Confirm() or gate.Cancel()
//	}
//
// While the gate awaits confirmation the draft is frozen: the payload the
// user reviewed is byte-for-byte the payload that ships.
//
// # Preview References
//
// Every staged asset owns exactly one ephemeral preview reference.
// RemoveAsset releases its own; Draft.Discard and StagingArea.Clear release
// whatever remains, unconditionally, so no exit path from a form session
// can leak one. Release is idempotent.
//
// # Validation
//
// Validate inspects the whole draft in one pass and accumulates every
// problem instead of stopping at the first, so the user corrects the form
// in one round trip. FormatValidationErrors joins the messages with line
// breaks for display.
package draft
