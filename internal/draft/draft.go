package draft

import (
	"errors"
	"strings"

	"github.com/spf13/cast"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
)

// Field names accepted by SetField
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImageURL    = "image"
	FieldPrice       = "price"
	FieldStock       = "stock"
)

// ErrFrozen is returned by SetField while the confirmation gate holds the
// draft. Edits made after submission was requested would otherwise leak
// into the payload the user already reviewed.
var ErrFrozen = errors.New("draft is frozen awaiting confirmation")

// ErrUnknownField is returned by SetField for a field name it does not know
var ErrUnknownField = errors.New("unknown draft field")

// Draft is the mutable state of one product being created or edited.
// A draft is owned by a single form session: it is mutated field-by-field
// on user input, consumed at most once by a submission, and preserved on
// failure so the user can retry without re-entering data.
type Draft struct {
	Title         string
	Description   string
	ImageURL      string
	Price         float64
	StockQuantity int

	staging *StagingArea

	// fieldErrs flags fields whose last raw input failed to parse. The
	// stored value is left unchanged; Validate reports the flag so the
	// user sees the bad input alongside any other problems.
	fieldErrs map[string]string

	frozen bool
}

// New creates an empty scalar-only draft. Stock starts at 1, the minimum
// the form accepts.
func New() *Draft {
	return &Draft{
		StockQuantity: 1,
		fieldErrs:     make(map[string]string),
	}
}

// NewWithAssets creates a draft that stages image attachments and requires
// at least one before it validates. Previews are written to temp files.
func NewWithAssets() *Draft {
	d := New()
	d.staging = NewStagingArea()
	return d
}

// NewWithStaging creates an asset-bearing draft with a caller-provided
// staging area (tests inject a staging area with fake previews).
func NewWithStaging(staging *StagingArea) *Draft {
	d := New()
	d.staging = staging
	return d
}

// FromProduct creates a draft pre-populated from an existing record for
// the clone flow. The existing image stays a URL reference; newly staged
// assets replace it on submit, so the draft gets its own staging area.
func FromProduct(p *backoffice.Product) *Draft {
	d := NewWithAssets()
	d.Title = p.Title
	d.Description = p.Description
	d.ImageURL = p.Image
	d.Price = p.Price
	d.StockQuantity = p.StockQuantity
	return d
}

// Staging returns the draft's staging area, or nil for scalar-only drafts
func (d *Draft) Staging() *StagingArea {
	return d.staging
}

// AssetBearing reports whether this draft stages file attachments and must
// pass the confirmation gate before submission
func (d *Draft) AssetBearing() bool {
	return d.staging != nil
}

// Frozen reports whether the draft currently rejects edits
func (d *Draft) Frozen() bool {
	return d.frozen
}

// SetField applies one raw user input to the named field. Numeric fields
// are parsed leniently; on unparseable input the stored value is left
// unchanged and the field is flagged for Validate to report.
func (d *Draft) SetField(name, raw string) error {
	if d.frozen {
		return ErrFrozen
	}

	switch name {
	case FieldTitle:
		d.Title = raw
	case FieldDescription:
		d.Description = raw
	case FieldImageURL:
		d.ImageURL = strings.TrimSpace(raw)
	case FieldPrice:
		value, err := cast.ToFloat64E(strings.TrimSpace(raw))
		if err != nil {
			d.fieldErrs[FieldPrice] = "price must be a number"
			return backoffice.NewValidationError("price must be a number")
		}
		d.Price = value
		delete(d.fieldErrs, FieldPrice)
	case FieldStock:
		value, err := cast.ToIntE(strings.TrimSpace(raw))
		if err != nil {
			d.fieldErrs[FieldStock] = "stock quantity must be a whole number"
			return backoffice.NewValidationError("stock quantity must be a whole number")
		}
		d.StockQuantity = value
		delete(d.fieldErrs, FieldStock)
	default:
		return ErrUnknownField
	}

	return nil
}

// Validate checks the whole draft in one pass and returns every problem
// found, so the user sees all of them at once instead of one at a time.
// An empty slice means the draft is submittable.
func (d *Draft) Validate() []error {
	var errs []error

	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, backoffice.NewValidationError("title is required"))
	}

	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, backoffice.NewValidationError("description is required"))
	}

	if msg, flagged := d.fieldErrs[FieldPrice]; flagged {
		errs = append(errs, backoffice.NewValidationError(msg))
	} else if d.Price <= 0 {
		errs = append(errs, backoffice.NewValidationError("price must be greater than zero"))
	}

	if msg, flagged := d.fieldErrs[FieldStock]; flagged {
		errs = append(errs, backoffice.NewValidationError(msg))
	} else if d.StockQuantity < 1 {
		errs = append(errs, backoffice.NewValidationError("stock quantity must be at least 1"))
	}

	// A carried-over image URL satisfies the image requirement; a fresh
	// draft must stage at least one file
	if d.staging != nil && d.staging.Count() == 0 && strings.TrimSpace(d.ImageURL) == "" {
		errs = append(errs, backoffice.NewValidationError("at least one image must be staged"))
	}

	return errs
}

// Discard ends the form session, releasing every staged preview. Safe to
// call on any draft, any number of times; the teardown path must never
// depend on which removal calls already ran.
func (d *Draft) Discard() {
	d.frozen = false
	if d.staging != nil {
		d.staging.Clear()
	}
}

// freeze blocks field edits. Called by the gate when the draft enters
// AwaitingConfirmation.
func (d *Draft) freeze() {
	d.frozen = true
}

// unfreeze re-enables field edits
func (d *Draft) unfreeze() {
	d.frozen = false
}

// FormatValidationErrors joins validation messages with line breaks for
// display in the form's error area.
func FormatValidationErrors(errs []error) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		var apiErr *backoffice.APIError
		if errors.As(err, &apiErr) {
			messages = append(messages, apiErr.Message)
		} else {
			messages = append(messages, err.Error())
		}
	}
	return strings.Join(messages, "\n")
}
