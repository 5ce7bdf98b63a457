package draft

import (
	"strings"
	"testing"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
)

// validScalarDraft returns a draft that passes validation
func validScalarDraft() *Draft {
	d := New()
	d.Title = "Chair"
	d.Description = "A wooden chair"
	d.Price = 49.99
	d.StockQuantity = 5
	return d
}

func hasMessage(errs []error, fragment string) bool {
	for _, err := range errs {
		if strings.Contains(err.Error(), fragment) {
			return true
		}
	}
	return false
}

func TestValidate_TitleRequired(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"empty", ""},
		{"spaces only", "   "},
		{"tabs and newlines", "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validScalarDraft()
			d.Title = tt.title

			errs := d.Validate()
			if !hasMessage(errs, "title is required") {
				t.Errorf("Validate() = %v, want a required-title error", errs)
			}
		})
	}
}

func TestValidate_StockBoundary(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		wantErr bool
	}{
		{"zero fails", 0, true},
		{"negative fails", -3, true},
		{"boundary one passes", 1, false},
		{"above boundary passes", 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validScalarDraft()
			d.StockQuantity = tt.stock

			errs := d.Validate()
			got := hasMessage(errs, "stock quantity must be at least 1")
			if got != tt.wantErr {
				t.Errorf("stock=%d: stock error = %v, want %v", tt.stock, got, tt.wantErr)
			}
		})
	}
}

func TestValidate_Price(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		wantErr bool
	}{
		{"zero fails", 0, true},
		{"negative fails", -1.50, true},
		{"positive passes", 0.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validScalarDraft()
			d.Price = tt.price

			errs := d.Validate()
			got := hasMessage(errs, "price must be greater than zero")
			if got != tt.wantErr {
				t.Errorf("price=%v: price error = %v, want %v", tt.price, got, tt.wantErr)
			}
		})
	}
}

func TestSetField_NonNumericPriceFlagsField(t *testing.T) {
	d := validScalarDraft()

	if err := d.SetField(FieldPrice, "cheap"); err == nil {
		t.Fatal("SetField(price, \"cheap\") should return an error")
	}

	// The stored value is unchanged
	if d.Price != 49.99 {
		t.Errorf("Price = %v, want unchanged 49.99", d.Price)
	}

	// The flag surfaces through Validate
	errs := d.Validate()
	if !hasMessage(errs, "price must be a number") {
		t.Errorf("Validate() = %v, want a price parse error", errs)
	}

	// A later valid input clears the flag
	if err := d.SetField(FieldPrice, "12.50"); err != nil {
		t.Fatalf("SetField(price, \"12.50\") error = %v", err)
	}
	if d.Price != 12.50 {
		t.Errorf("Price = %v, want 12.50", d.Price)
	}
	if errs := d.Validate(); len(errs) != 0 {
		t.Errorf("Validate() after fix = %v, want empty", errs)
	}
}

func TestSetField_NonNumericStockFlagsField(t *testing.T) {
	d := validScalarDraft()

	if err := d.SetField(FieldStock, "many"); err == nil {
		t.Fatal("SetField(stock, \"many\") should return an error")
	}
	if d.StockQuantity != 5 {
		t.Errorf("StockQuantity = %v, want unchanged 5", d.StockQuantity)
	}
	if errs := d.Validate(); !hasMessage(errs, "stock quantity must be a whole number") {
		t.Errorf("Validate() = %v, want a stock parse error", errs)
	}
}

func TestSetField_UnknownField(t *testing.T) {
	d := New()
	if err := d.SetField("color", "red"); err != ErrUnknownField {
		t.Errorf("SetField(color) error = %v, want ErrUnknownField", err)
	}
}

func TestValidate_AccumulatesAllErrors(t *testing.T) {
	d := New()
	d.StockQuantity = 0
	// Empty title, empty description, zero price, zero stock: four problems
	errs := d.Validate()
	if len(errs) != 4 {
		t.Fatalf("Validate() returned %d errors, want 4: %v", len(errs), errs)
	}

	for _, err := range errs {
		if !backoffice.IsValidationError(err) {
			t.Errorf("Validate() returned non-validation error %v", err)
		}
	}
}

func TestValidate_AssetBearingRequiresAsset(t *testing.T) {
	d := NewWithStaging(newFakeStaging())
	d.Title = "Chair"
	d.Description = "A wooden chair"
	d.Price = 49.99
	d.StockQuantity = 5

	if errs := d.Validate(); !hasMessage(errs, "at least one image") {
		t.Errorf("Validate() with no assets = %v, want staged-asset error", errs)
	}

	if err := d.Staging().AddFiles([]FileSelection{jpegSelection("chair.jpg")}); err != nil {
		t.Fatalf("AddFiles() error = %v", err)
	}
	if errs := d.Validate(); len(errs) != 0 {
		t.Errorf("Validate() with one asset = %v, want empty", errs)
	}

	// Removing the only asset returns the draft to the failing state
	if err := d.Staging().RemoveAsset(0); err != nil {
		t.Fatalf("RemoveAsset() error = %v", err)
	}
	if errs := d.Validate(); !hasMessage(errs, "at least one image") {
		t.Errorf("Validate() after removal = %v, want staged-asset error", errs)
	}
}

func TestFromProduct(t *testing.T) {
	p := &backoffice.Product{
		Title:         "Lamp",
		Description:   "Desk lamp",
		Image:         "http://cdn.example.com/lamp.jpg",
		Price:         19.99,
		StockQuantity: 3,
	}

	d := FromProduct(p)
	if d.Title != "Lamp" || d.Description != "Desk lamp" || d.Price != 19.99 || d.StockQuantity != 3 {
		t.Errorf("FromProduct() = %+v, fields not carried over", d)
	}
	if d.ImageURL != "http://cdn.example.com/lamp.jpg" {
		t.Errorf("ImageURL = %v", d.ImageURL)
	}
	if errs := d.Validate(); len(errs) != 0 {
		t.Errorf("Validate() on prepopulated draft = %v, want empty", errs)
	}
}

func TestFormatValidationErrors_JoinsWithLineBreaks(t *testing.T) {
	d := New()
	d.StockQuantity = 0
	message := FormatValidationErrors(d.Validate())

	lines := strings.Split(message, "\n")
	if len(lines) != 4 {
		t.Errorf("FormatValidationErrors() = %q, want 4 lines", message)
	}
	if strings.Contains(message, "Validation Error:") {
		t.Errorf("FormatValidationErrors() should show bare messages, got %q", message)
	}
}
