package ui

import (
	"strings"
	"testing"
	"time"
)

func TestTable_Render(t *testing.T) {
	output := NewTable("TITLE", "PRICE", "STOCK").
		AddRow("Chair", "49.99", "5").
		AddRow("Lamp", "19.99", "0").
		Render()

	for _, fragment := range []string{"TITLE", "PRICE", "STOCK", "Chair", "Lamp", "49.99"} {
		if !strings.Contains(output, fragment) {
			t.Errorf("table missing %q:\n%s", fragment, output)
		}
	}

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	// Header, divider, two rows
	if len(lines) != 4 {
		t.Errorf("got %d lines, want 4:\n%s", len(lines), output)
	}
}

func TestTable_ShortRowsPadded(t *testing.T) {
	output := NewTable("A", "B").AddRow("only").Render()
	if !strings.Contains(output, "only") {
		t.Errorf("table missing cell:\n%s", output)
	}
}

func TestTable_LongCellsTruncated(t *testing.T) {
	long := strings.Repeat("x", 100)
	output := NewTable("DESCRIPTION").AddRow(long).Render()
	if strings.Contains(output, long) {
		t.Error("cell over the column cap should be truncated")
	}
	if !strings.Contains(output, "…") {
		t.Errorf("truncated cell should end with an ellipsis:\n%s", output)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(49.9); got != "49.90" {
		t.Errorf("FormatPrice(49.9) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("FormatDate(zero) = %q, want -", got)
	}

	ts := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
	if got := FormatDate(ts); got != "2025-03-14 09:30" {
		t.Errorf("FormatDate() = %q", got)
	}
}
