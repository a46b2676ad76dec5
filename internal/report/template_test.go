package report

import (
	"strings"
	"testing"
	"time"

	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildBillData(t *testing.T) {
	reason := "festival at home"
	entries := []models.Tiffin{
		{
			Count:     2,
			Type:      "Regular",
			Price:     90,
			CreatedAt: time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC),
		},
		{
			Count:        1,
			Type:         "Jain",
			CancelReason: strPtr(reason),
			Price:        90,
			CreatedAt:    time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),
		},
	}

	now := time.Date(2025, time.April, 2, 18, 30, 0, 0, time.UTC)
	data := BuildBillData("Snej Hirpara", "March", 2025, entries, 90, now)

	if len(data.Rows) != 2 {
		t.Fatalf("rows = %d", len(data.Rows))
	}
	if data.Rows[0].Date != "03-03-2025" || data.Rows[1].Date != "10-03-2025" {
		t.Fatalf("dates = %q, %q", data.Rows[0].Date, data.Rows[1].Date)
	}
	if data.Rows[0].Reason != "-" {
		t.Fatalf("missing reason placeholder, got %q", data.Rows[0].Reason)
	}
	if data.Rows[1].Reason != reason {
		t.Fatalf("reason = %q", data.Rows[1].Reason)
	}
	if data.Rows[0].Price != "₹90.00" {
		t.Fatalf("row price = %q", data.Rows[0].Price)
	}
	if data.TotalCount != 3 || data.TotalAmount != "₹180.00" {
		t.Fatalf("totals = %d / %q", data.TotalCount, data.TotalAmount)
	}
	if data.GeneratedAt != "02-04-2025 18:30:00" {
		t.Fatalf("generated at = %q", data.GeneratedAt)
	}
}

func TestRenderHTML(t *testing.T) {
	entries := []models.Tiffin{
		{
			Count:     2,
			Type:      "Swaminarayan",
			Price:     90,
			CreatedAt: time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
		},
	}
	data := BuildBillData("Snej Hirpara", "March", 2025, entries, 90, time.Now())

	html, err := RenderHTML(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"Tiffin Bill For Month of March, 2025 - Snej Hirpara",
		"07-03-2025",
		"Swaminarayan",
		"₹90.00",
		"Price for 1 Tiffin (of all type) is: ₹90.00",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered bill missing %q", want)
		}
	}
}
