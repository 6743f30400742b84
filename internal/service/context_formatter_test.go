package service

import (
	"math"
	"strings"
	"testing"

	"finance-assistant/internal/models"
)

func TestFormatExpenses_Empty(t *testing.T) {
	f := NewContextFormatter("₹")
	if got := f.FormatExpenses(nil); got != "No expenses found." {
		t.Errorf("expected empty text, got %q", got)
	}
	if got := f.FormatExpenses([]*models.Expense{}); got != "No expenses found." {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestFormatExpenses_Lines(t *testing.T) {
	f := NewContextFormatter("₹")
	expenses := []*models.Expense{
		{Amount: 500, Category: "Food", Description: "lunch", Date: "2026-10-13T08:15:00.000000Z"},
		{Amount: 49.99, Category: "Shopping", Description: "book", Date: "2026-10-01T09:00:00.123456"},
		{Amount: 200, Category: "Transport", Description: "cab", Date: "yesterday"},
		{Amount: 10, Date: "2026-09-30"},
	}

	got := f.FormatExpenses(expenses)
	want := "User's expense data:\n\n" +
		"- Date: 2026-10-13, Category: Food, Amount: ₹500, Description: lunch\n" +
		"- Date: 2026-10-01, Category: Shopping, Amount: ₹49.99, Description: book\n" +
		"- Date: yesterday, Category: Transport, Amount: ₹200, Description: cab\n" +
		"- Date: 2026-09-30, Category: N/A, Amount: ₹10, Description: N/A\n"
	if got != want {
		t.Errorf("unexpected context:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatExpenses_NeverFailsOnDates(t *testing.T) {
	f := NewContextFormatter("$")
	dates := []string{"", "2026-13-45", "not a date", "2026-10-14 10:00:00", "2026-10-14T10:00:00+05:30", "\x00"}
	for _, d := range dates {
		got := f.FormatExpenses([]*models.Expense{{Amount: 1, Category: "Other", Description: "x", Date: d}})
		if !strings.HasPrefix(got, "User's expense data:\n\n") {
			t.Errorf("date %q: missing header in %q", d, got)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := map[string]string{
		"2026-10-14T10:00:00Z":       "2026-10-14",
		"2026-10-14T23:30:00-05:00":  "2026-10-14",
		"2026-10-14T10:00:00.123456": "2026-10-14",
		"2026-10-14T10:00":           "2026-10-14",
		"2026-10-14 10:00:00":        "2026-10-14",
		"2026-10-14T10:30+05:30":     "2026-10-14",
		"2026-10-14T10:30Z":          "2026-10-14",
		"2026-10-14 10:30":           "2026-10-14",
		"2026-10-14":                 "2026-10-14",
		"14/10/2026":                 "14/10/2026",
		"":                           "N/A",
	}
	for in, want := range tests {
		if got := normalizeDate(in); got != want {
			t.Errorf("normalizeDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCategoryTotals(t *testing.T) {
	f := NewContextFormatter("₹")
	expenses := []*models.Expense{
		{Amount: 500, Category: "Food"},
		{Amount: 150.5, Category: "Food"},
		{Amount: 200, Category: "Transport"},
		{Amount: 30},
		{Category: "Bills"},
	}

	totals := f.CategoryTotals(expenses)
	want := map[string]float64{"Food": 650.5, "Transport": 200, "Other": 30, "Bills": 0}
	if len(totals) != len(want) {
		t.Fatalf("got %v, want %v", totals, want)
	}
	for k, v := range want {
		if totals[k] != v {
			t.Errorf("total for %s = %v, want %v", k, totals[k], v)
		}
	}
}

func TestSummarize_ConsistentWithDirectSum(t *testing.T) {
	f := NewContextFormatter("₹")
	expenses := []*models.Expense{
		{Amount: 0.1, Category: "Food"},
		{Amount: 0.2, Category: "Food"},
		{Amount: 19.99, Category: "Health"},
		{Amount: 1e6, Category: "Bills"},
		{Amount: 3.33},
	}

	stats := f.Summarize(expenses)

	var direct float64
	for _, e := range expenses {
		direct += e.Amount
	}
	if math.Abs(stats.Total-direct) > 1e-6 {
		t.Errorf("total %v differs from direct sum %v", stats.Total, direct)
	}

	var fromCategories float64
	for _, v := range stats.CategoryTotals {
		fromCategories += v
	}
	if math.Abs(stats.Total-fromCategories) > 1e-6 {
		t.Errorf("total %v differs from category sum %v", stats.Total, fromCategories)
	}
	if stats.CategoryTotals["Food"] != 0.3 {
		t.Errorf("expected exact Food total 0.3, got %v", stats.CategoryTotals["Food"])
	}
	if stats.Count != len(expenses) {
		t.Errorf("expected count %d, got %d", len(expenses), stats.Count)
	}
}

func TestFormatCategoryBreakdown(t *testing.T) {
	f := NewContextFormatter("₹")
	got := f.FormatCategoryBreakdown(map[string]float64{"Transport": 200, "Food": 650.5})
	if got != "Food: ₹650.50, Transport: ₹200.00" {
		t.Errorf("unexpected breakdown %q", got)
	}
	if got := f.FormatCategoryBreakdown(nil); got != "none" {
		t.Errorf("unexpected empty breakdown %q", got)
	}
}
