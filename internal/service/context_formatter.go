package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"finance-assistant/internal/models"

	"github.com/shopspring/decimal"
)

const (
	noExpensesText      = "No expenses found."
	expenseContextTitle = "User's expense data:\n\n"
	missingField        = "N/A"
)

// isoLayouts are tried in order when normalizing record dates.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Stats summarizes a user's expense history for a prompt.
type Stats struct {
	Total          float64
	Count          int
	CategoryTotals map[string]float64
}

// ContextFormatter renders expense records as prompt context.
type ContextFormatter struct {
	currency string
}

func NewContextFormatter(currencySymbol string) *ContextFormatter {
	return &ContextFormatter{currency: currencySymbol}
}

// FormatExpenses renders one line per record in the order given.
func (f *ContextFormatter) FormatExpenses(expenses []*models.Expense) string {
	if len(expenses) == 0 {
		return noExpensesText
	}

	var builder strings.Builder
	builder.WriteString(expenseContextTitle)
	for _, e := range expenses {
		builder.WriteString(fmt.Sprintf("- Date: %s, Category: %s, Amount: %s%s, Description: %s\n",
			normalizeDate(e.Date),
			orMissing(e.Category),
			f.currency,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			orMissing(e.Description),
		))
	}
	return builder.String()
}

// CategoryTotals sums amounts per category. Records without a category
// count towards Other.
func (f *ContextFormatter) CategoryTotals(expenses []*models.Expense) map[string]float64 {
	sums := categorySums(expenses)
	totals := make(map[string]float64, len(sums))
	for category, sum := range sums {
		totals[category] = sum.InexactFloat64()
	}
	return totals
}

// Summarize computes the total, count and per-category totals in one pass.
func (f *ContextFormatter) Summarize(expenses []*models.Expense) Stats {
	sums := categorySums(expenses)
	total := decimal.Zero
	totals := make(map[string]float64, len(sums))
	for category, sum := range sums {
		total = total.Add(sum)
		totals[category] = sum.InexactFloat64()
	}
	return Stats{
		Total:          total.InexactFloat64(),
		Count:          len(expenses),
		CategoryTotals: totals,
	}
}

// FormatCategoryBreakdown renders totals sorted by category name.
func (f *ContextFormatter) FormatCategoryBreakdown(totals map[string]float64) string {
	if len(totals) == 0 {
		return "none"
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	parts := make([]string, 0, len(categories))
	for _, category := range categories {
		parts = append(parts, fmt.Sprintf("%s: %s%.2f", category, f.currency, totals[category]))
	}
	return strings.Join(parts, ", ")
}

func categorySums(expenses []*models.Expense) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		category := e.Category
		if category == "" {
			category = string(models.CategoryOther)
		}
		sums[category] = sums[category].Add(decimal.NewFromFloat(e.Amount))
	}
	return sums
}

// normalizeDate shortens parseable ISO-8601 values to YYYY-MM-DD and passes
// anything else through unchanged.
func normalizeDate(raw string) string {
	if raw == "" {
		return missingField
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

func orMissing(s string) string {
	if s == "" {
		return missingField
	}
	return s
}
