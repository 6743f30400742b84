package models

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryHealth        Category = "Health"
	CategoryOther         Category = "Other"
)

// Categories lists the categories the extractor may assign, in prompt order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryHealth,
	CategoryOther,
}

// ParseCategory matches name case-insensitively against Categories.
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(name, string(c)) {
			return c, true
		}
	}
	return CategoryOther, false
}

// TimestampLayout is fixed-width so stored UTC timestamps sort lexicographically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Expense is a single spending record. Category is free text here because the
// direct insert path stores whatever the client sends.
type Expense struct {
	UserID      string  `json:"user_id" bson:"user_id" db:"user_id"`
	Amount      float64 `json:"amount" bson:"amount" db:"amount"`
	Category    string  `json:"category" bson:"category" db:"category"`
	Description string  `json:"description" bson:"description" db:"description"`
	Date        string  `json:"date" bson:"date" db:"date"`
}
