package service

import "strings"

type Intent int

const (
	IntentAskQuestion Intent = iota
	IntentAddExpense
)

func (i Intent) String() string {
	switch i {
	case IntentAddExpense:
		return "add_expense"
	default:
		return "ask_question"
	}
}

// addExpenseTriggers route a query to extraction when any appears as a
// substring. "What have I spent on food?" is therefore an add request; this
// is the accepted behavior of the heuristic.
var addExpenseTriggers = []string{"add", "spent", "bought", "paid"}

// Classify picks the intent of query by case-insensitive substring match.
func Classify(query string) Intent {
	lower := strings.ToLower(query)
	for _, trigger := range addExpenseTriggers {
		if strings.Contains(lower, trigger) {
			return IntentAddExpense
		}
	}
	return IntentAskQuestion
}
