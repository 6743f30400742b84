package dto

import "finance-assistant/internal/models"

// AddExpenseRequest holds pointers so an absent (or null) key can be told
// apart from a zero value.
type AddExpenseRequest struct {
	UserID      string   `json:"user_id"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Date        string   `json:"date"`
}

// MissingFields lists the required keys absent from the request.
func (r *AddExpenseRequest) MissingFields() []string {
	var missing []string
	if r.Amount == nil {
		missing = append(missing, "amount")
	}
	if r.Category == nil {
		missing = append(missing, "category")
	}
	if r.Description == nil {
		missing = append(missing, "description")
	}
	return missing
}

type AddExpenseResponse struct {
	Message string          `json:"message"`
	Expense *models.Expense `json:"expense"`
}

type ExpenseListResponse struct {
	Expenses []*models.Expense `json:"expenses"`
	Count    int               `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
