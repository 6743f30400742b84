package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"finance-assistant/internal/dto"
	"finance-assistant/internal/service"
	"finance-assistant/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	defaultUserID  string
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, defaultUserID string, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		defaultUserID:  defaultUserID,
		logger:         logger,
	}
}

// AddExpense godoc
// @Summary Add an expense
// @Description Store a structured expense as sent. An empty date is stamped with the current time.
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.AddExpenseRequest true "Expense"
// @Success 200 {object} dto.AddExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /add-expense [post]
func (h *ExpenseHandler) AddExpense(c *fiber.Ctx) error {
	var req dto.AddExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID == "" {
		return badRequest(c, "user_id is required")
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		return badRequest(c, "missing required fields: "+strings.Join(missing, ", "))
	}

	expense, err := h.expenseService.AddExpense(c.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to add expense",
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err),
		)
		return serverError(c, err.Error())
	}

	return c.JSON(dto.AddExpenseResponse{
		Message: "Expense added successfully",
		Expense: expense,
	})
}

// GetExpenses godoc
// @Summary List expenses
// @Description List a user's expenses, optionally only those of the last N days
// @Tags expenses
// @Produce json
// @Param user_id query string false "User ID" default(user_1)
// @Param days query int false "Window in days, 0 for all" default(0)
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /get-expenses [get]
func (h *ExpenseHandler) GetExpenses(c *fiber.Ctx) error {
	userID := c.Query("user_id", h.defaultUserID)

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "days must be an integer")
		}
		days = parsed
	}

	expenses, err := h.expenseService.ListExpenses(c.Context(), userID, days)
	if err != nil {
		h.logger.Error("Failed to list expenses",
			zap.String("request_id", middleware.RequestID(c)),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return serverError(c, err.Error())
	}

	return c.JSON(dto.ExpenseListResponse{
		Expenses: expenses,
		Count:    len(expenses),
	})
}

// DeleteAllExpenses godoc
// @Summary Delete all expenses
// @Description Remove every expense of a user
// @Tags expenses
// @Produce json
// @Param user_id query string false "User ID" default(user_1)
// @Success 200 {object} dto.MessageResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /delete-all-expenses [delete]
func (h *ExpenseHandler) DeleteAllExpenses(c *fiber.Ctx) error {
	userID := c.Query("user_id", h.defaultUserID)

	deleted, err := h.expenseService.DeleteAllExpenses(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to delete expenses",
			zap.String("request_id", middleware.RequestID(c)),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return serverError(c, err.Error())
	}

	return c.JSON(dto.MessageResponse{
		Message: fmt.Sprintf("Deleted %d expenses", deleted),
	})
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: detail})
}

func serverError(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: detail})
}
