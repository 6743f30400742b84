package handlers

import (
	"finance-assistant/internal/dto"
	"finance-assistant/internal/service"
	"finance-assistant/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QueryHandler struct {
	queryService *service.QueryService
	info         dto.InfoResponse
	logger       *zap.Logger
}

func NewQueryHandler(queryService *service.QueryService, info dto.InfoResponse, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
		info:         info,
		logger:       logger,
	}
}

// Info godoc
// @Summary Service info
// @Description Liveness check reporting the configured LLM provider and model
// @Tags system
// @Produce json
// @Success 200 {object} dto.InfoResponse
// @Router / [get]
func (h *QueryHandler) Info(c *fiber.Ctx) error {
	return c.JSON(h.info)
}

// Query godoc
// @Summary Ask the assistant
// @Description Answer a natural-language question about the user's expenses, or record the expense it describes
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body dto.QueryRequest true "Query"
// @Success 200 {object} dto.QueryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /query [post]
func (h *QueryHandler) Query(c *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID == "" || req.Query == "" {
		return badRequest(c, "user_id and query are required")
	}

	response, err := h.queryService.Process(c.Context(), req.UserID, req.Query)
	if err != nil {
		h.logger.Error("Failed to process query",
			zap.String("request_id", middleware.RequestID(c)),
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		return serverError(c, "Error processing query: "+err.Error())
	}

	return c.JSON(dto.QueryResponse{Response: response})
}
