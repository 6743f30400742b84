package api

import (
	"finance-assistant/docs"
	"finance-assistant/internal/api/handlers"
	"finance-assistant/internal/dto"
	"finance-assistant/pkg/config"
	"finance-assistant/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	expenseHandler *handlers.ExpenseHandler,
	queryHandler *handlers.QueryHandler,
	serverCfg *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           serverCfg.ReadTimeout,
		WriteTimeout:          serverCfg.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Detail: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     serverCfg.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		AllowCredentials: serverCfg.AllowOrigins != "*",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	// Swagger, docs registers itself in init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", queryHandler.Info)
	app.Post("/query", queryHandler.Query)

	app.Post("/add-expense", expenseHandler.AddExpense)
	app.Get("/get-expenses", expenseHandler.GetExpenses)
	app.Delete("/delete-all-expenses", expenseHandler.DeleteAllExpenses)

	return app
}
