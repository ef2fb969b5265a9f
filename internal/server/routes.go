package server

import (
	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	expenseHandler *handlers.ExpenseHandler,
	budgetHandler *handlers.BudgetHandler,
	incomeHandler *handlers.IncomeHandler,
	debtHandler *handlers.DebtHandler,
	recurringHandler *handlers.RecurringHandler,
	savingsHandler *handlers.SavingsHandler,
	reportHandler *handlers.ReportHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	expenses := api.Group("/expenses", authMiddleware)
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	budgets := api.Group("/budgets", authMiddleware)
	budgets.GET("", budgetHandler.List)
	budgets.POST("", budgetHandler.Create)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	incomes := api.Group("/incomes", authMiddleware)
	incomes.GET("", incomeHandler.List)
	incomes.POST("", incomeHandler.Create)
	incomes.PUT("/:id", incomeHandler.Update)
	incomes.DELETE("/:id", incomeHandler.Delete)

	debts := api.Group("/debts", authMiddleware)
	debts.GET("", debtHandler.List)
	debts.POST("", debtHandler.Create)
	debts.PUT("/:id", debtHandler.Update)
	debts.POST("/:id/payments", debtHandler.AddPayment)
	debts.DELETE("/:id", debtHandler.Delete)

	recurring := api.Group("/recurring", authMiddleware)
	recurring.GET("", recurringHandler.List)
	recurring.POST("", recurringHandler.Create)
	recurring.PUT("/:id", recurringHandler.Update)
	recurring.DELETE("/:id", recurringHandler.Delete)

	savings := api.Group("/savings-goal", authMiddleware)
	savings.GET("", savingsHandler.Get)
	savings.PUT("", savingsHandler.Put)
	savings.DELETE("", savingsHandler.Delete)

	reports := api.Group("/reports", authMiddleware)
	reports.GET("/dashboard", reportHandler.Dashboard)
	reports.GET("/alerts", reportHandler.Alerts)
	reports.GET("/export/json", reportHandler.ExportJSON)
	reports.GET("/export/csv", reportHandler.ExportCSV)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)
}
