package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/expense-tracker/backend/internal/auth"
	"example.com/expense-tracker/backend/internal/config"
	"example.com/expense-tracker/backend/internal/handlers"
	"example.com/expense-tracker/backend/internal/notifications"
	"example.com/expense-tracker/backend/internal/report"
	"example.com/expense-tracker/backend/internal/repository"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	debtRepo := repository.NewDebtRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)
	savingsRepo := repository.NewSavingsRepository(db)
	notificationHub := notifications.NewHub()

	reportHandler := handlers.NewReportHandler(
		expenseRepo, budgetRepo, incomeRepo, debtRepo, recurringRepo, savingsRepo,
		notificationHub, reportOptions(cfg.Report),
	)
	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager)
	expenseHandler := handlers.NewExpenseHandler(expenseRepo, reportHandler)
	budgetHandler := handlers.NewBudgetHandler(budgetRepo, reportHandler)
	incomeHandler := handlers.NewIncomeHandler(incomeRepo, reportHandler)
	debtHandler := handlers.NewDebtHandler(debtRepo, reportHandler)
	recurringHandler := handlers.NewRecurringHandler(recurringRepo, reportHandler)
	savingsHandler := handlers.NewSavingsHandler(savingsRepo, reportHandler)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)

	registerRoutes(
		e,
		authHandler,
		expenseHandler,
		budgetHandler,
		incomeHandler,
		debtHandler,
		recurringHandler,
		savingsHandler,
		reportHandler,
		notificationHandler,
		auth.JWTMiddleware(tokenManager),
		authRateLimiter(cfg.Auth),
	)

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// reportOptions переводит конфигурацию порогов в настройки сборщика отчетов.
func reportOptions(cfg config.ReportConfig) report.Options {
	return report.Options{
		Rules: report.RuleConfig{
			TierHalf:              cfg.TierHalf,
			TierWarning:           cfg.TierWarning,
			TierCritical:          cfg.TierCritical,
			TierOverspent:         cfg.TierOverspent,
			TierGoodUnder:         cfg.TierGoodUnder,
			LargeExpenseThreshold: cfg.LargeExpenseThreshold,
			HighInterestRate:      cfg.HighInterestRate,
			DueSoonWindow:         cfg.DueSoonWindow,
			SavingsMilestones:     cfg.SavingsMilestones,
		},
		TopExpensesLimit:   cfg.TopExpensesLimit,
		TopCategoriesLimit: cfg.TopCategoriesLimit,
		FallbackCurrency:   cfg.FallbackCurrency,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
