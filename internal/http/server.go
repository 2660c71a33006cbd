// Package http is the JSON surface: a gin router over the services, with
// request-id tagging, structured request logging and per-client rate
// limiting on mutating routes.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/middleware/ratelimit"
	"pennywise/internal/services"
	"pennywise/internal/storage"
)

// Server wires the router to the services and owns the listener.
type Server struct {
	engine *gin.Engine
	srv    *http.Server

	store        *storage.Store
	transactions *services.TransactionService
	budgets      *services.BudgetService
	goals        *services.GoalService
	reports      *services.ReportsService
	sync         *services.SyncService
}

// Deps carries everything the server needs; nothing is global.
type Deps struct {
	Store        *storage.Store
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Goals        *services.GoalService
	Reports      *services.ReportsService
	Sync         *services.SyncService
	Limiter      *ratelimit.Limiter
	Logger       *slog.Logger
}

func NewServer(addr string, deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID())
	if deps.Logger != nil {
		engine.Use(RequestLogger(deps.Logger))
	}

	s := &Server{
		engine:       engine,
		store:        deps.Store,
		transactions: deps.Transactions,
		budgets:      deps.Budgets,
		goals:        deps.Goals,
		reports:      deps.Reports,
		sync:         deps.Sync,
	}
	s.routes(deps.Limiter)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes(limiter *ratelimit.Limiter) {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/readyz", s.handleReady)

	api := s.engine.Group("/api")
	if limiter != nil {
		api.Use(RateLimit(limiter))
	}

	tx := api.Group("/transactions")
	tx.GET("/:userId", s.handleListTransactions)
	tx.GET("/summary/:userId", s.handleBalanceSummary)
	tx.POST("", s.handleCreateTransaction)
	tx.DELETE("/:id", s.handleDeleteTransaction)

	budgets := api.Group("/budgets")
	budgets.GET("/:userId", s.handleListBudgets)
	budgets.GET("/summary/:userId", s.handleBudgetSummary)
	budgets.GET("/progress/:userId", s.handleBudgetProgress)
	budgets.GET("/details/:id", s.handleBudgetDetails)
	budgets.POST("", s.handleCreateBudget)
	budgets.PUT("/:id", s.handleUpdateBudget)
	budgets.DELETE("/:id", s.handleDeleteBudget)

	goals := api.Group("/goals")
	goals.GET("/:userId", s.handleListGoals)
	goals.GET("/summary/:userId", s.handleGoalSummary)
	goals.GET("/details/:id", s.handleGoalDetails)
	goals.POST("", s.handleCreateGoal)
	goals.PUT("/:id", s.handleUpdateGoal)
	goals.PATCH("/:id/add-money", s.handleAddMoney)
	goals.DELETE("/:id", s.handleDeleteGoal)

	reports := api.Group("/reports")
	reports.GET("/summary/:userId", s.handleReportsSummary)
	reports.GET("/monthly-expenditure/:userId", s.handleMonthlyExpenditure)
	reports.GET("/budget-adherence/:userId", s.handleBudgetAdherence)
	reports.GET("/savings-progress/:userId", s.handleSavingsProgress)
	reports.GET("/category-distribution/:userId", s.handleCategoryDistribution)
	reports.GET("/savings-forecast/:userId", s.handleSavingsForecast)

	api.POST("/sync/upload", s.handleSyncUpload)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReady(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests until the context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
