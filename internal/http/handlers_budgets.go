package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pennywise/internal/services"
)

func (s *Server) handleListBudgets(c *gin.Context) {
	list, err := s.budgets.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Budget not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleBudgetDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	budget, err := s.budgets.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Budget not found")
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (s *Server) handleCreateBudget(c *gin.Context) {
	var req createBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := s.budgets.Create(c.Request.Context(), services.CreateBudgetInput{
		UserID:   req.UserID,
		Category: req.Category,
		Amount:   req.Amount,
		Period:   req.Period,
	})
	if err != nil {
		respondError(c, err, "Budget not found")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateBudget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	updated, err := s.budgets.Update(c.Request.Context(), id, services.UpdateBudgetInput{
		UserID:   req.UserID,
		Category: req.Category,
		Amount:   req.Amount,
		Period:   req.Period,
	})
	if err != nil {
		respondError(c, err, "Budget not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteBudget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := s.budgets.Delete(c.Request.Context(), id, req.UserID); err != nil {
		respondError(c, err, "Budget not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

func (s *Server) handleBudgetSummary(c *gin.Context) {
	summary, err := s.budgets.Summary(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Budget not found")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleBudgetProgress(c *gin.Context) {
	progress, err := s.budgets.Progress(c.Request.Context(), c.Param("userId"), c.Query("period"))
	if err != nil {
		respondError(c, err, "Budget not found")
		return
	}
	c.JSON(http.StatusOK, progress)
}
