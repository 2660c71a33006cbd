package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pennywise/internal/services"
)

func (s *Server) handleListGoals(c *gin.Context) {
	list, err := s.goals.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Savings goal not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGoalDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	goal, err := s.goals.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Savings goal not found")
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) handleCreateGoal(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := s.goals.Create(c.Request.Context(), services.CreateGoalInput{
		UserID:        req.UserID,
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Icon:          req.Icon,
		TargetDate:    req.TargetDate,
	})
	if err != nil {
		respondError(c, err, "Savings goal not found")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateGoal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	updated, err := s.goals.Update(c.Request.Context(), id, services.UpdateGoalInput{
		UserID:        req.UserID,
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Icon:          req.Icon,
		TargetDate:    req.TargetDate,
	})
	if err != nil {
		respondError(c, err, "Savings goal not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleAddMoney(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req addMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	updated, err := s.goals.AddMoney(c.Request.Context(), id, req.UserID, req.Amount)
	if err != nil {
		respondError(c, err, "Savings goal not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteGoal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := s.goals.Delete(c.Request.Context(), id, req.UserID); err != nil {
		respondError(c, err, "Savings goal not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Savings goal deleted successfully"})
}

func (s *Server) handleGoalSummary(c *gin.Context) {
	summary, err := s.goals.Summary(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Savings goal not found")
		return
	}
	c.JSON(http.StatusOK, summary)
}
