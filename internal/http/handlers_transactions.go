package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pennywise/internal/services"
)

func (s *Server) handleListTransactions(c *gin.Context) {
	list, err := s.transactions.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleCreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := s.transactions.Create(c.Request.Context(), services.CreateTransactionInput{
		UserID:   req.UserID,
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
	})
	if err != nil {
		respondError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleDeleteTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := s.transactions.Delete(c.Request.Context(), id, req.UserID); err != nil {
		respondError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

func (s *Server) handleBalanceSummary(c *gin.Context) {
	summary, err := s.transactions.BalanceSummary(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, summary)
}
