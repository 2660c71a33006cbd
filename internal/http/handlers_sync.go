package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleSyncUpload(c *gin.Context) {
	var req syncUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := s.sync.Upload(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, err, "Sync target not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Sync completed successfully",
		"recordsSynced":     result.RecordsSynced,
		"conflictsResolved": result.ConflictsResolved,
	})
}
