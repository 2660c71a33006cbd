package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/core"
)

func (s *Server) handleReportsSummary(c *gin.Context) {
	summary, err := s.reports.Summary(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleMonthlyExpenditure(c *gin.Context) {
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}

	rows, err := s.reports.MonthlyExpenditure(c.Request.Context(), c.Param("userId"), year, month)
	if err != nil {
		respondError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleBudgetAdherence(c *gin.Context) {
	rows, err := s.reports.BudgetAdherence(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleSavingsProgress(c *gin.Context) {
	rows, err := s.reports.SavingsProgress(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleCategoryDistribution(c *gin.Context) {
	start, ok := queryDate(c, "startDate")
	if !ok {
		return
	}
	end, ok := queryDate(c, "endDate")
	if !ok {
		return
	}
	if end != nil {
		// Make the end date inclusive through the whole day.
		e := end.AddDate(0, 0, 1).Add(-time.Second)
		end = &e
	}

	rows, err := s.reports.CategoryDistribution(c.Request.Context(), c.Param("userId"), start, end)
	if err != nil {
		respondError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleSavingsForecast(c *gin.Context) {
	monthsBack, ok := queryInt(c, "monthsBack")
	if !ok {
		return
	}
	monthsForecast, ok := queryInt(c, "monthsForecast")
	if !ok {
		return
	}

	points, err := s.reports.SavingsForecast(c.Request.Context(), c.Param("userId"), monthsBack, monthsForecast)
	if err != nil {
		respondError(c, err, "Report not found")
		return
	}
	c.JSON(http.StatusOK, points)
}

// queryInt parses an optional integer query parameter, zero when absent.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, name+" must be an integer")
		return 0, false
	}
	return v, true
}

// queryDate parses an optional "YYYY-MM-DD" query parameter.
func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := core.ParseCivilDate(raw)
	if err != nil {
		badRequest(c, name+" must be in YYYY-MM-DD format")
		return nil, false
	}
	return &t, true
}
