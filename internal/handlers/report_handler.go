package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shift-planner/internal/apperror"
	"shift-planner/internal/middleware"
	"shift-planner/internal/models"
)

// GetHoursReport возвращает отчет по отработанным часам за период (менеджер)
func (h *AppHandler) GetHoursReport(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Параметры from и to обязательны", "code": apperror.CodeValidation})
		return
	}

	report, err := h.reportService.HoursReport(from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	if report == nil {
		report = []models.HoursReportRow{}
	}
	c.JSON(http.StatusOK, report)
}

// GetLeaveReport возвращает годовой отчет по отпускам (менеджер)
func (h *AppHandler) GetLeaveReport(c *gin.Context) {
	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат года", "code": apperror.CodeValidation})
			return
		}
		year = parsed
	}

	report, err := h.reportService.LeaveReport(year)
	if err != nil {
		respondError(c, err)
		return
	}
	if report == nil {
		report = []models.LeaveReportRow{}
	}
	c.JSON(http.StatusOK, report)
}

// GetDashboardStats возвращает сводку для главной страницы
func (h *AppHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(middleware.CallerID(c), middleware.IsManager(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if stats.MyShifts == nil {
		stats.MyShifts = []models.Shift{}
	}
	if stats.UpcomingShifts == nil {
		stats.UpcomingShifts = []models.Shift{}
	}
	c.JSON(http.StatusOK, stats)
}
