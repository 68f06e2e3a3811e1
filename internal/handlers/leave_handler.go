package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shift-planner/internal/apperror"
	"shift-planner/internal/middleware"
	"shift-planner/internal/models"
)

// --- Заявки на отпуск ---

// GetLeaveRequests возвращает заявки с учетом роли вызывающего
func (h *AppHandler) GetLeaveRequests(c *gin.Context) {
	requests, err := h.leaveService.List(
		middleware.CallerID(c), middleware.IsManager(c),
		GetIntQueryParam(c, "employee_id"), c.Query("status"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	if requests == nil {
		requests = []models.LeaveRequest{}
	}
	c.JSON(http.StatusOK, requests)
}

// CreateLeaveRequest подает заявку на отпуск от имени вызывающего
func (h *AppHandler) CreateLeaveRequest(c *gin.Context) {
	var input struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
		Type      string `json:"type" binding:"required"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}

	request, err := h.leaveService.Submit(middleware.CallerID(c), input.StartDate, input.EndDate, input.Type, input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ProcessLeaveRequest применяет решение менеджера по заявке
func (h *AppHandler) ProcessLeaveRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input struct {
		Decision string `json:"decision" binding:"required"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Решение обязательно", "code": apperror.CodeValidation})
		return
	}

	request, err := h.leaveService.Process(middleware.CallerID(c), id, input.Decision, input.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// CancelLeaveRequest отменяет собственную заявку на рассмотрении
func (h *AppHandler) CancelLeaveRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.leaveService.Cancel(middleware.CallerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Заявка отменена"})
}

// --- Обмен сменами ---

// GetShiftSwaps возвращает запросы на обмен с учетом роли
func (h *AppHandler) GetShiftSwaps(c *gin.Context) {
	swaps, err := h.swapService.List(middleware.CallerID(c), middleware.IsManager(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if swaps == nil {
		swaps = []models.ShiftSwap{}
	}
	c.JSON(http.StatusOK, swaps)
}

// CreateShiftSwap создает запрос на обмен сменой
func (h *AppHandler) CreateShiftSwap(c *gin.Context) {
	var input struct {
		ShiftID          int    `json:"shift_id" binding:"required"`
		RecipientID      int    `json:"recipient_id" binding:"required"`
		RecipientShiftID *int   `json:"recipient_shift_id"`
		Note             string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}

	swap, err := h.swapService.Create(middleware.CallerID(c), input.ShiftID, input.RecipientID, input.RecipientShiftID, input.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, swap)
}

// RespondShiftSwap - ответ получателя (accept/decline)
func (h *AppHandler) RespondShiftSwap(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Действие обязательно", "code": apperror.CodeValidation})
		return
	}

	swap, err := h.swapService.Respond(middleware.CallerID(c), id, input.Action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, swap)
}

// ApproveShiftSwap - решение менеджера (approve/reject)
func (h *AppHandler) ApproveShiftSwap(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Действие обязательно", "code": apperror.CodeValidation})
		return
	}

	swap, err := h.swapService.Approve(middleware.CallerID(c), id, input.Action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, swap)
}

// --- Уведомления ---

// GetNotifications возвращает последние уведомления вызывающего
func (h *AppHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notificationService.List(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead помечает уведомление прочитанным
func (h *AppHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.notificationService.MarkRead(middleware.CallerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Уведомление прочитано"})
}

// MarkAllNotificationsRead помечает все уведомления вызывающего прочитанными
func (h *AppHandler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(middleware.CallerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Все уведомления прочитаны"})
}
