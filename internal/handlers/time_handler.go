package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shift-planner/internal/apperror"
	"shift-planner/internal/middleware"
	"shift-planner/internal/models"
)

// GetTimeRegistrations возвращает записи табеля с учетом роли
func (h *AppHandler) GetTimeRegistrations(c *gin.Context) {
	entries, err := h.timeService.List(
		middleware.CallerID(c), middleware.IsManager(c),
		c.Query("from"), c.Query("to"), GetIntQueryParam(c, "employee_id"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	if entries == nil {
		entries = []models.TimeEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// CheckIn открывает запись табеля текущим временем
func (h *AppHandler) CheckIn(c *gin.Context) {
	var input struct {
		Notes string `json:"notes"`
	}
	// Тело опционально
	_ = c.ShouldBindJSON(&input)

	entry, err := h.timeService.CheckIn(middleware.CallerID(c), input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// CheckOut закрывает открытую запись табеля
func (h *AppHandler) CheckOut(c *gin.Context) {
	entry, err := h.timeService.CheckOut(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// CreateTimeRegistration добавляет запись табеля вручную
func (h *AppHandler) CreateTimeRegistration(c *gin.Context) {
	var entry models.TimeEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}

	if err := h.timeService.Create(middleware.CallerID(c), middleware.IsManager(c), &entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateTimeRegistration редактирует запись табеля
func (h *AppHandler) UpdateTimeRegistration(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var entry models.TimeEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}
	entry.ID = id

	if err := h.timeService.Update(middleware.CallerID(c), middleware.IsManager(c), &entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteTimeRegistration удаляет запись табеля
func (h *AppHandler) DeleteTimeRegistration(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.timeService.Delete(middleware.CallerID(c), middleware.IsManager(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Запись табеля удалена"})
}
