package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shift-planner/internal/apperror"
	"shift-planner/internal/middleware"
	"shift-planner/internal/models"
)

// CreateInvitation создает приглашение для нового сотрудника (менеджер)
func (h *AppHandler) CreateInvitation(c *gin.Context) {
	var input struct {
		Email      string `json:"email" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Role       string `json:"role"`
		Department string `json:"department"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email и имя обязательны", "code": apperror.CodeValidation})
		return
	}

	invitation, err := h.invitationService.Create(middleware.CallerID(c), input.Email, input.Name, input.Role, input.Department)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invitation)
}

// GetInvitations возвращает все приглашения (менеджер)
func (h *AppHandler) GetInvitations(c *gin.Context) {
	invitations, err := h.invitationService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	if invitations == nil {
		invitations = []models.Invitation{}
	}
	c.JSON(http.StatusOK, invitations)
}

// DeleteInvitation отзывает приглашение (менеджер)
func (h *AppHandler) DeleteInvitation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.invitationService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Приглашение отозвано"})
}

// VerifyInvitation проверяет токен приглашения (публичный маршрут)
func (h *AppHandler) VerifyInvitation(c *gin.Context) {
	invitation, err := h.invitationService.Verify(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":      invitation.Email,
		"name":       invitation.Name,
		"role":       invitation.Role,
		"department": invitation.Department,
	})
}

// Register создает учетную запись по приглашению (публичный маршрут)
func (h *AppHandler) Register(c *gin.Context) {
	var input struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Токен и пароль обязательны", "code": apperror.CodeValidation})
		return
	}

	token, employee, err := h.invitationService.Register(input.Token, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": employee})
}
