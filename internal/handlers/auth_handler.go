package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shift-planner/internal/apperror"
	"shift-planner/internal/middleware"
)

// Login обработчик для входа по email и паролю
func (h *AppHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email и пароль обязательны", "code": apperror.CodeValidation})
		return
	}

	token, employee, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": employee})
}

// SetupAdmin создает первую учетную запись менеджера на пустой БД
func (h *AppHandler) SetupAdmin(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Имя, email и пароль обязательны", "code": apperror.CodeValidation})
		return
	}

	admin, err := h.authService.SetupAdmin(input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.IssueToken(admin)
	if err != nil {
		respondError(c, err)
		return
	}
	admin.Password = ""
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": admin})
}

// Me возвращает данные текущего пользователя
func (h *AppHandler) Me(c *gin.Context) {
	employee, err := h.authService.Me(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// UpdateProfile обновляет имя и телефон текущего пользователя
func (h *AppHandler) UpdateProfile(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error(), "code": apperror.CodeValidation})
		return
	}

	employee, err := h.authService.UpdateProfile(middleware.CallerID(c), input.Name, input.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// ChangePassword меняет пароль текущего пользователя
func (h *AppHandler) ChangePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Текущий и новый пароль обязательны", "code": apperror.CodeValidation})
		return
	}

	if err := h.authService.ChangePassword(middleware.CallerID(c), input.CurrentPassword, input.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Пароль изменен"})
}
