package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shift-planner/internal/models"
)

// Ключи контекста, которые заполняет JWTAuth
const (
	CtxUserID = "userID"
	CtxRole   = "role"
	CtxEmail  = "email"
)

// JWTAuth - middleware для проверки JWT токена.
// Кладет в контекст Gin userID (int), role и email (string).
func JWTAuth(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Отсутствует заголовок Authorization", "code": "unauthenticated"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Некорректный формат заголовка Authorization", "code": "unauthenticated"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			// Принимаем только HMAC-подпись
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		})

		if err != nil {
			errorMsg := "Невалидный токен"
			if errors.Is(err, jwt.ErrTokenExpired) {
				errorMsg = "Срок действия токена истек"
			} else if errors.Is(err, jwt.ErrTokenMalformed) {
				errorMsg = "Некорректный формат токена"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": errorMsg, "code": "unauthenticated"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Невалидный токен", "code": "unauthenticated"})
			c.Abort()
			return
		}

		userIDFloat, okUserID := claims["user_id"].(float64)
		role, okRole := claims["role"].(string)
		email, _ := claims["email"].(string)

		if !okUserID || !okRole {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Ошибка чтения данных из токена", "code": "unauthenticated"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, int(userIDFloat))
		c.Set(CtxRole, role)
		c.Set(CtxEmail, email)

		c.Next()
	}
}

// ManagerOnly - middleware для проверки прав менеджера
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists || role.(string) != models.RoleManager {
			c.JSON(http.StatusForbidden, gin.H{"error": "Доступ запрещен. Требуются права менеджера.", "code": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerID возвращает ID аутентифицированного пользователя из контекста
func CallerID(c *gin.Context) int {
	id, _ := c.Get(CtxUserID)
	userID, _ := id.(int)
	return userID
}

// CallerRole возвращает роль аутентифицированного пользователя из контекста
func CallerRole(c *gin.Context) string {
	r, _ := c.Get(CtxRole)
	role, _ := r.(string)
	return role
}

// IsManager сообщает, аутентифицирован ли вызывающий как менеджер
func IsManager(c *gin.Context) bool {
	return CallerRole(c) == models.RoleManager
}
