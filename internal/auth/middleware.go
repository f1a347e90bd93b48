package auth

import (
	"net/http"
	"strings"

	"raspisanie/internal/handlers"
	"raspisanie/internal/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware пропускает только запросы с валидным access токеном оператора
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Требуется авторизация",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		operatorID, err := handlers.ParseToken(tokenString, handlers.AccessSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Неверный или просроченный токен",
			})
			return
		}

		c.Set("userID", operatorID)
		c.Next()
	}
}
