package middleware

import (
	"net/http"
	"strings"

	"github.com/Axeldarren/ITList-sub000/internal/auth"
	"github.com/Axeldarren/ITList-sub000/internal/lifecycle"

	"github.com/gin-gonic/gin"
)

// RequireAuth проверяет bearer-токен и кладёт текущего пользователя в
// контекст запроса. Токен также принимается из query-параметра — для
// апгрейда WebSocket, где заголовок не доступен из браузера.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenString = strings.TrimPrefix(h, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			tokenString = q
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization required"})
			return
		}

		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("isAdmin", claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin пускает только админов. Вешается после RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}

// ActorFrom — текущий пользователь запроса.
func ActorFrom(c *gin.Context) lifecycle.Actor {
	return lifecycle.Actor{
		UserID:  c.GetUint("userID"),
		IsAdmin: c.GetBool("isAdmin"),
	}
}
