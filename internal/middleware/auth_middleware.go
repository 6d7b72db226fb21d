package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobsoutcuba/backend/internal/service"
	"github.com/jobsoutcuba/backend/internal/utils"
)

const actorKey = "actor"

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"message":    message,
			"statusCode": http.StatusUnauthorized,
			"status":     "fail",
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		},
	})
	c.Abort()
}

// AuthMiddleware rejects requests without a valid Bearer access token and
// stores the authenticated actor in the gin context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Token de autenticación requerido")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortUnauthorized(c, "Formato de autorización inválido. Usa: Bearer <token>")
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			abortUnauthorized(c, "Token inválido o expirado")
			return
		}

		c.Set(actorKey, &service.Actor{
			ID:       claims.UserID,
			Username: claims.Username,
			Rol:      claims.Rol,
		})
		c.Next()
	}
}

// OptionalAuthMiddleware parses the Bearer token when present but lets
// anonymous requests through. A malformed token is treated as anonymous.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.Next()
			return
		}

		c.Set(actorKey, &service.Actor{
			ID:       claims.UserID,
			Username: claims.Username,
			Rol:      claims.Rol,
		})
		c.Next()
	}
}

// AdminMiddleware requires a previously authenticated admin actor.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil {
			abortUnauthorized(c, "No autenticado")
			return
		}
		if !actor.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"message":    "Se requieren permisos de administrador",
					"statusCode": http.StatusForbidden,
					"status":     "fail",
					"timestamp":  time.Now().UTC().Format(time.RFC3339),
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated actor, or nil for anonymous requests.
func GetActor(c *gin.Context) *service.Actor {
	value, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	actor, ok := value.(*service.Actor)
	if !ok {
		return nil
	}
	return actor
}
