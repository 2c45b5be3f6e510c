package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ogennaisrael01/PropertyHub/db"
	"github.com/ogennaisrael01/PropertyHub/internal/auth"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"github.com/ogennaisrael01/PropertyHub/internal/types"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsStaff  bool   `json:"is_staff"`
	IsActive bool   `json:"is_active"`
}

// AuthMiddleware rejects requests without a valid bearer token for an
// active user. The resolved user is placed in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := extractToken(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		user, ok := resolveUser(tokenString)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if !user.IsActive {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is
// present and otherwise lets the request through anonymously. Used on
// the public listing endpoints.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := extractToken(ctx)

		if ok {
			if user, ok := resolveUser(tokenString); ok && user.IsActive {
				ctx.Set(types.ContextUserKey, user)
			}
		}

		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}

		return parts[1], true
	}

	if cookie, err := ctx.Cookie("token"); err == nil && cookie != "" {
		return cookie, true
	}

	return "", false
}

func resolveUser(tokenString string) (AuthenticatedUser, bool) {
	token, err := auth.VerifyJWT(tokenString)

	if err != nil || !token.Valid {
		return AuthenticatedUser{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return AuthenticatedUser{}, false
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return AuthenticatedUser{}, false
	}

	userID := uint(userIDFloat)

	var user models.User

	if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return AuthenticatedUser{}, false
	}

	return AuthenticatedUser{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		IsStaff:  user.IsStaff,
		IsActive: user.IsActive,
	}, true
}
