package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ogennaisrael01/PropertyHub/internal/middleware"
	"github.com/ogennaisrael01/PropertyHub/internal/policy"
	"github.com/ogennaisrael01/PropertyHub/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// CurrentPrincipal converts the context user into a policy principal.
// Requests without a user evaluate as anonymous.
func CurrentPrincipal(ctx *gin.Context) policy.Principal {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return policy.Principal{}
	}

	return policy.Principal{
		ID:            user.ID,
		Role:          user.Role,
		IsStaff:       user.IsStaff,
		IsActive:      user.IsActive,
		Authenticated: true,
	}
}
