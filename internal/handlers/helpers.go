package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogennaisrael01/PropertyHub/db"
	"github.com/ogennaisrael01/PropertyHub/internal/apperrors"
	"github.com/ogennaisrael01/PropertyHub/internal/notify"
	"github.com/ogennaisrael01/PropertyHub/internal/policy"
	"github.com/ogennaisrael01/PropertyHub/internal/rentals"
	"github.com/ogennaisrael01/PropertyHub/internal/store"
)

var notificationSink notify.Sink

// UseSink overrides the notification sink. Tests use this to force
// delivery failures.
func UseSink(s notify.Sink) {
	notificationSink = s
}

func sink() notify.Sink {
	if notificationSink != nil {
		return notificationSink
	}
	return notify.NewDatabaseSink(db.DB)
}

func propertyStore() *store.PropertyStore {
	return store.NewPropertyStore(db.DB)
}

func rentalManager() *rentals.Manager {
	return rentals.NewManager(db.DB, propertyStore(), sink())
}

// respondError maps a store/manager error onto the wire. Anything
// without a known kind is logged and reported as a 500.
func respondError(ctx *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotAuthenticated:
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperrors.KindAuthorization:
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.KindValidation:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.KindNotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.KindConflict:
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondDenied maps a policy denial onto the wire.
func respondDenied(ctx *gin.Context, decision policy.Decision) {
	switch decision.Reason {
	case policy.ReasonNotAuthenticated:
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case policy.ReasonResourceNotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case policy.ReasonWrongRole:
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Role not permitted for this action"})
	case policy.ReasonIsOwner:
		ctx.JSON(http.StatusForbidden, gin.H{"error": "cannot rent own property"})
	default:
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not permitted"})
	}
}
