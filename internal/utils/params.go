package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func paramID(ctx *gin.Context, name, label string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New(label + " not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + label)
	}

	return uint(id), nil
}

func GetHouseID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "house_id", "House ID")
}

func GetUnitID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "unit_id", "Unit ID")
}

func GetImageID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "image_id", "Image ID")
}

func GetNotificationID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "notification_id", "Notification ID")
}

func GetHouseUnitID(ctx *gin.Context) (uint, uint, error) {
	houseID, err := GetHouseID(ctx)

	if err != nil {
		return 0, 0, err
	}

	unitID, err := GetUnitID(ctx)

	if err != nil {
		return 0, 0, err
	}

	return houseID, unitID, nil
}
