package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"github.com/ogennaisrael01/PropertyHub/internal/policy"
	"github.com/ogennaisrael01/PropertyHub/internal/store"
	"github.com/ogennaisrael01/PropertyHub/internal/utils"
)

type UnitRequest struct {
	UnitNumber  string  `json:"unit_number" binding:"required"`
	Bedrooms    *int    `json:"bedrooms" binding:"required"`
	Bathrooms   *int    `json:"bathrooms" binding:"required"`
	LivingRooms *int    `json:"living_rooms" binding:"required"`
	RentAmount  float64 `json:"rent_amount" binding:"required"`
	IsAvailable bool    `json:"is_available"`
}

type UnitResponse struct {
	ID          uint    `json:"id"`
	HouseID     uint    `json:"house_id"`
	UnitNumber  string  `json:"unit_number"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	LivingRooms int     `json:"living_rooms"`
	RentAmount  float64 `json:"rent_amount"`
	IsAvailable bool    `json:"is_available"`
}

func unitResponse(unit *models.Unit) UnitResponse {
	return UnitResponse{
		ID:          unit.ID,
		HouseID:     unit.HouseID,
		UnitNumber:  unit.UnitNumber,
		Bedrooms:    unit.Bedrooms,
		Bathrooms:   unit.Bathrooms,
		LivingRooms: unit.LivingRooms,
		RentAmount:  unit.RentAmount,
		IsAvailable: unit.IsAvailable,
	}
}

func (r UnitRequest) attrs() store.UnitAttrs {
	return store.UnitAttrs{
		UnitNumber:  r.UnitNumber,
		Bedrooms:    *r.Bedrooms,
		Bathrooms:   *r.Bathrooms,
		LivingRooms: *r.LivingRooms,
		RentAmount:  r.RentAmount,
		IsAvailable: r.IsAvailable,
	}
}

// unitChain resolves house -> unit into a policy chain. The unit's
// effective owner is the house owner.
func unitChain(house *models.House, unit *models.Unit) []policy.Resource {
	chain := houseChain(house)

	resource := policy.Resource{Kind: policy.KindUnit, OwnerID: house.OwnerID}

	if unit != nil {
		resource.ID = unit.ID
	}

	return append(chain, resource)
}

func CreateUnit(ctx *gin.Context) {
	houseID, err := utils.GetHouseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UnitRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	house, err := propertyStore().ResolveHouse(houseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	principal := utils.CurrentPrincipal(ctx)

	if decision := policy.Authorize(principal, policy.ActionCreate, unitChain(house, nil)); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	unit, err := propertyStore().CreateUnit(house, body.attrs())

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"unit": unitResponse(unit)})
}

// ListUnits is public and only shows units currently available for
// rent, matching the public listing behaviour of houses.
func ListUnits(ctx *gin.Context) {
	houseID, err := utils.GetHouseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := propertyStore().ResolveHouse(houseID); err != nil {
		respondError(ctx, err)
		return
	}

	units, err := propertyStore().ListAvailableUnits(houseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]UnitResponse, 0, len(units))

	for i := range units {
		response = append(response, unitResponse(&units[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUnit(ctx *gin.Context) {
	houseID, unitID, err := utils.GetHouseUnitID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := propertyStore().ResolveUnit(houseID, unitID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unit": unitResponse(unit)})
}

func UpdateUnit(ctx *gin.Context) {
	houseID, unitID, err := utils.GetHouseUnitID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UnitRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	house, err := propertyStore().ResolveHouse(houseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	unit, err := propertyStore().ResolveUnit(houseID, unitID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	principal := utils.CurrentPrincipal(ctx)

	if decision := policy.Authorize(principal, policy.ActionUpdate, unitChain(house, unit)); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	if err := propertyStore().UpdateUnit(unit, body.attrs()); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unit": unitResponse(unit)})
}

func DeleteUnit(ctx *gin.Context) {
	houseID, unitID, err := utils.GetHouseUnitID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	house, err := propertyStore().ResolveHouse(houseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	unit, err := propertyStore().ResolveUnit(houseID, unitID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	principal := utils.CurrentPrincipal(ctx)

	if decision := policy.Authorize(principal, policy.ActionDelete, unitChain(house, unit)); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	if err := propertyStore().DeleteUnit(unit); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
