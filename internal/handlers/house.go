package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ogennaisrael01/PropertyHub/db"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"github.com/ogennaisrael01/PropertyHub/internal/notify"
	"github.com/ogennaisrael01/PropertyHub/internal/policy"
	"github.com/ogennaisrael01/PropertyHub/internal/store"
	"github.com/ogennaisrael01/PropertyHub/internal/utils"
)

type HouseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	HouseType   string  `json:"house_type" binding:"required"`
	IsAvailable bool    `json:"is_available"`
	ForRent     bool    `json:"for_rent"`
	ForSale     bool    `json:"for_sale"`
}

type HouseResponse struct {
	ID          uint    `json:"id"`
	OwnerID     uint    `json:"owner_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	HouseType   string  `json:"house_type"`
	IsAvailable bool    `json:"is_available"`
	ForRent     bool    `json:"for_rent"`
	ForSale     bool    `json:"for_sale"`
}

func houseResponse(house *models.House) HouseResponse {
	return HouseResponse{
		ID:          house.ID,
		OwnerID:     house.OwnerID,
		Title:       house.Title,
		Description: house.Description,
		Price:       house.Price,
		Location:    house.Location,
		HouseType:   house.HouseType,
		IsAvailable: house.IsAvailable,
		ForRent:     house.ForRent,
		ForSale:     house.ForSale,
	}
}

func houseChain(house *models.House) []policy.Resource {
	return []policy.Resource{
		{Kind: policy.KindHouse, ID: house.ID, OwnerID: house.OwnerID},
	}
}

func CreateHouse(ctx *gin.Context) {
	var body HouseRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	principal := utils.CurrentPrincipal(ctx)

	// The prospective house belongs to the caller, so the chain for a
	// create carries the caller as effective owner.
	chain := []policy.Resource{{Kind: policy.KindHouse, OwnerID: principal.ID}}

	if decision := policy.Authorize(principal, policy.ActionCreate, chain); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	var owner models.User

	if err := db.DB.First(&owner, principal.ID).Error; err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	house, err := propertyStore().CreateHouse(&owner, store.HouseAttrs{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Location:    body.Location,
		HouseType:   body.HouseType,
		IsAvailable: body.IsAvailable,
		ForRent:     body.ForRent,
		ForSale:     body.ForSale,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := gin.H{"house": houseResponse(house)}

	meta := notify.Metadata{HouseID: house.ID}

	if err := sink().Notify(owner.ID, "Your property at "+house.Location+" has been listed", meta); err != nil {
		log.Printf("Failed to notify owner %d about house %d: %v", owner.ID, house.ID, err)
		response["warning"] = "property created, but the confirmation notice could not be delivered"
	}

	ctx.JSON(http.StatusCreated, response)
}

func ListHouses(ctx *gin.Context) {
	var filters store.HouseFilters

	if priceStr := ctx.Query("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price filter"})
			return
		}
		filters.Price = &price
	}

	filters.Location = ctx.Query("location")
	filters.Search = ctx.Query("search")

	roomFilter := func(name string) (*int, bool) {
		valueStr := ctx.Query(name)

		if valueStr == "" {
			return nil, true
		}

		value, err := strconv.Atoi(valueStr)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " filter"})
			return nil, false
		}

		return &value, true
	}

	var ok bool

	if filters.Bedrooms, ok = roomFilter("bedrooms"); !ok {
		return
	}

	if filters.Bathrooms, ok = roomFilter("bathrooms"); !ok {
		return
	}

	if filters.LivingRooms, ok = roomFilter("living_rooms"); !ok {
		return
	}

	houses, err := propertyStore().ListAvailableHouses(filters)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]HouseResponse, 0, len(houses))

	for i := range houses {
		response = append(response, houseResponse(&houses[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetHouse(ctx *gin.Context) {
	houseID, err := utils.GetHouseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	house, err := propertyStore().ResolveHouse(houseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"house": houseResponse(house)})
}

func UpdateHouse(ctx *gin.Context) {
	houseID, err := utils.GetHouseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body HouseRequest

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

	if decision := policy.Authorize(principal, policy.ActionUpdate, houseChain(house)); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	if err := propertyStore().UpdateHouse(house, store.HouseAttrs{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Location:    body.Location,
		HouseType:   body.HouseType,
		IsAvailable: body.IsAvailable,
		ForRent:     body.ForRent,
		ForSale:     body.ForSale,
	}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"house": houseResponse(house)})
}

func DeleteHouse(ctx *gin.Context) {
	houseID, err := utils.GetHouseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	house, err := propertyStore().ResolveHouse(houseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	principal := utils.CurrentPrincipal(ctx)

	if decision := policy.Authorize(principal, policy.ActionDelete, houseChain(house)); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	if err := propertyStore().DeleteHouse(house); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
