package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"github.com/ogennaisrael01/PropertyHub/internal/policy"
	"github.com/ogennaisrael01/PropertyHub/internal/rentals"
	"github.com/ogennaisrael01/PropertyHub/internal/utils"
)

type RentalRequest struct {
	StartDate string  `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string  `json:"end_date" binding:"required"`   // YYYY-MM-DD
	Amount    float64 `json:"amount" binding:"required"`
	IsActive  bool    `json:"is_active"`
}

type RentalResponse struct {
	ID        uint    `json:"id"`
	TenantID  uint    `json:"tenant_id"`
	HouseID   uint    `json:"house_id"`
	UnitID    *uint   `json:"unit_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Amount    float64 `json:"amount"`
	IsActive  bool    `json:"is_active"`
}

func rentalResponse(rental *models.Rental) RentalResponse {
	return RentalResponse{
		ID:        rental.ID,
		TenantID:  rental.TenantID,
		HouseID:   rental.HouseID,
		UnitID:    rental.UnitID,
		StartDate: rental.StartDate.Format(time.DateOnly),
		EndDate:   rental.EndDate.Format(time.DateOnly),
		Amount:    rental.Amount,
		IsActive:  rental.IsActive,
	}
}

func (r RentalRequest) window(ctx *gin.Context) (start, end time.Time, ok bool) {
	start, err := time.Parse(time.DateOnly, r.StartDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be formatted as YYYY-MM-DD"})
		return start, end, false
	}

	end, err = time.Parse(time.DateOnly, r.EndDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be formatted as YYYY-MM-DD"})
		return start, end, false
	}

	return start, end, true
}

// CreateHouseRental books a whole house.
func CreateHouseRental(ctx *gin.Context) {
	houseID, err := utils.GetHouseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createRental(ctx, houseID, nil)
}

// CreateUnitRental books a single unit inside a house.
func CreateUnitRental(ctx *gin.Context) {
	houseID, unitID, err := utils.GetHouseUnitID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createRental(ctx, houseID, &unitID)
}

func createRental(ctx *gin.Context, houseID uint, unitID *uint) {
	var body RentalRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	start, end, ok := body.window(ctx)

	if !ok {
		return
	}

	house, err := propertyStore().ResolveHouse(houseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	principal := utils.CurrentPrincipal(ctx)

	chain := houseChain(house)

	if unitID != nil {
		unit, err := propertyStore().ResolveUnit(houseID, *unitID)

		if err != nil {
			respondError(ctx, err)
			return
		}

		chain = unitChain(house, unit)
	}

	chain = append(chain, policy.Resource{Kind: policy.KindRental, OwnerID: house.OwnerID})

	if decision := policy.Authorize(principal, policy.ActionCreate, chain); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	result, err := rentalManager().CreateRental(principal, rentals.CreateRentalInput{
		HouseID:   houseID,
		UnitID:    unitID,
		StartDate: start,
		EndDate:   end,
		Amount:    body.Amount,
		IsActive:  body.IsActive,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := gin.H{"rental": rentalResponse(result.Rental)}

	if result.Warning != "" {
		response["warning"] = result.Warning
	}

	ctx.JSON(http.StatusCreated, response)
}

// MyRentals lists the caller's bookings, newest first.
func MyRentals(ctx *gin.Context) {
	principal := utils.CurrentPrincipal(ctx)

	chain := []policy.Resource{{Kind: policy.KindRental}}

	if decision := policy.Authorize(principal, policy.ActionList, chain); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	rentalRecords, err := propertyStore().ListRentalsByTenant(principal.ID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]RentalResponse, 0, len(rentalRecords))

	for i := range rentalRecords {
		response = append(response, rentalResponse(&rentalRecords[i]))
	}

	ctx.JSON(http.StatusOK, response)
}
