package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogennaisrael01/PropertyHub/internal/models"
	"github.com/ogennaisrael01/PropertyHub/internal/policy"
	"github.com/ogennaisrael01/PropertyHub/internal/store"
	"github.com/ogennaisrael01/PropertyHub/internal/utils"
)

type ImageRequest struct {
	Caption  string `json:"caption"`
	ImageRef string `json:"image_ref" binding:"required"`
}

type ImageResponse struct {
	ID       uint   `json:"id"`
	HouseID  uint   `json:"house_id"`
	Caption  string `json:"caption"`
	ImageRef string `json:"image_ref"`
}

func imageChain(house *models.House, image *models.HouseImage) []policy.Resource {
	chain := houseChain(house)

	resource := policy.Resource{Kind: policy.KindHouseImage, OwnerID: house.OwnerID}

	if image != nil {
		resource.ID = image.ID
	}

	return append(chain, resource)
}

func CreateImage(ctx *gin.Context) {
	houseID, err := utils.GetHouseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body ImageRequest

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

	if decision := policy.Authorize(principal, policy.ActionCreate, imageChain(house, nil)); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	image, err := propertyStore().CreateImage(house, store.ImageAttrs{
		Caption:  body.Caption,
		ImageRef: body.ImageRef,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"image": ImageResponse{
		ID:       image.ID,
		HouseID:  image.HouseID,
		Caption:  image.Caption,
		ImageRef: image.ImageRef,
	}})
}

func DeleteImage(ctx *gin.Context) {
	houseID, err := utils.GetHouseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageID, err := utils.GetImageID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	house, err := propertyStore().ResolveHouse(houseID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	image, err := propertyStore().ResolveImage(houseID, imageID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	principal := utils.CurrentPrincipal(ctx)

	if decision := policy.Authorize(principal, policy.ActionDelete, imageChain(house, image)); !decision.Allowed {
		respondDenied(ctx, decision)
		return
	}

	if err := propertyStore().DeleteImage(image); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
