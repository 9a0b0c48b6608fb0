package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"farmmarket/internal/models"
	"farmmarket/internal/store"
)

type createProduceRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	Unit          string  `json:"unit" binding:"required"`
	ExpectedPrice float64 `json:"expectedPrice" binding:"required,gt=0"`
	Location      string  `json:"location"`
}

func CreateProduce(produceStore *store.ProduceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/produce"
		defer handlePanic(c, route)

		var req createProduceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		produce := &models.Produce{
			FarmerID:      principalID(c),
			Name:          req.Name,
			Category:      req.Category,
			Description:   req.Description,
			Quantity:      req.Quantity,
			Unit:          req.Unit,
			ExpectedPrice: req.ExpectedPrice,
			Status:        models.ProduceActive,
			Location:      req.Location,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		id, err := produceStore.Create(ctx, produce)
		if err != nil {
			respondError(c, route, err)
			return
		}
		produce.ID = id

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "produce listed", "produce": produce})
	}
}

func ListProduce(produceStore *store.ProduceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/produce"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		produce, err := produceStore.FindActive(ctx)
		if err != nil {
			respondError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "produce": produce})
	}
}

func GetProduce(produceStore *store.ProduceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/produce/:id"
		defer handlePanic(c, route)

		produceID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		produce, err := produceStore.FindByID(ctx, produceID)
		if err != nil {
			respondError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "produce": produce})
	}
}
