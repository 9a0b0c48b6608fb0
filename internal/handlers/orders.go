package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmmarket/internal/models"
	"farmmarket/internal/orders"
)

/* =========================
   REQUEST DTOs
========================= */

type shippingAddressRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Pincode      string `json:"pincode" binding:"required"`
	Landmark     string `json:"landmark"`
	AddressType  string `json:"addressType"`
}

func (r shippingAddressRequest) model() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:     r.FullName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		Landmark:     r.Landmark,
		AddressType:  r.AddressType,
	}
}

type placeOrderRequest struct {
	ProduceID       string                 `json:"produceId" binding:"required"`
	Quantity        float64                `json:"quantity" binding:"required,gt=0"`
	Message         string                 `json:"message"`
	ShippingAddress shippingAddressRequest `json:"shippingAddress" binding:"required"`
}

/* =========================
   ORDER HANDLERS
========================= */

func PlaceOrder(engine *orders.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		produceID, err := primitive.ObjectIDFromHex(req.ProduceID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid produceId"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := engine.CreateOrder(ctx, principalID(c), orders.CreateOrderInput{
			ProduceID:       produceID,
			Quantity:        req.Quantity,
			Message:         req.Message,
			ShippingAddress: req.ShippingAddress.model(),
		})
		if err != nil {
			respondError(c, route, err)
			return
		}

		log.Println("[ORDER] [INFO] order placed:", order.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "order placed", "order": order})
	}
}

func GetBuyerOrders(engine *orders.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/buyer"
		defer handlePanic(c, route)

		listOrders(c, route, func(ctx context.Context) ([]models.Order, error) {
			return engine.ListForBuyer(ctx, principalID(c))
		})
	}
}

func GetFarmerOrders(engine *orders.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/farmer"
		defer handlePanic(c, route)

		listOrders(c, route, func(ctx context.Context) ([]models.Order, error) {
			return engine.ListForFarmer(ctx, principalID(c))
		})
	}
}

func listOrders(c *gin.Context, route string, load func(context.Context) ([]models.Order, error)) {
	page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid pagination params"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := load(ctx)
	if err != nil {
		respondError(c, route, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  paginate(result, page, limit),
		"total":   len(result),
		"page":    page,
		"limit":   limit,
	})
}

func paginate(list []models.Order, page, limit int64) []models.Order {
	start := (page - 1) * limit
	if start >= int64(len(list)) {
		return []models.Order{}
	}
	end := start + limit
	if end > int64(len(list)) {
		end = int64(len(list))
	}
	return list[start:end]
}

func GetOrder(engine *orders.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"
		defer handlePanic(c, route)

		orderID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := engine.GetForParty(ctx, orderID, principalID(c))
		if err != nil {
			respondError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
