package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"farmmarket/internal/models"
	"farmmarket/internal/orders"
)

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type updateTrackingRequest struct {
	TrackingNumber *string  `json:"trackingNumber"`
	CarrierName    *string  `json:"carrierName"`
	ShippingCost   *float64 `json:"shippingCost"`
	Location       *string  `json:"location"`
}

// UpdateOrderStatus moves an order along its lifecycle on behalf of the
// farmer. A failed best-effort inventory sync is reported in the response
// but never rolls back the status change.
func UpdateOrderStatus(engine *orders.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/orders/:id/status"
		defer handlePanic(c, route)

		orderID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := engine.UpdateStatus(ctx, orderID, principalID(c), models.OrderStatus(req.Status))
		if err != nil {
			respondError(c, route, err)
			return
		}

		response := gin.H{"success": true, "message": "order status updated", "order": result.Order}
		if result.InventorySyncErr != nil {
			log.Printf("[%s] [WARN] inventory sync after status change: %v", route, result.InventorySyncErr)
			response["warning"] = "produce inventory sync deferred"
		}
		c.JSON(http.StatusOK, response)
	}
}

func CancelOrder(engine *orders.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/orders/:id/cancel"
		defer handlePanic(c, route)

		orderID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := engine.CancelOrder(ctx, orderID, principalID(c))
		if err != nil {
			respondError(c, route, err)
			return
		}

		log.Println("[ORDER] [INFO] order cancelled:", order.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order cancelled", "order": order})
	}
}

func UpdateTracking(engine *orders.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/orders/:id/tracking"
		defer handlePanic(c, route)

		orderID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		var req updateTrackingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := engine.UpdateTrackingDetails(ctx, orderID, principalID(c), orders.TrackingDetailsInput{
			TrackingNumber: req.TrackingNumber,
			CarrierName:    req.CarrierName,
			ShippingCost:   req.ShippingCost,
			Location:       req.Location,
		})
		if err != nil {
			respondError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "tracking details updated", "order": order})
	}
}

func MarkFarmerPaid(engine *orders.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/orders/:id/payout"
		defer handlePanic(c, route)

		orderID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := engine.MarkFarmerPaid(ctx, orderID, principalID(c))
		if err != nil {
			respondError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "farmer payout marked", "order": order})
	}
}
