package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"farmmarket/internal/store"
)

// PurgeAccountOrders cascades an account deletion into the order
// collection, removing every order the account was farmer or buyer on.
func PurgeAccountOrders(orderStore *store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/accounts/:id/orders"
		defer handlePanic(c, route)

		accountID, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		deleted, err := orderStore.DeleteForAccount(ctx, accountID)
		if err != nil {
			respondError(c, route, err)
			return
		}

		log.Printf("[ADMIN] [INFO] purged %d orders for account %s", deleted, accountID.Hex())
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "orders purged", "deleted": deleted})
	}
}
