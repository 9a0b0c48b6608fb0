package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmmarket/internal/orders"
	"farmmarket/internal/payments"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

// respondError maps a domain error to its HTTP status. Unexpected errors are
// logged with full detail and answered with a generic message.
func respondError(c *gin.Context, route string, err error) {
	var (
		validationErr orders.ValidationError
		notFoundErr   orders.NotFoundError
		unauthErr     orders.UnauthorizedError
		stateErr      orders.InvalidStateError
		stockErr      orders.InsufficientStockError
		sigErr        payments.VerificationFailedError
	)

	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundErr.Error()})
	case errors.As(err, &unauthErr):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": unauthErr.Error()})
	case errors.As(err, &stateErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": stateErr.Error()})
	case errors.As(err, &stockErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"message":   "insufficient stock",
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	case errors.As(err, &sigErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": sigErr.Error()})
	default:
		log.Printf("[%s] returning error 500: %v", route, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"details": details,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// principalID returns the authenticated user id injected by AuthGuard.
func principalID(c *gin.Context) primitive.ObjectID {
	return c.MustGet("userId").(primitive.ObjectID)
}

func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}
