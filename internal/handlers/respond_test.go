package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"farmmarket/internal/orders"
	"farmmarket/internal/payments"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", orders.ValidationError{Field: "quantity", Reason: "must be greater than zero"}, 400},
		{"not found", orders.NotFoundError{Resource: "order"}, 404},
		{"unauthorized", orders.UnauthorizedError{Reason: "not a party to this order"}, 403},
		{"invalid state", orders.InvalidStateError{Reason: "cannot move order from pending to delivered"}, 400},
		{"insufficient stock", orders.InsufficientStockError{Available: 2, Requested: 5}, 400},
		{"verification failed", payments.VerificationFailedError{}, 400},
		{"unexpected", errors.New("mongo: connection reset"), 500},
	}

	for _, tc := range tests {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)

		respondError(c, "TEST", tc.err)

		if recorder.Code != tc.want {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.want, recorder.Code)
		}
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	respondError(c, "TEST", errors.New("mongo: topology closed"))

	body := recorder.Body.String()
	if recorder.Code != 500 {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	if !strings.Contains(body, "internal server error") || strings.Contains(body, "topology") {
		t.Fatalf("expected generic message without detail, got %s", body)
	}
}
