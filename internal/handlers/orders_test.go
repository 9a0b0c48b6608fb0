package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"farmmarket/internal/models"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return recorder
}

func TestPlaceOrderRejectsMissingAddressFields(t *testing.T) {
	body := `{
		"produceId": "65a000000000000000000001",
		"quantity": 3,
		"shippingAddress": {
			"fullName": "Asha Rao",
			"phone": "9876543210",
			"addressLine1": "12 Market Road",
			"state": "Maharashtra",
			"pincode": "411001"
		}
	}`

	rec := postJSON(t, PlaceOrder(nil), body)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Success bool     `json:"success"`
		Details []string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success=false")
	}
	found := false
	for _, d := range resp.Details {
		if d == "city is required" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected city requirement in details, got %v", resp.Details)
	}
}

func TestPlaceOrderRejectsMalformedProduceID(t *testing.T) {
	body := `{
		"produceId": "not-an-object-id",
		"quantity": 3,
		"shippingAddress": {
			"fullName": "Asha Rao",
			"phone": "9876543210",
			"addressLine1": "12 Market Road",
			"city": "Pune",
			"state": "Maharashtra",
			"pincode": "411001"
		}
	}`

	rec := postJSON(t, PlaceOrder(nil), body)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid produceId") {
		t.Fatalf("expected invalid produceId message, got %s", rec.Body.String())
	}
}

func TestPaginateClampsToListBounds(t *testing.T) {
	list := make([]models.Order, 5)

	if got := paginate(list, 1, 2); len(got) != 2 {
		t.Fatalf("expected 2 items on page 1, got %d", len(got))
	}
	if got := paginate(list, 3, 2); len(got) != 1 {
		t.Fatalf("expected 1 item on page 3, got %d", len(got))
	}
	if got := paginate(list, 9, 2); len(got) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(got))
	}
}

func TestParsePaginationParams(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil || page != 1 || limit != 20 {
		t.Fatalf("unexpected defaults: page=%d limit=%d err=%v", page, limit, err)
	}

	if _, _, err := parsePaginationParams("0", "10"); err == nil {
		t.Fatal("expected error for page 0")
	}
	if _, _, err := parsePaginationParams("2", "nope"); err == nil {
		t.Fatal("expected error for non-numeric limit")
	}
}
