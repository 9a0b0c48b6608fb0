package orders

import (
	"testing"

	"farmmarket/internal/models"
)

func TestCanTransitionFollowsLifecycleGraph(t *testing.T) {
	allowed := []struct{ from, to models.OrderStatus }{
		{models.OrderPending, models.OrderAccepted},
		{models.OrderPending, models.OrderRejected},
		{models.OrderPending, models.OrderCancelled},
		{models.OrderAccepted, models.OrderPacked},
		{models.OrderAccepted, models.OrderCancelled},
		{models.OrderPacked, models.OrderShipped},
		{models.OrderShipped, models.OrderOutForDelivery},
		{models.OrderOutForDelivery, models.OrderDelivered},
		{models.OrderDelivered, models.OrderCompleted},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to models.OrderStatus }{
		{models.OrderPending, models.OrderDelivered},
		{models.OrderPending, models.OrderPacked},
		{models.OrderAccepted, models.OrderDelivered},
		{models.OrderShipped, models.OrderCancelled},
		{models.OrderDelivered, models.OrderPending},
		{models.OrderCompleted, models.OrderDelivered},
		{models.OrderCancelled, models.OrderAccepted},
		{models.OrderRejected, models.OrderAccepted},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestTerminalStatesHaveNoSuccessors(t *testing.T) {
	for _, terminal := range []models.OrderStatus{models.OrderRejected, models.OrderCancelled, models.OrderCompleted} {
		if len(statusFlow[terminal]) != 0 {
			t.Errorf("expected %s to be terminal", terminal)
		}
	}
}

func TestKnownStatus(t *testing.T) {
	if !KnownStatus(models.OrderPending) || !KnownStatus(models.OrderOutForDelivery) {
		t.Fatal("expected lifecycle members to be known")
	}
	if KnownStatus(models.OrderStatus("warehouse")) {
		t.Fatal("expected unknown status to be rejected")
	}
}

func TestStatusDescriptionFallsBackToTemplate(t *testing.T) {
	if got := StatusDescription(models.OrderShipped); got != "Order handed over to the carrier" {
		t.Fatalf("unexpected description for shipped: %q", got)
	}
	if got := StatusDescription(models.OrderStatus("weighed")); got != "Order status updated to weighed" {
		t.Fatalf("unexpected fallback description: %q", got)
	}
}

func TestCarrierTrackingURL(t *testing.T) {
	if got := CarrierTrackingURL("Delhivery", "AWB42"); got != "https://www.delhivery.com/track/package/AWB42" {
		t.Fatalf("unexpected URL: %q", got)
	}
	// Lookup is case and whitespace insensitive.
	if got := CarrierTrackingURL("  INDIA POST ", "RN1"); got == "" {
		t.Fatal("expected a URL for india post")
	}
	if got := CarrierTrackingURL("Speedy Vans", "X1"); got != "" {
		t.Fatalf("expected empty URL for unknown carrier, got %q", got)
	}
}
