package orders

import (
	"fmt"
	"strings"

	"farmmarket/internal/models"
)

// statusFlow is the order lifecycle graph. A status may only move to one of
// its listed successors; rejected, cancelled and completed are terminal.
var statusFlow = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:        {models.OrderAccepted, models.OrderRejected, models.OrderCancelled},
	models.OrderAccepted:       {models.OrderPacked, models.OrderCancelled},
	models.OrderPacked:         {models.OrderShipped},
	models.OrderShipped:        {models.OrderOutForDelivery},
	models.OrderOutForDelivery: {models.OrderDelivered},
	models.OrderDelivered:      {models.OrderCompleted},
	models.OrderRejected:       {},
	models.OrderCancelled:      {},
	models.OrderCompleted:      {},
}

// CanTransition reports whether the lifecycle graph allows moving an order
// from one status to another.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range statusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

// KnownStatus reports whether s is a member of the lifecycle graph.
func KnownStatus(s models.OrderStatus) bool {
	if s == models.OrderPending {
		return true
	}
	_, ok := statusFlow[s]
	return ok
}

var statusDescriptions = map[models.OrderStatus]string{
	models.OrderPending:        "Order placed and awaiting farmer confirmation",
	models.OrderAccepted:       "Order accepted by the farmer",
	models.OrderRejected:       "Order rejected by the farmer",
	models.OrderPacked:         "Order packed and ready for dispatch",
	models.OrderShipped:        "Order handed over to the carrier",
	models.OrderOutForDelivery: "Order out for delivery",
	models.OrderDelivered:      "Order delivered to the shipping address",
	models.OrderCompleted:      "Order completed",
	models.OrderCancelled:      "Order cancelled by the buyer",
}

// StatusDescription returns the tracking-log description for a status,
// falling back to a generic template for statuses outside the table.
func StatusDescription(s models.OrderStatus) string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return fmt.Sprintf("Order status updated to %s", s)
}

// carrierTrackingURLs maps a normalized carrier name to its shipment
// tracking URL template. Unknown carriers yield an empty URL.
var carrierTrackingURLs = map[string]string{
	"delhivery":    "https://www.delhivery.com/track/package/%s",
	"bluedart":     "https://www.bluedart.com/tracking?trackingNumber=%s",
	"dtdc":         "https://www.dtdc.in/tracking.asp?awb=%s",
	"ecom express": "https://ecomexpress.in/tracking/?awb_field=%s",
	"india post":   "https://www.indiapost.gov.in/_layouts/15/dop.portal.tracking/trackconsignment.aspx?tn=%s",
	"xpressbees":   "https://www.xpressbees.com/track?awb=%s",
}

// CarrierTrackingURL derives the carrier tracking URL for a shipment.
func CarrierTrackingURL(carrierName, trackingNumber string) string {
	template, ok := carrierTrackingURLs[strings.ToLower(strings.TrimSpace(carrierName))]
	if !ok {
		return ""
	}
	return fmt.Sprintf(template, trackingNumber)
}
