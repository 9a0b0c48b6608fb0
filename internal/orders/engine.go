package orders

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmmarket/internal/models"
)

// DefaultDeliveryEstimateDays is the delivery estimate applied when a farmer
// accepts an order.
const DefaultDeliveryEstimateDays = 5

// OrderStore is the persistence contract for order documents. FindByID
// returns NotFoundError when no document matches. Save performs a
// full-document replace that is atomic per document.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]models.Order, error)
	FindByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	// ClaimInventoryAdjustment atomically flips the order's
	// inventoryAdjusted flag and reports whether this call won the claim.
	ClaimInventoryAdjustment(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteForAccount(ctx context.Context, accountID primitive.ObjectID) (int64, error)
}

// ProduceStore is the narrow view of produce persistence the engine mutates
// as a side effect of order lifecycle transitions.
type ProduceStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Produce, error)
	IncrementInquiries(ctx context.Context, id primitive.ObjectID) error
	// DeductQuantity decrements the listing quantity and marks the listing
	// sold when the remainder reaches zero.
	DeductQuantity(ctx context.Context, id primitive.ObjectID, quantity float64) error
}

// Engine validates and applies order lifecycle transitions and their
// derived side effects.
type Engine struct {
	orders           OrderStore
	produce          ProduceStore
	deliveryEstimate time.Duration
	now              func() time.Time
}

func NewEngine(orderStore OrderStore, produceStore ProduceStore, deliveryEstimateDays int) *Engine {
	if deliveryEstimateDays <= 0 {
		deliveryEstimateDays = DefaultDeliveryEstimateDays
	}
	return &Engine{
		orders:           orderStore,
		produce:          produceStore,
		deliveryEstimate: time.Duration(deliveryEstimateDays) * 24 * time.Hour,
		now:              time.Now,
	}
}

// CreateOrderInput carries the buyer's order placement request.
type CreateOrderInput struct {
	ProduceID       primitive.ObjectID
	Quantity        float64
	Message         string
	ShippingAddress models.ShippingAddress
}

// CreateOrder places an order against an active produce listing. The price
// per unit and unit are snapshotted from the listing and the total amount is
// computed once. The inquiry counter increment is a separate document write
// with no cross-document transaction; its failure leaves the order valid.
func (e *Engine) CreateOrder(ctx context.Context, buyerID primitive.ObjectID, in CreateOrderInput) (*models.Order, error) {
	if in.Quantity <= 0 {
		return nil, ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if err := validateShippingAddress(in.ShippingAddress); err != nil {
		return nil, err
	}

	produce, err := e.produce.FindByID(ctx, in.ProduceID)
	if err != nil {
		return nil, err
	}
	if produce.Status != models.ProduceActive {
		return nil, InvalidStateError{Reason: fmt.Sprintf("produce listing is %s, not active", produce.Status)}
	}
	if in.Quantity > produce.Quantity {
		return nil, InsufficientStockError{Available: produce.Quantity, Requested: in.Quantity}
	}

	now := e.now()
	order := &models.Order{
		ProduceID:       produce.ID,
		FarmerID:        produce.FarmerID,
		BuyerID:         buyerID,
		Quantity:        in.Quantity,
		Unit:            produce.Unit,
		PricePerUnit:    produce.ExpectedPrice,
		TotalAmount:     in.Quantity * produce.ExpectedPrice,
		Message:         strings.TrimSpace(in.Message),
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   models.PaymentMethodNone,
		ShippingAddress: in.ShippingAddress,
		Tracking: []models.TrackingEvent{{
			Status:      "order_placed",
			Description: StatusDescription(models.OrderPending),
			Timestamp:   now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := e.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id

	if err := e.produce.IncrementInquiries(ctx, produce.ID); err != nil {
		log.Printf("[ORDER] [WARN] inquiry counter for produce %s not incremented: %v", produce.ID.Hex(), err)
	}
	return order, nil
}

// StatusUpdate is the outcome of an UpdateStatus call. InventorySyncErr is
// non-nil when the order status committed but the best-effort produce
// quantity sync failed; the status change is never rolled back.
type StatusUpdate struct {
	Order            *models.Order
	InventorySyncErr error
}

// UpdateStatus moves an order along the lifecycle graph on behalf of its
// farmer and applies the status-specific side effects.
func (e *Engine) UpdateStatus(ctx context.Context, orderID, farmerID primitive.ObjectID, newStatus models.OrderStatus) (*StatusUpdate, error) {
	order, err := e.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.FarmerID != farmerID {
		return nil, UnauthorizedError{Reason: "order does not belong to this farmer"}
	}
	if !KnownStatus(newStatus) {
		return nil, InvalidStateError{Reason: fmt.Sprintf("unknown order status %q", newStatus)}
	}
	if !CanTransition(order.Status, newStatus) {
		return nil, InvalidStateError{Reason: fmt.Sprintf("cannot move order from %s to %s", order.Status, newStatus)}
	}

	now := e.now()
	order.Status = newStatus
	order.Tracking = append(order.Tracking, models.TrackingEvent{
		Status:      string(newStatus),
		Description: StatusDescription(newStatus),
		Timestamp:   now,
		UpdatedBy:   &farmerID,
	})

	switch newStatus {
	case models.OrderAccepted:
		estimated := now.Add(e.deliveryEstimate)
		order.EstimatedDelivery = &estimated
	case models.OrderDelivered:
		if order.PaymentMethod == models.PaymentMethodCOD && order.PaymentStatus != models.PaymentPaid {
			order.PaymentStatus = models.PaymentPaid
			order.PaidAt = &now
			order.Tracking = append(order.Tracking, models.TrackingEvent{
				Status:      "cod_payment_collected",
				Description: fmt.Sprintf("Cash payment of ₹%.2f collected on delivery", order.TotalAmount),
				Timestamp:   now,
				UpdatedBy:   &farmerID,
			})
		}
	}

	order.UpdatedAt = now
	if err := e.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	result := &StatusUpdate{Order: order}
	if newStatus == models.OrderDelivered || newStatus == models.OrderCompleted {
		result.InventorySyncErr = e.syncInventory(ctx, order)
	}
	return result, nil
}

// syncInventory deducts the order quantity from its produce listing exactly
// once across the delivered and completed transitions, including concurrent
// and repeated calls.
func (e *Engine) syncInventory(ctx context.Context, order *models.Order) error {
	claimed, err := e.orders.ClaimInventoryAdjustment(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("claim inventory adjustment for order %s: %w", order.ID.Hex(), err)
	}
	if !claimed {
		return nil
	}
	order.InventoryAdjusted = true
	if err := e.produce.DeductQuantity(ctx, order.ProduceID, order.Quantity); err != nil {
		return fmt.Errorf("deduct %.2f from produce %s: %w", order.Quantity, order.ProduceID.Hex(), err)
	}
	return nil
}

// CancelOrder is the buyer's escape hatch, allowed only while the order is
// still pending or accepted. A paid order is marked refunded; the refund
// itself is recorded as intent only.
func (e *Engine) CancelOrder(ctx context.Context, orderID, buyerID primitive.ObjectID) (*models.Order, error) {
	order, err := e.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, UnauthorizedError{Reason: "order does not belong to this buyer"}
	}
	if order.Status != models.OrderPending && order.Status != models.OrderAccepted {
		return nil, InvalidStateError{Reason: fmt.Sprintf("a %s order can no longer be cancelled", order.Status)}
	}

	now := e.now()
	order.Status = models.OrderCancelled
	order.Tracking = append(order.Tracking, models.TrackingEvent{
		Status:      string(models.OrderCancelled),
		Description: StatusDescription(models.OrderCancelled),
		Timestamp:   now,
	})
	if order.PaymentStatus == models.PaymentPaid {
		order.PaymentStatus = models.PaymentRefunded
		order.Tracking = append(order.Tracking, models.TrackingEvent{
			Status:      "refund_initiated",
			Description: fmt.Sprintf("Refund of ₹%.2f initiated", order.TotalAmount),
			Timestamp:   now,
		})
	}

	order.UpdatedAt = now
	if err := e.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// TrackingDetailsInput carries the carrier fields a farmer may set; nil
// fields are left untouched.
type TrackingDetailsInput struct {
	TrackingNumber *string
	CarrierName    *string
	ShippingCost   *float64
	Location       *string
}

// UpdateTrackingDetails records carrier information on an order. When both a
// tracking number and a carrier name are present the carrier tracking URL is
// derived from the carrier table.
func (e *Engine) UpdateTrackingDetails(ctx context.Context, orderID, farmerID primitive.ObjectID, in TrackingDetailsInput) (*models.Order, error) {
	order, err := e.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.FarmerID != farmerID {
		return nil, UnauthorizedError{Reason: "order does not belong to this farmer"}
	}

	if in.TrackingNumber != nil {
		order.TrackingNumber = strings.TrimSpace(*in.TrackingNumber)
	}
	if in.CarrierName != nil {
		order.CarrierName = strings.TrimSpace(*in.CarrierName)
	}
	if in.ShippingCost != nil {
		order.ShippingCost = *in.ShippingCost
	}
	if order.TrackingNumber != "" && order.CarrierName != "" {
		order.CarrierTrackingURL = CarrierTrackingURL(order.CarrierName, order.TrackingNumber)
	}

	now := e.now()
	event := models.TrackingEvent{
		Status:      "tracking_updated",
		Description: "Shipment tracking details updated",
		Timestamp:   now,
		UpdatedBy:   &farmerID,
	}
	if in.Location != nil {
		event.Location = strings.TrimSpace(*in.Location)
	}
	order.Tracking = append(order.Tracking, event)

	order.UpdatedAt = now
	if err := e.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkFarmerPaid records that an admin settled the farmer's payout for a
// delivered or completed, fully paid order.
func (e *Engine) MarkFarmerPaid(ctx context.Context, orderID, adminID primitive.ObjectID) (*models.Order, error) {
	order, err := e.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderDelivered && order.Status != models.OrderCompleted {
		return nil, InvalidStateError{Reason: fmt.Sprintf("payout requires a delivered or completed order, got %s", order.Status)}
	}
	if order.PaymentStatus != models.PaymentPaid {
		return nil, InvalidStateError{Reason: "payout requires a settled payment"}
	}
	if order.FarmerPaidOut {
		return nil, InvalidStateError{Reason: "farmer payout already marked"}
	}

	now := e.now()
	order.FarmerPaidOut = true
	order.FarmerPaidOutAt = &now
	order.PayoutMarkedBy = &adminID
	order.Tracking = append(order.Tracking, models.TrackingEvent{
		Status:      "farmer_payout_marked",
		Description: fmt.Sprintf("Farmer payout of ₹%.2f marked as settled", order.TotalAmount),
		Timestamp:   now,
		UpdatedBy:   &adminID,
	})

	order.UpdatedAt = now
	if err := e.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetForParty loads an order for a caller that must be either its farmer or
// its buyer.
func (e *Engine) GetForParty(ctx context.Context, orderID, principalID primitive.ObjectID) (*models.Order, error) {
	order, err := e.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.FarmerID != principalID && order.BuyerID != principalID {
		return nil, UnauthorizedError{Reason: "not a party to this order"}
	}
	return order, nil
}

func (e *Engine) ListForBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]models.Order, error) {
	return e.orders.FindByBuyer(ctx, buyerID)
}

func (e *Engine) ListForFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Order, error) {
	return e.orders.FindByFarmer(ctx, farmerID)
}

func validateShippingAddress(addr models.ShippingAddress) error {
	required := []struct {
		field string
		value string
	}{
		{"fullName", addr.FullName},
		{"phone", addr.Phone},
		{"addressLine1", addr.AddressLine1},
		{"city", addr.City},
		{"state", addr.State},
		{"pincode", addr.Pincode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return ValidationError{Field: "shippingAddress." + f.field, Reason: "is required"}
		}
	}
	return nil
}
