package payments

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmmarket/internal/models"
	"farmmarket/internal/orders"
)

// VerificationFailedError reports a gateway confirmation whose signature did
// not match the expected one. No payment field changes on mismatch.
type VerificationFailedError struct{}

func (VerificationFailedError) Error() string {
	return "payment signature verification failed"
}

// Adapter bridges gateway confirmations and cash-on-delivery selection into
// the order's payment state.
type Adapter struct {
	orders    orders.OrderStore
	gateway   Gateway
	keyID     string
	keySecret string
	now       func() time.Time
}

func NewAdapter(orderStore orders.OrderStore, gateway Gateway, keyID, keySecret string) *Adapter {
	return &Adapter{
		orders:    orderStore,
		gateway:   gateway,
		keyID:     keyID,
		keySecret: keySecret,
		now:       time.Now,
	}
}

// CheckoutSession is handed to the client to open the gateway checkout.
type CheckoutSession struct {
	GatewayOrder *GatewayOrder `json:"razorpayOrder"`
	KeyID        string        `json:"key"`
}

// InitiatePayment creates a payable intent for the order's total amount in
// paise at the payment authority and stores the intent id on the order.
func (a *Adapter) InitiatePayment(ctx context.Context, orderID, buyerID primitive.ObjectID) (*CheckoutSession, error) {
	order, err := a.loadPayableOrder(ctx, orderID, buyerID)
	if err != nil {
		return nil, err
	}

	amount := int64(math.Round(order.TotalAmount * 100))
	receipt := "rcpt_" + uuid.NewString()
	gatewayOrder, err := a.gateway.CreateOrder(ctx, amount, "INR", receipt)
	if err != nil {
		return nil, err
	}

	order.RazorpayOrderID = gatewayOrder.ID
	order.UpdatedAt = a.now()
	if err := a.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return &CheckoutSession{GatewayOrder: gatewayOrder, KeyID: a.keyID}, nil
}

// ConfirmPaymentInput is the gateway's signed confirmation of a captured
// payment.
type ConfirmPaymentInput struct {
	OrderID          primitive.ObjectID
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// ConfirmPayment verifies the gateway signature and, on success, marks the
// order paid and appends a payment_received tracking event.
func (a *Adapter) ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (*models.Order, error) {
	order, err := a.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	if !VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature, a.keySecret) {
		return nil, VerificationFailedError{}
	}

	now := a.now()
	order.PaymentStatus = models.PaymentPaid
	order.PaymentMethod = models.PaymentMethodRazorpay
	order.RazorpayOrderID = in.GatewayOrderID
	order.RazorpayPaymentID = in.GatewayPaymentID
	order.RazorpaySignature = in.Signature
	order.PaidAt = &now
	order.Tracking = append(order.Tracking, models.TrackingEvent{
		Status:      "payment_received",
		Description: fmt.Sprintf("Payment of ₹%.2f received", order.TotalAmount),
		Timestamp:   now,
	})

	order.UpdatedAt = now
	if err := a.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SelectCOD records cash on delivery as the order's payment method. The
// payment status stays pending until the delivery-time reconciliation in the
// lifecycle engine collects it.
func (a *Adapter) SelectCOD(ctx context.Context, orderID, buyerID primitive.ObjectID) (*models.Order, error) {
	order, err := a.loadPayableOrder(ctx, orderID, buyerID)
	if err != nil {
		return nil, err
	}

	now := a.now()
	order.PaymentMethod = models.PaymentMethodCOD
	order.Tracking = append(order.Tracking, models.TrackingEvent{
		Status:      "cod_selected",
		Description: "Cash on delivery selected, payment due at delivery",
		Timestamp:   now,
	})

	order.UpdatedAt = now
	if err := a.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// loadPayableOrder applies the shared payment guards: the caller must be the
// order's buyer, the order must not already be paid, and it must not be
// cancelled or rejected.
func (a *Adapter) loadPayableOrder(ctx context.Context, orderID, buyerID primitive.ObjectID) (*models.Order, error) {
	order, err := a.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, orders.UnauthorizedError{Reason: "order does not belong to this buyer"}
	}
	if order.PaymentStatus == models.PaymentPaid {
		return nil, orders.InvalidStateError{Reason: "order is already paid"}
	}
	if order.Status == models.OrderCancelled || order.Status == models.OrderRejected {
		return nil, orders.InvalidStateError{Reason: fmt.Sprintf("a %s order cannot be paid", order.Status)}
	}
	return order, nil
}
