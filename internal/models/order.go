package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderAccepted       OrderStatus = "accepted"
	OrderRejected       OrderStatus = "rejected"
	OrderPacked         OrderStatus = "packed"
	OrderShipped        OrderStatus = "shipped"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCompleted      OrderStatus = "completed"
	OrderCancelled      OrderStatus = "cancelled"
)

// PaymentStatus enumerates the payment settlement states of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod enumerates how the buyer settles an order.
type PaymentMethod string

const (
	PaymentMethodRazorpay     PaymentMethod = "razorpay"
	PaymentMethodCOD          PaymentMethod = "cod"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodNone         PaymentMethod = "none"
)

// ShippingAddress is the structured delivery address captured at order time.
type ShippingAddress struct {
	FullName     string `bson:"fullName" json:"fullName"`
	Phone        string `bson:"phone" json:"phone"`
	AddressLine1 string `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string `bson:"city" json:"city"`
	State        string `bson:"state" json:"state"`
	Pincode      string `bson:"pincode" json:"pincode"`
	Landmark     string `bson:"landmark,omitempty" json:"landmark,omitempty"`
	AddressType  string `bson:"addressType,omitempty" json:"addressType,omitempty"`
}

// TrackingEvent is one immutable entry in an order's tracking log.
// UpdatedBy is nil for buyer-initiated events.
type TrackingEvent struct {
	Status      string              `bson:"status" json:"status"`
	Description string              `bson:"description" json:"description"`
	Location    string              `bson:"location,omitempty" json:"location,omitempty"`
	Timestamp   time.Time           `bson:"timestamp" json:"timestamp"`
	UpdatedBy   *primitive.ObjectID `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// Order defines the persisted order document. Produce, farmer and buyer
// references are immutable after creation; PricePerUnit and Unit are
// snapshots of the produce at order time and TotalAmount is computed once.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProduceID primitive.ObjectID `bson:"produceId" json:"produceId"`
	FarmerID  primitive.ObjectID `bson:"farmerId" json:"farmerId"`
	BuyerID   primitive.ObjectID `bson:"buyerId" json:"buyerId"`

	Quantity     float64 `bson:"quantity" json:"quantity"`
	Unit         string  `bson:"unit" json:"unit"`
	PricePerUnit float64 `bson:"pricePerUnit" json:"pricePerUnit"`
	TotalAmount  float64 `bson:"totalAmount" json:"totalAmount"`
	Message      string  `bson:"message,omitempty" json:"message,omitempty"`

	Status OrderStatus `bson:"status" json:"status"`

	PaymentStatus     PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod     PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	RazorpayOrderID   string        `bson:"razorpayOrderId,omitempty" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string        `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string        `bson:"razorpaySignature,omitempty" json:"razorpaySignature,omitempty"`
	PaidAt            *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`

	ShippingAddress ShippingAddress `bson:"shippingAddress" json:"shippingAddress"`
	Tracking        []TrackingEvent `bson:"tracking" json:"tracking"`

	TrackingNumber     string     `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	CarrierName        string     `bson:"carrierName,omitempty" json:"carrierName,omitempty"`
	CarrierTrackingURL string     `bson:"carrierTrackingUrl,omitempty" json:"carrierTrackingUrl,omitempty"`
	ShippingCost       float64    `bson:"shippingCost,omitempty" json:"shippingCost,omitempty"`
	EstimatedDelivery  *time.Time `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"`

	// InventoryAdjusted guards the produce quantity decrement so that a
	// delivered order is deducted from stock exactly once.
	InventoryAdjusted bool `bson:"inventoryAdjusted" json:"-"`

	FarmerPaidOut   bool                `bson:"farmerPaidOut" json:"farmerPaidOut"`
	FarmerPaidOutAt *time.Time          `bson:"farmerPaidOutAt,omitempty" json:"farmerPaidOutAt,omitempty"`
	PayoutMarkedBy  *primitive.ObjectID `bson:"payoutMarkedBy,omitempty" json:"payoutMarkedBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
