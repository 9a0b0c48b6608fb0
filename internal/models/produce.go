package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProduceStatus enumerates the listing states of a produce document.
type ProduceStatus string

const (
	ProduceActive   ProduceStatus = "active"
	ProduceInactive ProduceStatus = "inactive"
	ProduceSold     ProduceStatus = "sold"
)

// Produce is a farmer's listing of a crop quantity offered at a price.
// Quantity is consumed by delivered/completed orders; Inquiries counts
// placed orders against the listing.
type Produce struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FarmerID      primitive.ObjectID `bson:"farmerId" json:"farmerId"`
	Name          string             `bson:"name" json:"name"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Quantity      float64            `bson:"quantity" json:"quantity"`
	Unit          string             `bson:"unit" json:"unit"`
	ExpectedPrice float64            `bson:"expectedPrice" json:"expectedPrice"`
	Status        ProduceStatus      `bson:"status" json:"status"`
	Inquiries     int                `bson:"inquiries" json:"inquiries"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
