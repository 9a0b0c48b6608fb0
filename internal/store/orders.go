package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"farmmarket/internal/models"
	"farmmarket/internal/orders"
)

// OrderStore persists order documents in the orders collection.
type OrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{col: db.Collection("orders")}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, mongo.ErrNilDocument
	}
	return id, nil
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, orders.NotFoundError{Resource: "order"}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) FindByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"buyerId": buyerID})
}

func (s *OrderStore) FindByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"farmerId": farmerID})
}

func (s *OrderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := []models.Order{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Save replaces the whole order document. Replacement is atomic per
// document; no partial write is visible to other readers.
func (s *OrderStore) Save(ctx context.Context, order *models.Order) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return orders.NotFoundError{Resource: "order"}
	}
	return nil
}

// ClaimInventoryAdjustment flips the inventoryAdjusted flag with a guarded
// update so only one caller wins under concurrent or repeated transitions.
func (s *OrderStore) ClaimInventoryAdjustment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "inventoryAdjusted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"inventoryAdjusted": true}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// DeleteForAccount removes every order the account participates in. Used as
// the cascade when a farmer or buyer account is deleted.
func (s *OrderStore) DeleteForAccount(ctx context.Context, accountID primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{
		"$or": []bson.M{
			{"farmerId": accountID},
			{"buyerId": accountID},
		},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
