package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"farmmarket/internal/models"
	"farmmarket/internal/orders"
)

// ProduceStore persists produce listings in the produce collection.
type ProduceStore struct {
	col *mongo.Collection
}

func NewProduceStore(db *mongo.Database) *ProduceStore {
	return &ProduceStore{col: db.Collection("produce")}
}

func (s *ProduceStore) Create(ctx context.Context, produce *models.Produce) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, produce)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, mongo.ErrNilDocument
	}
	return id, nil
}

func (s *ProduceStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Produce, error) {
	var produce models.Produce
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&produce)
	if err == mongo.ErrNoDocuments {
		return nil, orders.NotFoundError{Resource: "produce"}
	}
	if err != nil {
		return nil, err
	}
	return &produce, nil
}

func (s *ProduceStore) FindActive(ctx context.Context) ([]models.Produce, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"status": models.ProduceActive}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := []models.Produce{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ProduceStore) IncrementInquiries(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"inquiries": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return orders.NotFoundError{Resource: "produce"}
	}
	return nil
}

// DeductQuantity decrements the listing quantity and, when the remainder
// reaches zero, clamps it and marks the listing sold.
func (s *ProduceStore) DeductQuantity(ctx context.Context, id primitive.ObjectID, quantity float64) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"quantity": -quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return orders.NotFoundError{Resource: "produce"}
	}

	_, err = s.col.UpdateOne(ctx,
		bson.M{"_id": id, "quantity": bson.M{"$lte": 0}},
		bson.M{"$set": bson.M{"quantity": 0, "status": models.ProduceSold}},
	)
	return err
}
