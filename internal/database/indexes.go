package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "buyerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("buyerId_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "farmerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("farmerId_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "razorpayOrderId", Value: 1}},
			Options: options.Index().SetName("razorpayOrderId_index").SetSparse(true),
		},
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, indexModels)
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	return nil
}

func EnsureProduceIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("produce").Indexes()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "farmerId", Value: 1}},
			Options: options.Index().SetName("farmerId_index"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_createdAt"),
		},
	}

	log.Println("EnsureProduceIndexes: creating produce indexes")
	_, err := indexes.CreateMany(ctx, indexModels)
	if err != nil {
		log.Println("EnsureProduceIndexes: produce index error:", err)
		return err
	}
	return nil
}
