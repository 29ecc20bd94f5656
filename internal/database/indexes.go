package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	return ensureIndexes(db, usersCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
	})
}

// EnsureRestaurantIndexes enforces one restaurant per owner at the storage
// level; the handler checks first so the common case gets a clean message.
func EnsureRestaurantIndexes(db *mongo.Database) error {
	return ensureIndexes(db, restaurantsCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("user_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "cuisines", Value: 1}},
			Options: options.Index().SetName("cuisines_index"),
		},
	})
}

func EnsureMenuIndexes(db *mongo.Database) error {
	return ensureIndexes(db, menusCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "restaurant", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("restaurant_createdAt_index"),
		},
	})
}

// EnsureOrderIndexes includes the unique checkoutSessionId index that makes
// webhook redelivery safe.
func EnsureOrderIndexes(db *mongo.Database) error {
	return ensureIndexes(db, ordersCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("user_index"),
		},
		{
			Keys:    bson.D{{Key: "restaurant", Value: 1}},
			Options: options.Index().SetName("restaurant_index"),
		},
		{
			Keys: bson.D{{Key: "checkoutSessionId", Value: 1}},
			Options: options.Index().
				SetName("checkoutSessionId_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"checkoutSessionId": bson.M{"$type": "string"},
				}),
		},
	})
}

func ensureIndexes(db *mongo.Database, collection string, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("[DB] [INFO] creating %d index(es) on %s", len(models), collection)
	names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Printf("[DB] [ERROR] %s index error: %v", collection, err)
		return err
	}
	log.Printf("[DB] [INFO] %s indexes ready: %v", collection, names)
	return nil
}
