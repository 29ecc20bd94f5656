package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodapp/internal/models"
)

type orderRepository struct {
	coll *mongo.Collection
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, order)
	return translate(err)
}

func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *orderRepository) FindByCheckoutSession(ctx context.Context, sessionID string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"checkoutSessionId": sessionID})
}

func (r *orderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user": userID})
}

func (r *orderRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"restaurant": restaurantID})
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, now time.Time) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var order models.Order
	if err := r.coll.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
