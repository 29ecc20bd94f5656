package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodapp/internal/models"
)

type menuRepository struct {
	coll *mongo.Collection
}

func (r *menuRepository) Create(ctx context.Context, menu *models.Menu) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if menu.ID.IsZero() {
		menu.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, menu)
	return translate(err)
}

func (r *menuRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Menu, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var menu models.Menu
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&menu); err != nil {
		return nil, translate(err)
	}
	return &menu, nil
}

func (r *menuRepository) FindByIDs(ctx context.Context, restaurantID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Menu, error) {
	return r.find(ctx, bson.M{
		"_id":        bson.M{"$in": ids},
		"restaurant": restaurantID,
	})
}

func (r *menuRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Menu, error) {
	return r.find(ctx, bson.M{"restaurant": restaurantID})
}

func (r *menuRepository) Update(ctx context.Context, menu *models.Menu) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": menu.ID}, menu)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) find(ctx context.Context, filter bson.M) ([]models.Menu, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	menus := make([]models.Menu, 0)
	if err := cursor.All(ctx, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}
