package database

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodapp/internal/models"
)

type restaurantRepository struct {
	coll *mongo.Collection
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, restaurant)
	return translate(err)
}

func (r *restaurantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *restaurantRepository) FindByOwner(ctx context.Context, userID primitive.ObjectID) (*models.Restaurant, error) {
	return r.findOne(ctx, bson.M{"user": userID})
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": restaurant.ID}, restaurant)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) Search(ctx context.Context, search models.RestaurantSearch) ([]models.Restaurant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if search.Limit > 0 {
		findOptions.SetSkip(search.Skip).SetLimit(search.Limit)
	}

	cursor, err := r.coll.Find(ctx, RestaurantSearchFilter(search), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := make([]models.Restaurant, 0)
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) findOne(ctx context.Context, filter bson.M) (*models.Restaurant, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var restaurant models.Restaurant
	if err := r.coll.FindOne(ctx, filter).Decode(&restaurant); err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

// RestaurantSearchFilter builds the Mongo filter for a search. The free text
// matches name, city or country; the query matches name or cuisine; both
// must hold when both are given. Cuisine filters match any listed cuisine.
// User input is regex-escaped.
func RestaurantSearchFilter(search models.RestaurantSearch) bson.M {
	clauses := bson.A{}

	if text := strings.TrimSpace(search.Text); text != "" {
		pattern := caseInsensitive(text)
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"restaurantName": pattern},
			bson.M{"city": pattern},
			bson.M{"country": pattern},
		}})
	}

	if query := strings.TrimSpace(search.Query); query != "" {
		pattern := caseInsensitive(query)
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"restaurantName": pattern},
			bson.M{"cuisines": pattern},
		}})
	}

	filter := bson.M{}
	switch len(clauses) {
	case 0:
	case 1:
		filter = clauses[0].(bson.M)
	default:
		filter["$and"] = clauses
	}

	cuisines := make([]string, 0, len(search.Cuisines))
	for _, c := range search.Cuisines {
		if c = strings.TrimSpace(c); c != "" {
			cuisines = append(cuisines, c)
		}
	}
	if len(cuisines) > 0 {
		filter["cuisines"] = bson.M{"$in": cuisines}
	}

	return filter
}

func caseInsensitive(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}
