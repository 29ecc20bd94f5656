package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection       = "users"
	restaurantsCollection = "restaurants"
	menusCollection       = "menus"
	ordersCollection      = "orders"

	queryTimeout = 5 * time.Second
)

func Connect(uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI is not defined")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// NewStore wires the Mongo repositories for db.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		Users:       &userRepository{coll: db.Collection(usersCollection)},
		Restaurants: &restaurantRepository{coll: db.Collection(restaurantsCollection)},
		Menus:       &menuRepository{coll: db.Collection(menusCollection)},
		Orders:      &orderRepository{coll: db.Collection(ordersCollection)},
		Ping: func(ctx context.Context) error {
			checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return db.Client().Ping(checkCtx, readpref.Primary())
		},
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
