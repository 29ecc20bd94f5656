package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodapp/internal/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type RestaurantRepository interface {
	// Create fails with ErrDuplicate when the owner already has a restaurant.
	Create(ctx context.Context, restaurant *models.Restaurant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
	FindByOwner(ctx context.Context, userID primitive.ObjectID) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Search(ctx context.Context, search models.RestaurantSearch) ([]models.Restaurant, error)
}

type MenuRepository interface {
	Create(ctx context.Context, menu *models.Menu) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Menu, error)
	// FindByIDs returns the menus of restaurantID among ids; unknown ids are
	// silently absent from the result.
	FindByIDs(ctx context.Context, restaurantID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Menu, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Menu, error)
	Update(ctx context.Context, menu *models.Menu) error
}

type OrderRepository interface {
	// Create fails with ErrDuplicate when an order for the same checkout
	// session already exists.
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByCheckoutSession(ctx context.Context, sessionID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Order, error)
	// UpdateStatus sets the status only while the stored status still equals
	// from. It returns ErrNotFound when no document matched.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, now time.Time) error
}

// Store groups the repositories the HTTP layer needs.
type Store struct {
	Users       UserRepository
	Restaurants RestaurantRepository
	Menus       MenuRepository
	Orders      OrderRepository
	Ping        func(ctx context.Context) error
}
