// Package orders implements the checkout and fulfillment lifecycle: building
// a provider checkout session from a cart, creating the order when the
// provider confirms payment, and advancing the order's status.
package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodapp/internal/database"
	"foodapp/internal/models"
	"foodapp/internal/payment"
)

type Config struct {
	Currency         string
	FrontendURL      string
	AllowedCountries []string
}

type Service struct {
	orders      database.OrderRepository
	restaurants database.RestaurantRepository
	menus       database.MenuRepository
	payments    payment.Provider
	cfg         Config

	now    func() time.Time
	newKey func() string
}

func NewService(store *database.Store, payments payment.Provider, cfg Config) *Service {
	return &Service{
		orders:      store.Orders,
		restaurants: store.Restaurants,
		menus:       store.Menus,
		payments:    payments,
		cfg:         cfg,
		now:         time.Now,
		newKey:      uuid.NewString,
	}
}

// ListUserOrders returns the orders the user placed, newest first.
func (s *Service) ListUserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListRestaurantOrders returns the orders of the restaurant owned by ownerID.
func (s *Service) ListRestaurantOrders(ctx context.Context, ownerID primitive.ObjectID) ([]models.Order, error) {
	restaurant, err := s.restaurants.FindByOwner(ctx, ownerID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.orders.ListByRestaurant(ctx, restaurant.ID)
}
