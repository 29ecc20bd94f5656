package orders

import (
	"context"
	"errors"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodapp/internal/database"
	"foodapp/internal/models"
)

// UpdateStatus moves an order of the operator's restaurant to status.
// Transitions only go forward; setting the current status again is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, operatorID primitive.ObjectID, orderID, status string) (models.OrderStatus, error) {
	next, ok := models.ParseOrderStatus(strings.TrimSpace(status))
	if !ok {
		return "", ErrInvalidStatus
	}

	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(orderID))
	if err != nil {
		return "", ErrOrderNotFound
	}

	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}

	restaurant, err := s.restaurants.FindByID(ctx, order.Restaurant)
	if errors.Is(err, database.ErrNotFound) {
		return "", ErrRestaurantNotFound
	}
	if err != nil {
		return "", err
	}
	if restaurant.User != operatorID {
		return "", ErrNotRestaurantOwner
	}

	if next == order.Status {
		return next, nil
	}
	if next.Rank() < order.Status.Rank() {
		return "", ErrInvalidTransition
	}

	err = s.orders.UpdateStatus(ctx, order.ID, order.Status, next, s.now())
	if errors.Is(err, database.ErrNotFound) {
		return "", ErrStatusConflict
	}
	if err != nil {
		return "", err
	}

	log.Printf("[ORDER] [INFO] order %s moved %s -> %s by %s", order.ID.Hex(), order.Status, next, operatorID.Hex())
	return next, nil
}
