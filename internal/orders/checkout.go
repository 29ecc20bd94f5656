package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodapp/internal/database"
	"foodapp/internal/models"
	"foodapp/internal/payment"
)

// CheckoutItem is a cart line as sent by the client. Name, image and price
// are informational; the restaurant's menu is authoritative.
type CheckoutItem struct {
	MenuID   string
	Name     string
	Image    string
	Price    int64
	Quantity int64
}

type CheckoutInput struct {
	RestaurantID    string
	DeliveryDetails models.DeliveryDetails
	CartItems       []CheckoutItem
}

type CheckoutResult struct {
	Session     *payment.Session
	CartItems   []models.CartItem
	TotalAmount int64
}

// CreateCheckoutSession validates and reprices the cart, then opens a
// provider checkout session carrying everything needed to create the order
// later. No order is written here.
func (s *Service) CreateCheckoutSession(ctx context.Context, userID primitive.ObjectID, in CheckoutInput) (*CheckoutResult, error) {
	menuIDs, err := validateCart(in.CartItems)
	if err != nil {
		return nil, err
	}

	restaurantID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.RestaurantID))
	if err != nil {
		return nil, ErrRestaurantNotFound
	}
	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.priceCart(ctx, restaurant.ID, in.CartItems, menuIDs)
	if err != nil {
		return nil, err
	}
	total, ok := models.CartTotal(items)
	if !ok {
		return nil, ErrInvalidCart.WithMessage("cart total is too large")
	}

	meta, err := encodeMetadata(checkoutSnapshot{
		UserID:          userID,
		RestaurantID:    restaurant.ID,
		DeliveryDetails: in.DeliveryDetails,
		CartItems:       items,
		TotalAmount:     total,
	})
	if err != nil {
		return nil, err
	}

	lineItems := make([]payment.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, payment.LineItem{
			Name:       item.Name,
			Image:      item.Image,
			UnitAmount: item.Price,
			Quantity:   item.Quantity,
		})
	}

	session, err := s.payments.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		Currency:         s.cfg.Currency,
		SuccessURL:       s.cfg.FrontendURL + "/order/status",
		CancelURL:        s.cfg.FrontendURL + "/cart",
		CustomerEmail:    in.DeliveryDetails.Email,
		AllowedCountries: s.cfg.AllowedCountries,
		LineItems:        lineItems,
		Metadata:         meta,
		IdempotencyKey:   s.newKey(),
	})
	if err != nil {
		return nil, err
	}
	if session.URL == "" {
		return nil, payment.ErrProvider.WithMessage("payment provider returned no checkout url")
	}

	log.Printf("[CHECKOUT] [INFO] session %s opened for user %s at restaurant %s total=%d",
		session.ID, userID.Hex(), restaurant.ID.Hex(), total)

	return &CheckoutResult{Session: session, CartItems: items, TotalAmount: total}, nil
}

// validateCart checks shape only and returns the parsed menu ids in cart
// order.
func validateCart(items []CheckoutItem) ([]primitive.ObjectID, error) {
	if len(items) == 0 {
		return nil, ErrInvalidCart.WithMessage("cart is empty")
	}
	if len(items) > MaxLineItems {
		return nil, ErrInvalidCart.WithMessage(fmt.Sprintf("cart cannot contain more than %d items", MaxLineItems))
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidCart.WithMessage(fmt.Sprintf("quantity of cart item %d must be greater than zero", i))
		}
		if item.Quantity > MaxLineQuantity {
			return nil, ErrInvalidCart.WithMessage(fmt.Sprintf("quantity of cart item %d cannot exceed %d", i, MaxLineQuantity))
		}
		if item.Price < 0 {
			return nil, ErrInvalidCart.WithMessage(fmt.Sprintf("price of cart item %d must not be negative", i))
		}
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.MenuID))
		if err != nil {
			return nil, ErrInvalidCart.WithMessage(fmt.Sprintf("cart item %d has an invalid menuId", i))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// priceCart snapshots each line from the restaurant's menu. Any menu id that
// does not belong to the restaurant rejects the whole cart.
func (s *Service) priceCart(ctx context.Context, restaurantID primitive.ObjectID, items []CheckoutItem, ids []primitive.ObjectID) ([]models.CartItem, error) {
	menus, err := s.menus.FindByIDs(ctx, restaurantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Menu, len(menus))
	for _, menu := range menus {
		byID[menu.ID] = menu
	}

	out := make([]models.CartItem, 0, len(items))
	for i, id := range ids {
		menu, ok := byID[id]
		if !ok {
			return nil, ErrInvalidCart.WithMessage(fmt.Sprintf("menu item %s is not offered by this restaurant", id.Hex()))
		}
		if items[i].Price != 0 && items[i].Price != menu.Price {
			log.Printf("[CHECKOUT] [INFO] client price %d for menu %s replaced by %d", items[i].Price, id.Hex(), menu.Price)
		}
		out = append(out, models.CartItem{
			MenuID:   menu.ID,
			Name:     menu.Name,
			Image:    menu.Image,
			Price:    menu.Price,
			Quantity: items[i].Quantity,
		})
	}
	return out, nil
}
