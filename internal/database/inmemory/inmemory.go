// Package inmemory provides map-backed repositories with the same contracts
// as the Mongo ones. Tests and local runs without a database use it.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodapp/internal/database"
	"foodapp/internal/models"
)

// NewStore returns a Store whose repositories share nothing but live for the
// lifetime of the returned value.
func NewStore() *database.Store {
	return &database.Store{
		Users:       NewUserRepository(),
		Restaurants: NewRestaurantRepository(),
		Menus:       NewMenuRepository(),
		Orders:      NewOrderRepository(),
		Ping:        func(context.Context) error { return nil },
	}
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]models.User)}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return database.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.findFirst(func(u models.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByVerificationToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	return r.findFirst(func(u models.User) bool {
		return token != "" && u.VerificationToken == token &&
			u.VerificationTokenExpiresAt != nil && u.VerificationTokenExpiresAt.After(now)
	})
}

func (r *UserRepository) FindByResetTokenHash(_ context.Context, hash string, now time.Time) (*models.User, error) {
	return r.findFirst(func(u models.User) bool {
		return hash != "" && u.ResetPasswordTokenHash == hash &&
			u.ResetPasswordTokenExpiresAt != nil && u.ResetPasswordTokenExpiresAt.After(now)
	})
}

func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return database.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) findFirst(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			u := user
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

type RestaurantRepository struct {
	mu          sync.RWMutex
	restaurants map[primitive.ObjectID]models.Restaurant
}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{restaurants: make(map[primitive.ObjectID]models.Restaurant)}
}

func (r *RestaurantRepository) Create(_ context.Context, restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.restaurants {
		if existing.User == restaurant.User {
			return database.ErrDuplicate
		}
	}
	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	r.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (r *RestaurantRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) FindByOwner(_ context.Context, userID primitive.ObjectID) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, restaurant := range r.restaurants {
		if restaurant.User == userID {
			found := restaurant
			return &found, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *RestaurantRepository) Update(_ context.Context, restaurant *models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.restaurants[restaurant.ID]; !ok {
		return database.ErrNotFound
	}
	r.restaurants[restaurant.ID] = *restaurant
	return nil
}

// Search mirrors database.RestaurantSearchFilter with case-insensitive
// substring matching.
func (r *RestaurantRepository) Search(_ context.Context, search models.RestaurantSearch) ([]models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	text := strings.ToLower(strings.TrimSpace(search.Text))
	query := strings.ToLower(strings.TrimSpace(search.Query))
	wanted := map[string]struct{}{}
	for _, c := range search.Cuisines {
		if c = strings.TrimSpace(c); c != "" {
			wanted[c] = struct{}{}
		}
	}

	out := make([]models.Restaurant, 0)
	for _, restaurant := range r.restaurants {
		if text != "" && !containsAny(text, restaurant.RestaurantName, restaurant.City, restaurant.Country) {
			continue
		}
		if query != "" && !containsAny(query, append([]string{restaurant.RestaurantName}, restaurant.Cuisines...)...) {
			continue
		}
		if len(wanted) > 0 && !hasAnyCuisine(restaurant.Cuisines, wanted) {
			continue
		}
		out = append(out, restaurant)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if search.Limit > 0 {
		start := min(int(search.Skip), len(out))
		end := min(start+int(search.Limit), len(out))
		out = out[start:end]
	}
	return out, nil
}

func containsAny(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func hasAnyCuisine(cuisines []string, wanted map[string]struct{}) bool {
	for _, c := range cuisines {
		if _, ok := wanted[c]; ok {
			return true
		}
	}
	return false
}

type MenuRepository struct {
	mu    sync.RWMutex
	menus map[primitive.ObjectID]models.Menu
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{menus: make(map[primitive.ObjectID]models.Menu)}
}

func (r *MenuRepository) Create(_ context.Context, menu *models.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if menu.ID.IsZero() {
		menu.ID = primitive.NewObjectID()
	}
	r.menus[menu.ID] = *menu
	return nil
}

func (r *MenuRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	menu, ok := r.menus[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &menu, nil
}

func (r *MenuRepository) FindByIDs(_ context.Context, restaurantID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Menu, 0, len(ids))
	for _, id := range ids {
		if menu, ok := r.menus[id]; ok && menu.Restaurant == restaurantID {
			out = append(out, menu)
		}
	}
	return out, nil
}

func (r *MenuRepository) ListByRestaurant(_ context.Context, restaurantID primitive.ObjectID) ([]models.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Menu, 0)
	for _, menu := range r.menus {
		if menu.Restaurant == restaurantID {
			out = append(out, menu)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MenuRepository) Update(_ context.Context, menu *models.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.menus[menu.ID]; !ok {
		return database.ErrNotFound
	}
	r.menus[menu.ID] = *menu
	return nil
}

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]models.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[primitive.ObjectID]models.Order)}
}

func (r *OrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.CheckoutSessionID != "" {
		for _, existing := range r.orders {
			if existing.CheckoutSessionID == order.CheckoutSessionID {
				return database.ErrDuplicate
			}
		}
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	stored := *order
	stored.CartItems = append([]models.CartItem(nil), order.CartItems...)
	r.orders[order.ID] = stored
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &order, nil
}

func (r *OrderRepository) FindByCheckoutSession(_ context.Context, sessionID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.CheckoutSessionID == sessionID {
			found := order
			return &found, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *OrderRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.list(func(o models.Order) bool { return o.User == userID }), nil
}

func (r *OrderRepository) ListByRestaurant(_ context.Context, restaurantID primitive.ObjectID) ([]models.Order, error) {
	return r.list(func(o models.Order) bool { return o.Restaurant == restaurantID }), nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to models.OrderStatus, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok || order.Status != from {
		return database.ErrNotFound
	}
	order.Status = to
	order.UpdatedAt = now
	r.orders[id] = order
	return nil
}

// Count returns the number of stored orders.
func (r *OrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func (r *OrderRepository) list(match func(models.Order) bool) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0)
	for _, order := range r.orders {
		if match(order) {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
