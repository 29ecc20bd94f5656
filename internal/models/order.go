package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "OutForDelivery"
	StatusDelivered      OrderStatus = "Delivered"
)

// OrderStatuses lists every status in fulfillment order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
}

// ParseOrderStatus accepts only the exact status names.
func ParseOrderStatus(value string) (OrderStatus, bool) {
	for _, s := range OrderStatuses {
		if string(s) == value {
			return s, true
		}
	}
	return "", false
}

// Rank is the position of the status in the lifecycle, or -1 when unknown.
func (s OrderStatus) Rank() int {
	for i, candidate := range OrderStatuses {
		if candidate == s {
			return i
		}
	}
	return -1
}

// CartItem is a priced line snapshotted into an order at checkout.
type CartItem struct {
	MenuID   primitive.ObjectID `bson:"menuId" json:"menuId"`
	Name     string             `bson:"name" json:"name"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
	Price    int64              `bson:"price" json:"price"`
	Quantity int64              `bson:"quantity" json:"quantity"`
}

// LineTotal is price*quantity in currency subunits. ok is false for negative
// inputs or when the product does not fit in an int64.
func (i CartItem) LineTotal() (total int64, ok bool) {
	if i.Price < 0 || i.Quantity < 0 {
		return 0, false
	}
	if i.Price != 0 && i.Quantity > math.MaxInt64/i.Price {
		return 0, false
	}
	return i.Price * i.Quantity, true
}

// CartTotal sums all line totals. ok is false if any line or the running sum
// overflows.
func CartTotal(items []CartItem) (total int64, ok bool) {
	for _, item := range items {
		line, ok := item.LineTotal()
		if !ok || total > math.MaxInt64-line {
			return 0, false
		}
		total += line
	}
	return total, true
}

// DeliveryDetails captures where the order goes. Immutable once the order exists.
type DeliveryDetails struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
}

// Order defines the persisted order document.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User              primitive.ObjectID `bson:"user" json:"user"`
	Restaurant        primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	DeliveryDetails   DeliveryDetails    `bson:"deliveryDetails" json:"deliveryDetails"`
	CartItems         []CartItem         `bson:"cartItems" json:"cartItems"`
	TotalAmount       int64              `bson:"totalAmount" json:"totalAmount"`
	Status            OrderStatus        `bson:"status" json:"status"`
	CheckoutSessionID string             `bson:"checkoutSessionId" json:"checkoutSessionId"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
