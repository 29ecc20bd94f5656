package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Restaurant struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	RestaurantName string             `bson:"restaurantName" json:"restaurantName"`
	City           string             `bson:"city" json:"city"`
	Country        string             `bson:"country" json:"country"`
	DeliveryTime   int                `bson:"deliveryTime" json:"deliveryTime"`
	Cuisines       StringList         `bson:"cuisines" json:"cuisines"`
	ImageURL       string             `bson:"imageUrl" json:"imageUrl"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RestaurantWithMenus is the API view of a restaurant.
type RestaurantWithMenus struct {
	Restaurant `bson:",inline"`
	Menus      []Menu `bson:"menus" json:"menus"`
}

// RestaurantSearch holds the parameters of a restaurant search. Zero values
// mean "no constraint"; Limit 0 returns every match.
type RestaurantSearch struct {
	Text     string
	Query    string
	Cuisines []string
	Skip     int64
	Limit    int64
}

type Menu struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Restaurant  primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       int64              `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
