package orders

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodapp/internal/models"
)

// Stripe caps metadata at 50 keys of at most 500 characters each. Eight keys
// are fixed; every line item takes one more.
const (
	maxMetadataValue = 500
	MaxLineItems     = 40
)

// MaxLineQuantity is Stripe's upper bound for a single line item quantity.
const MaxLineQuantity = 999999

const (
	metaUserID          = "userId"
	metaRestaurantID    = "restaurantId"
	metaTotalAmount     = "totalAmount"
	metaItemCount       = "itemCount"
	metaDeliveryName    = "deliveryName"
	metaDeliveryEmail   = "deliveryEmail"
	metaDeliveryAddress = "deliveryAddress"
	metaDeliveryCity    = "deliveryCity"
	metaItemPrefix      = "cartItem_"
)

// checkoutSnapshot is everything the webhook needs to rebuild the order.
type checkoutSnapshot struct {
	UserID          primitive.ObjectID
	RestaurantID    primitive.ObjectID
	DeliveryDetails models.DeliveryDetails
	CartItems       []models.CartItem
	TotalAmount     int64
}

func encodeMetadata(snap checkoutSnapshot) (map[string]string, error) {
	if len(snap.CartItems) > MaxLineItems {
		return nil, ErrInvalidCart.WithMessage(fmt.Sprintf("cart cannot contain more than %d items", MaxLineItems))
	}

	meta := map[string]string{
		metaUserID:          snap.UserID.Hex(),
		metaRestaurantID:    snap.RestaurantID.Hex(),
		metaTotalAmount:     strconv.FormatInt(snap.TotalAmount, 10),
		metaItemCount:       strconv.Itoa(len(snap.CartItems)),
		metaDeliveryName:    snap.DeliveryDetails.Name,
		metaDeliveryEmail:   snap.DeliveryDetails.Email,
		metaDeliveryAddress: snap.DeliveryDetails.Address,
		metaDeliveryCity:    snap.DeliveryDetails.City,
	}
	for key, value := range meta {
		if len(value) > maxMetadataValue {
			return nil, ErrInvalidCart.WithMessage(fmt.Sprintf("%s is too long", key))
		}
	}

	for i, item := range snap.CartItems {
		encoded, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		if len(encoded) > maxMetadataValue {
			// The image URL is the only unbounded field; the order stays
			// valid without it.
			item.Image = ""
			if encoded, err = json.Marshal(item); err != nil {
				return nil, err
			}
		}
		if len(encoded) > maxMetadataValue {
			return nil, ErrInvalidCart.WithMessage(fmt.Sprintf("cart item %q is too large", item.Name))
		}
		meta[metaItemPrefix+strconv.Itoa(i)] = string(encoded)
	}
	return meta, nil
}

func decodeMetadata(meta map[string]string) (checkoutSnapshot, error) {
	var snap checkoutSnapshot
	var err error

	if snap.UserID, err = primitive.ObjectIDFromHex(meta[metaUserID]); err != nil {
		return snap, ErrInvalidMetadata.WithMessage("userId is missing or invalid")
	}
	if snap.RestaurantID, err = primitive.ObjectIDFromHex(meta[metaRestaurantID]); err != nil {
		return snap, ErrInvalidMetadata.WithMessage("restaurantId is missing or invalid")
	}
	if snap.TotalAmount, err = strconv.ParseInt(meta[metaTotalAmount], 10, 64); err != nil {
		return snap, ErrInvalidMetadata.WithMessage("totalAmount is missing or invalid")
	}

	count, err := strconv.Atoi(meta[metaItemCount])
	if err != nil || count <= 0 || count > MaxLineItems {
		return snap, ErrInvalidMetadata.WithMessage("itemCount is missing or invalid")
	}

	snap.DeliveryDetails = models.DeliveryDetails{
		Name:    meta[metaDeliveryName],
		Email:   meta[metaDeliveryEmail],
		Address: meta[metaDeliveryAddress],
		City:    meta[metaDeliveryCity],
	}

	snap.CartItems = make([]models.CartItem, 0, count)
	for i := 0; i < count; i++ {
		raw, ok := meta[metaItemPrefix+strconv.Itoa(i)]
		if !ok {
			return snap, ErrInvalidMetadata.WithMessage(fmt.Sprintf("cart item %d is missing", i))
		}
		var item models.CartItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return snap, ErrInvalidMetadata.WithMessage(fmt.Sprintf("cart item %d is malformed", i))
		}
		if item.Quantity <= 0 || item.Quantity > MaxLineQuantity || item.Price < 0 {
			return snap, ErrInvalidMetadata.WithMessage(fmt.Sprintf("cart item %d has an invalid price or quantity", i))
		}
		snap.CartItems = append(snap.CartItems, item)
	}
	return snap, nil
}
