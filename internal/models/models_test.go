package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseStringListAcceptsJSONAndCSV(t *testing.T) {
	fromJSON, err := ParseStringList(`["Indian", " Chinese ", "indian", ""]`)
	require.NoError(t, err)
	assert.Equal(t, StringList{"Indian", "Chinese"}, fromJSON)

	fromCSV, err := ParseStringList("Thai, Sushi ,,thai")
	require.NoError(t, err)
	assert.Equal(t, StringList{"Thai", "Sushi"}, fromCSV)

	_, err = ParseStringList(`["unterminated"`)
	assert.Error(t, err)
}

func TestStringListDecodesLegacyString(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"cuisines": "Pizza, Pasta"})
	require.NoError(t, err)

	var doc struct {
		Cuisines StringList `bson:"cuisines"`
	}
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, StringList{"Pizza", "Pasta"}, doc.Cuisines)
}

func TestStringListEncodesNilAsEmptyArray(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"cuisines": StringList(nil)})
	require.NoError(t, err)

	var decoded bson.M
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	arr, ok := decoded["cuisines"].(bson.A)
	require.True(t, ok, "cuisines should be stored as an array")
	assert.Empty(t, arr)
}

func TestParseOrderStatusIsExact(t *testing.T) {
	status, ok := ParseOrderStatus("OutForDelivery")
	assert.True(t, ok)
	assert.Equal(t, StatusOutForDelivery, status)

	for _, bad := range []string{"Bogus", "pending", "", " Confirmed"} {
		_, ok := ParseOrderStatus(bad)
		assert.False(t, ok, bad)
	}
}

func TestOrderStatusRankFollowsLifecycle(t *testing.T) {
	for i := 1; i < len(OrderStatuses); i++ {
		assert.Greater(t, OrderStatuses[i].Rank(), OrderStatuses[i-1].Rank())
	}
	assert.Equal(t, -1, OrderStatus("Bogus").Rank())
}

func TestCartTotalIsIntegerSum(t *testing.T) {
	items := []CartItem{{Price: 500, Quantity: 2}, {Price: 300, Quantity: 1}}
	total, ok := CartTotal(items)
	assert.True(t, ok)
	assert.Equal(t, int64(1300), total)

	total, ok = CartTotal(nil)
	assert.True(t, ok)
	assert.Equal(t, int64(0), total)
}

func TestCartTotalDetectsOverflow(t *testing.T) {
	_, ok := CartItem{Price: 500, Quantity: math.MaxInt64/500 + 1}.LineTotal()
	assert.False(t, ok)

	line, ok := CartItem{Price: 500, Quantity: math.MaxInt64 / 500}.LineTotal()
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64/500*500), line)

	_, ok = CartItem{Price: 0, Quantity: math.MaxInt64}.LineTotal()
	assert.True(t, ok)

	_, ok = CartItem{Price: 1, Quantity: -1}.LineTotal()
	assert.False(t, ok)

	_, ok = CartTotal([]CartItem{
		{Price: 1, Quantity: math.MaxInt64},
		{Price: 1, Quantity: 1},
	})
	assert.False(t, ok)
}
