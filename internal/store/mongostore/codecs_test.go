package mongostore

import (
	"testing"
	"time"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gorm.io/datatypes"
)

func TestMoneyCodec(t *testing.T) {
	reg := Registry()

	product := models.Product{ProductID: 3, Name: "Drill", Price: models.NewMoney(19.99)}
	raw, err := bson.MarshalWithRegistry(reg, product)
	require.NoError(t, err)

	price, err := bson.Raw(raw).LookupErr("price")
	require.NoError(t, err)
	assert.Equal(t, bsontype.Decimal128, price.Type)

	var decoded models.Product
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &decoded))
	assert.Equal(t, int64(3), decoded.ProductID)
	assert.Equal(t, "19.99", decoded.Price.String())
}

func TestMoneyDecodesNumbers(t *testing.T) {
	reg := Registry()

	for name, doc := range map[string]bson.M{
		"double": {"price": 12.5},
		"int32":  {"price": int32(12)},
		"int64":  {"price": int64(12)},
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := bson.Marshal(doc)
			require.NoError(t, err)

			var decoded struct {
				Price models.Money `bson:"price"`
			}
			require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &decoded))
			assert.True(t, decoded.Price.GreaterThanOrEqual(models.NewMoney(12).Decimal))
		})
	}

	raw, err := bson.Marshal(bson.M{"price": "twelve"})
	require.NoError(t, err)
	var bad struct {
		Price models.Money `bson:"price"`
	}
	assert.Error(t, bson.UnmarshalWithRegistry(reg, raw, &bad))
}

func TestDateCodec(t *testing.T) {
	reg := Registry()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	raw, err := bson.MarshalWithRegistry(reg, models.Event{EventID: 1, Name: "Launch", Date: datatypes.Date(day)})
	require.NoError(t, err)

	date, err := bson.Raw(raw).LookupErr("date")
	require.NoError(t, err)
	assert.Equal(t, bsontype.DateTime, date.Type)

	var decoded models.Event
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &decoded))
	assert.True(t, day.Equal(time.Time(decoded.Date)))
}
