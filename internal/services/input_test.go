package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/testutil"
	"github.com/localnerve/shopdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderInputLineItems(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []models.LineItem
		message string
	}{
		{"array", `{"products":[{"id":1,"quantity":2},{"productId":"3","quantity":"1"}]}`,
			[]models.LineItem{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}}, ""},
		{"single object", `{"products":{"id":4,"quantity":1}}`,
			[]models.LineItem{{ProductID: 4, Quantity: 1}}, ""},
		{"empty", `{"products":[]}`, nil, "The order has no products"},
		{"missing", `{}`, nil, "The order has no products"},
		{"no quantity", `{"products":[{"id":1}]}`, nil, "Each product in the order must have 'id' and 'quantity'"},
		{"zero quantity", `{"products":[{"id":1,"quantity":0}]}`, nil, "Quantity of product 1 must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in services.OrderInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			items, err := in.LineItems()
			if tt.message != "" {
				require.Error(t, err)
				assert.Equal(t, tt.message, types.AsCustomError(err).Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestJoinInput(t *testing.T) {
	var in services.JoinInput
	_, err := in.Event()
	assert.Equal(t, "Field 'eventId' is mandatory", types.AsCustomError(err).Message)

	require.NoError(t, json.Unmarshal([]byte(`{"eventId":"5"}`), &in))
	id, err := in.Event()
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestCheckProductReferences(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	ctx := context.Background()
	brand := testutil.CreateBrand(t, st, "Acme", "US")

	good := types.FlexInt64(brand.BrandID)
	missing := types.FlexInt64(42)

	assert.NoError(t, services.CheckProductReferences(ctx, st, models.ProductPatch{BrandID: &good}))

	err := services.CheckProductReferences(ctx, st, models.ProductPatch{BrandID: &missing})
	assert.Equal(t, "Brand 42 does not exist", types.AsCustomError(err).Message)

	err = services.CheckProductReferences(ctx, st, models.ProductPatch{BrandID: &good, CategoryID: &missing})
	assert.Equal(t, "Category 42 does not exist", types.AsCustomError(err).Message)
}

func TestHealthCheck(t *testing.T) {
	st := testutil.NewSQLiteStore(t)

	result := services.HealthCheck(context.Background(), testutil.Config(), st)
	assert.True(t, result.Healthy())
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "sqlite", result.Details["database_type"])

	cfg := testutil.Config()
	cfg.DBType = "postgres"
	cfg.DBHost = "127.0.0.1"
	cfg.DBPort = "1"
	result = services.HealthCheck(context.Background(), cfg, st)
	assert.False(t, result.Healthy())
	assert.Contains(t, result.Details, "database_dial_error")
}
