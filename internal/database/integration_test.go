package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/shopdb/internal/database"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/testutil"
	"github.com/localnerve/shopdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpenRelational migrates a real server and runs an order through it.
func TestOpenRelational(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	for _, dbType := range []string{"postgres", "mysql"} {
		t.Run(dbType, func(t *testing.T) {
			tc, err := testutil.StartDatabase(t, dbType)
			if err != nil {
				t.Skipf("%s container unavailable: %v", dbType, err)
			}
			t.Cleanup(func() { tc.Terminate(t) })

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			st, err := database.Open(ctx, tc.Config)
			require.NoError(t, err)
			t.Cleanup(func() { database.Close(context.Background(), st) })
			require.NoError(t, st.Ping(ctx))
			testutil.SeedRoles(t, st)

			user := testutil.CreateUser(t, st, "buyer@shopdb.test", models.RoleUser)
			product := testutil.CreateProduct(t, st, "Lamp", 12.5, 2)

			_, err = st.Orders().Create(ctx, user.UserID, []models.LineItem{{ProductID: product.ProductID, Quantity: 3}})
			assert.True(t, types.IsType(err, types.TypeInsufficientStock))

			view, err := st.Orders().Create(ctx, user.UserID, []models.LineItem{{ProductID: product.ProductID, Quantity: 2}})
			require.NoError(t, err)
			assert.Equal(t, int64(2), view.Products[0].Quantity)

			detailed, err := st.Products().GetDetailed(ctx, product.ProductID)
			require.NoError(t, err)
			assert.Equal(t, int64(0), detailed.QuantityAvailable)
			assert.True(t, detailed.Price.Equal(models.NewMoney(12.5).Decimal))
		})
	}
}
