package mongostore_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/shopdb/internal/database"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/store"
	"github.com/localnerve/shopdb/internal/testutil"
	"github.com/localnerve/shopdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMongoStore runs the store workflows against a replica set container.
func TestMongoStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	tc, err := testutil.StartDatabase(t, "mongodb")
	if err != nil {
		t.Skipf("mongodb container unavailable: %v", err)
	}
	t.Cleanup(func() { tc.Terminate(t) })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	st, err := database.Open(ctx, tc.Config)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(context.Background(), st) })
	assert.Equal(t, "mongodb", st.Kind())
	testutil.SeedRoles(t, st)

	t.Run("crud", func(t *testing.T) {
		brand := &models.Brand{Name: "Acme", Country: "US"}
		require.NoError(t, st.Brands().Create(ctx, brand))
		assert.Equal(t, int64(1), brand.BrandID)

		country := "CA"
		updated, err := st.Brands().Update(ctx, brand.BrandID, models.BrandPatch{Country: &country})
		require.NoError(t, err)
		assert.Equal(t, "Acme", updated.Name)
		assert.Equal(t, "CA", updated.Country)

		require.NoError(t, st.Brands().Delete(ctx, brand.BrandID))
		_, err = st.Brands().Get(ctx, brand.BrandID)
		assert.True(t, types.IsType(err, types.TypeNotFound))

		// Identifiers are never reused
		next := &models.Brand{Name: "Globex", Country: "US"}
		require.NoError(t, st.Brands().Create(ctx, next))
		assert.Equal(t, int64(2), next.BrandID)
	})

	t.Run("orders", func(t *testing.T) {
		user := testutil.CreateUser(t, st, "buyer@shopdb.test", models.RoleUser)
		product := testutil.CreateProduct(t, st, "Kettle", 20, 5)

		_, err := st.Orders().Create(ctx, user.UserID, []models.LineItem{{ProductID: product.ProductID, Quantity: 6}})
		assert.True(t, types.IsType(err, types.TypeInsufficientStock))

		view, err := st.Orders().Create(ctx, user.UserID, []models.LineItem{{ProductID: product.ProductID, Quantity: 5}})
		require.NoError(t, err)
		require.Len(t, view.Products, 1)
		assert.Equal(t, "Kettle", view.Products[0].Name)
		assert.Equal(t, "buyer@shopdb.test", view.User.Email)

		p, err := st.Products().Get(ctx, product.ProductID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), p.QuantityAvailable)

		detailed, err := st.Products().GetDetailed(ctx, product.ProductID)
		require.NoError(t, err)
		assert.Equal(t, "Kettle Brand", detailed.Brand.Name)
		assert.Equal(t, "20", detailed.Price.String())
	})

	t.Run("events", func(t *testing.T) {
		user := testutil.CreateUser(t, st, "fan@shopdb.test", models.RoleUser)
		event := testutil.CreateEvent(t, st, "Launch")

		for i := 0; i < 2; i++ {
			_, _, err := st.Events().Join(ctx, event.EventID, user.UserID)
			require.NoError(t, err)
		}

		participants, err := st.Events().Participants(ctx, event.EventID)
		require.NoError(t, err)
		assert.Len(t, participants, 2)

		events, err := st.Events().ListForUser(ctx, user.UserID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Launch", events[0].Name)
	})

	t.Run("unique email", func(t *testing.T) {
		first := testutil.CreateUser(t, st, "taken@shopdb.test", models.RoleUser)
		err := st.Users().Create(ctx, &models.User{
			RoleID: first.RoleID, FirstName: "Second", LastName: "User",
			Email: "taken@shopdb.test", PhoneNumber: "555-0102", PasswordHash: "hash",
		})
		assert.ErrorIs(t, err, types.ErrDuplicate)
		assert.True(t, types.IsType(err, types.TypeValidation))
	})

	t.Run("roles", func(t *testing.T) {
		role, err := store.FindRole(ctx, st, "admin")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, role.Name)
	})
}
