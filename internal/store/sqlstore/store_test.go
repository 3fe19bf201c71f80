package sqlstore_test

import (
	"context"
	"testing"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/testutil"
	"github.com/localnerve/shopdb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBrandLifecycle(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	brand := &models.Brand{Name: "Acme", Country: "US"}
	require.NoError(t, st.Brands().Create(ctx, brand))
	assert.Equal(t, int64(1), brand.BrandID)

	updated, err := st.Brands().Update(ctx, brand.BrandID, models.BrandPatch{Country: strPtr("CA")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "CA", updated.Country)

	got, err := st.Brands().Get(ctx, brand.BrandID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	require.NoError(t, st.Brands().Delete(ctx, brand.BrandID))

	_, err = st.Brands().Get(ctx, brand.BrandID)
	assert.True(t, types.IsType(err, types.TypeNotFound))
	assert.True(t, types.IsType(st.Brands().Delete(ctx, brand.BrandID), types.TypeNotFound))

	_, err = st.Brands().Update(ctx, 99, models.BrandPatch{Name: strPtr("Nope")})
	assert.True(t, types.IsType(err, types.TypeNotFound))
}

func TestListIsEmptySliceNotNil(t *testing.T) {
	st := testutil.NewSQLiteStore(t)

	brands, err := st.Brands().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, brands)
	assert.Empty(t, brands)
}

func TestProductDetailed(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	drill := testutil.CreateProduct(t, st, "Drill", 49.99, 3)
	testutil.CreateProduct(t, st, "Lamp", 12, 8)

	views, err := st.Products().ListDetailed(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Drill", views[0].Name)
	assert.Equal(t, "Drill Brand", views[0].Brand.Name)
	assert.Equal(t, "Drill Category", views[0].Category.Name)

	view, err := st.Products().GetDetailed(ctx, drill.ProductID)
	require.NoError(t, err)
	assert.Equal(t, drill.BrandID, view.Brand.BrandID)
	assert.Equal(t, "49.99", view.Price.String())

	_, err = st.Products().GetDetailed(ctx, 404)
	assert.True(t, types.IsType(err, types.TypeNotFound))
}

func TestUserPrincipal(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	testutil.CreateUser(t, st, "expert@shopdb.test", models.RoleExpert)

	user, role, err := st.Users().Principal(ctx, "expert@shopdb.test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleExpert, role)
	assert.Equal(t, "Test", user.FirstName)

	_, err = st.Users().FindByEmail(ctx, "nobody@shopdb.test")
	assert.True(t, types.IsType(err, types.TypeNotFound))
}

func TestOrderCreate(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, st, "buyer@shopdb.test", models.RoleUser)
	product := testutil.CreateProduct(t, st, "Kettle", 20, 5)

	_, err := st.Orders().Create(ctx, user.UserID, []models.LineItem{{ProductID: product.ProductID, Quantity: 6}})
	require.Error(t, err)
	assert.True(t, types.IsType(err, types.TypeInsufficientStock))
	assert.Equal(t, "Product Kettle is not available in this quantity", types.AsCustomError(err).Message)

	orders, err := st.Orders().List(ctx, models.OrderScope{All: true})
	require.NoError(t, err)
	assert.Empty(t, orders)
	unchanged, err := st.Products().Get(ctx, product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), unchanged.QuantityAvailable)

	view, err := st.Orders().Create(ctx, user.UserID, []models.LineItem{{ProductID: product.ProductID, Quantity: 5}})
	require.NoError(t, err)
	assert.Equal(t, user.UserID, view.UserID)
	assert.Equal(t, "buyer@shopdb.test", view.User.Email)
	require.Len(t, view.Products, 1)
	assert.Equal(t, models.OrderLine{ProductID: product.ProductID, Name: "Kettle", Quantity: 5}, view.Products[0])

	drained, err := st.Products().Get(ctx, product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), drained.QuantityAvailable)
}

func TestOrderCreateRollsBackEveryLine(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, st, "buyer@shopdb.test", models.RoleUser)
	plenty := testutil.CreateProduct(t, st, "Tent", 100, 10)
	scarce := testutil.CreateProduct(t, st, "Kite", 15, 1)

	_, err := st.Orders().Create(ctx, user.UserID, []models.LineItem{
		{ProductID: plenty.ProductID, Quantity: 2},
		{ProductID: scarce.ProductID, Quantity: 1},
		{ProductID: scarce.ProductID, Quantity: 1},
	})
	assert.True(t, types.IsType(err, types.TypeInsufficientStock))

	p, err := st.Products().Get(ctx, plenty.ProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.QuantityAvailable)
	s, err := st.Products().Get(ctx, scarce.ProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.QuantityAvailable)

	_, err = st.Orders().Create(ctx, user.UserID, []models.LineItem{{ProductID: 999, Quantity: 1}})
	assert.True(t, types.IsType(err, types.TypeNotFound))
}

func TestOrderScopeAndLineOrder(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, st, "alice@shopdb.test", models.RoleUser)
	bob := testutil.CreateUser(t, st, "bob@shopdb.test", models.RoleUser)
	first := testutil.CreateProduct(t, st, "Speaker", 80, 10)
	second := testutil.CreateProduct(t, st, "Notebook", 4, 10)

	// Lines are posted out of product order
	mine, err := st.Orders().Create(ctx, alice.UserID, []models.LineItem{
		{ProductID: second.ProductID, Quantity: 1},
		{ProductID: first.ProductID, Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, mine.Products, 2)
	assert.Equal(t, first.ProductID, mine.Products[0].ProductID)
	assert.Equal(t, second.ProductID, mine.Products[1].ProductID)

	_, err = st.Orders().Create(ctx, bob.UserID, []models.LineItem{{ProductID: first.ProductID, Quantity: 1}})
	require.NoError(t, err)

	aliceOrders, err := st.Orders().List(ctx, models.OrderScope{UserID: alice.UserID})
	require.NoError(t, err)
	require.Len(t, aliceOrders, 1)
	assert.Equal(t, mine.OrderID, aliceOrders[0].OrderID)

	all, err := st.Orders().List(ctx, models.OrderScope{All: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = st.Orders().Get(ctx, mine.OrderID, models.OrderScope{UserID: bob.UserID})
	assert.True(t, types.IsType(err, types.TypeNotFound))
}

func TestEventJoin(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, st, "fan@shopdb.test", models.RoleUser)
	event := testutil.CreateEvent(t, st, "Launch")

	for i := 0; i < 2; i++ {
		joined, participant, err := st.Events().Join(ctx, event.EventID, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, "Launch", joined.Name)
		assert.Equal(t, user.UserID, participant.UserID)
	}

	participants, err := st.Events().Participants(ctx, event.EventID)
	require.NoError(t, err)
	assert.Len(t, participants, 2)

	events, err := st.Events().ListForUser(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.EventID, events[0].EventID)

	_, _, err = st.Events().Join(ctx, 404, user.UserID)
	assert.True(t, types.IsType(err, types.TypeNotFound))
}

func TestMessagesAndVisitsForUser(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, st, "alice@shopdb.test", models.RoleUser)
	bob := testutil.CreateUser(t, st, "bob@shopdb.test", models.RoleUser)
	carol := testutil.CreateUser(t, st, "carol@shopdb.test", models.RoleExpert)

	require.NoError(t, st.Messages().Create(ctx, &models.Message{SenderID: alice.UserID, RecipientID: bob.UserID, Content: "hi"}))
	require.NoError(t, st.Messages().Create(ctx, &models.Message{SenderID: bob.UserID, RecipientID: carol.UserID, Content: "hey"}))
	require.NoError(t, st.Visits().Create(ctx, &models.Visit{VisitorID: alice.UserID, ExpertID: carol.UserID}))

	bobs, err := st.Messages().ListForUser(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Len(t, bobs, 2)

	alices, err := st.Messages().ListForUser(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Len(t, alices, 1)

	visits, err := st.Visits().ListForUser(ctx, carol.UserID)
	require.NoError(t, err)
	assert.Len(t, visits, 1)

	none, err := st.Visits().ListForUser(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoreKindAndPing(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	assert.Equal(t, "sqlite", st.Kind())
	assert.NoError(t, st.Ping(context.Background()))
}
