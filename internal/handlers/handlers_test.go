// handlers_test.go
//
// HTTP tests for the shopdb routes
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of shopdb.
// shopdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// shopdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with shopdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers_test

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	_ "github.com/localnerve/shopdb/docs/api"
	"github.com/localnerve/shopdb/internal/handlers"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store/sqlstore"
	"github.com/localnerve/shopdb/internal/testutil"
	"github.com/localnerve/shopdb/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type env struct {
	app  *fiber.App
	st   *sqlstore.Store
	auth *services.AuthService
}

func setup(t *testing.T, production bool) *env {
	t.Helper()
	st := testutil.NewSQLiteStore(t)
	cfg := testutil.Config()
	auth := services.NewAuthService(st, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(production),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Get("/health", (&handlers.HealthHandler{Config: cfg, Store: st}).Check)
	handlers.RegisterRoutes(app.Group("/api"), st, auth)
	app.Use(handlers.NotFound)
	return &env{app: app, st: st, auth: auth}
}

func TestBrandScenario(t *testing.T) {
	e := setup(t, false)

	resp := testutil.Request(t, e.app, http.MethodPost, "/api/brands", map[string]string{"name": "Acme", "country": "US"}, "")
	testutil.AssertStatus(t, resp, http.StatusCreated)
	var brand models.Brand
	testutil.ParseJSON(t, resp, &brand)
	assert.Equal(t, int64(1), brand.BrandID)

	resp = testutil.Request(t, e.app, http.MethodPut, "/api/brands/1", map[string]string{"country": "CA"}, "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	testutil.ParseJSON(t, resp, &brand)
	assert.Equal(t, models.Brand{BrandID: 1, Name: "Acme", Country: "CA"}, brand)

	resp = testutil.Request(t, e.app, http.MethodDelete, "/api/brands/1", nil, "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var msg utils.MessageResponseStruct
	testutil.ParseJSON(t, resp, &msg)
	assert.Equal(t, "Successfully removed brand with id: 1", msg.Message)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/brands/1", nil, "")
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	var errBody utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &errBody)
	assert.False(t, errBody.Ok)
	assert.Equal(t, "notFound", errBody.Type)
	assert.NotEmpty(t, errBody.StackTrace)
}

func TestValidationErrors(t *testing.T) {
	e := setup(t, true)

	resp := testutil.Request(t, e.app, http.MethodPost, "/api/brands", map[string]string{"name": "Acme"}, "")
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	var errBody utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &errBody)
	assert.Equal(t, "Field 'country' is mandatory", errBody.Message)
	assert.Empty(t, errBody.StackTrace)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/brands/abc", nil, "")
	testutil.AssertStatus(t, resp, http.StatusBadRequest)

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/products", map[string]interface{}{
		"brandId": 42, "categoryId": 1, "name": "Drill", "description": "Cordless", "price": 10, "quantityAvailable": 1,
	}, "")
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.ParseJSON(t, resp, &errBody)
	assert.Equal(t, "Brand 42 does not exist", errBody.Message)
}

func TestProductsDetailed(t *testing.T) {
	e := setup(t, false)
	product := testutil.CreateProduct(t, e.st, "Drill", 49.99, 3)

	resp := testutil.Request(t, e.app, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ProductID), nil, "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var view models.ProductView
	testutil.ParseJSON(t, resp, &view)
	assert.Equal(t, "Drill Brand", view.Brand.Name)
	assert.Equal(t, "Drill Category", view.Category.Name)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/products", nil, "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var views []models.ProductView
	testutil.ParseJSON(t, resp, &views)
	assert.Len(t, views, 1)
}

func TestProductPrices(t *testing.T) {
	e := setup(t, true)
	brand := testutil.CreateBrand(t, e.st, "Acme", "US")
	category := testutil.CreateCategory(t, e.st, "Garden")
	body := func(price string) string {
		return fmt.Sprintf(`{"brandId":%d,"categoryId":%d,"name":"Rake","description":"Steel","price":%s,"quantityAvailable":0}`,
			brand.BrandID, category.CategoryID, price)
	}

	var errBody utils.ErrorResponseStruct
	resp := testutil.Request(t, e.app, http.MethodPost, "/api/products", json.RawMessage(body("1.005")), "")
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.ParseJSON(t, resp, &errBody)
	assert.Equal(t, "Field 'price' must have at most 2 decimal places", errBody.Message)

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/products", json.RawMessage(body("10000000000")), "")
	testutil.AssertStatus(t, resp, http.StatusBadRequest)

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/products", json.RawMessage(body("0")), "")
	testutil.AssertStatus(t, resp, http.StatusCreated)
	var created models.Product
	testutil.ParseJSON(t, resp, &created)

	path := fmt.Sprintf("/api/products/%d", created.ProductID)
	resp = testutil.Request(t, e.app, http.MethodGet, path, nil, "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var view models.ProductView
	testutil.ParseJSON(t, resp, &view)
	assert.True(t, view.Price.IsZero())
	assert.Equal(t, int64(0), view.QuantityAvailable)

	resp = testutil.Request(t, e.app, http.MethodPut, path, json.RawMessage(`{"price":12.345}`), "")
	testutil.AssertStatus(t, resp, http.StatusBadRequest)

	resp = testutil.Request(t, e.app, http.MethodPut, path, json.RawMessage(`{"quantityAvailable":"7"}`), "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var updated models.Product
	testutil.ParseJSON(t, resp, &updated)
	assert.Equal(t, "Rake", updated.Name)
	assert.True(t, updated.Price.IsZero())
	assert.Equal(t, int64(7), updated.QuantityAvailable)
}

func TestRegisterLoginCurrent(t *testing.T) {
	e := setup(t, false)

	resp := testutil.Request(t, e.app, http.MethodPost, "/api/users/register", map[string]string{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@shopdb.test", "phoneNumber": "555", "password": "s3cret",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusCreated)

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/users/login", map[string]string{
		"email": "ada@shopdb.test", "password": "wrong",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/users/login", map[string]string{
		"email": "ada@shopdb.test", "password": "s3cret",
	}, "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var tokens services.TokenResponse
	testutil.ParseJSON(t, resp, &tokens)
	require.NotEmpty(t, tokens.AccessToken)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/users/current", nil, tokens.AccessToken)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var principal models.Principal
	testutil.ParseJSON(t, resp, &principal)
	assert.Equal(t, "ada@shopdb.test", principal.Email)
	assert.Equal(t, models.RoleUser, principal.Role)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/users/current", nil, "")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestUserAdministration(t *testing.T) {
	e := setup(t, false)
	user, userToken := testutil.Account(t, e.st, e.auth, "user@shopdb.test", models.RoleUser)
	_, adminToken := testutil.Account(t, e.st, e.auth, "admin@shopdb.test", models.RoleAdmin)

	resp := testutil.Request(t, e.app, http.MethodGet, "/api/users", nil, userToken)
	testutil.AssertStatus(t, resp, http.StatusForbidden)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/users", nil, adminToken)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var users []map[string]interface{}
	testutil.ParseJSON(t, resp, &users)
	assert.Len(t, users, 2)
	assert.NotContains(t, users[0], "passwordHash")

	path := fmt.Sprintf("/api/users/%d", user.UserID)
	resp = testutil.Request(t, e.app, http.MethodPut, path, map[string]interface{}{"roleId": 99}, adminToken)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)

	resp = testutil.Request(t, e.app, http.MethodPut, path, map[string]interface{}{"phoneNumber": "555-9999"}, adminToken)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var updated models.User
	testutil.ParseJSON(t, resp, &updated)
	assert.Equal(t, "555-9999", updated.PhoneNumber)
	assert.Equal(t, user.Email, updated.Email)
}

func TestOrders(t *testing.T) {
	e := setup(t, false)
	_, aliceToken := testutil.Account(t, e.st, e.auth, "alice@shopdb.test", models.RoleUser)
	_, bobToken := testutil.Account(t, e.st, e.auth, "bob@shopdb.test", models.RoleUser)
	_, adminToken := testutil.Account(t, e.st, e.auth, "admin@shopdb.test", models.RoleAdmin)
	product := testutil.CreateProduct(t, e.st, "Kettle", 20, 5)

	resp := testutil.Request(t, e.app, http.MethodPost, "/api/orders",
		map[string]interface{}{"products": map[string]interface{}{"id": product.ProductID, "quantity": 6}}, aliceToken)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	var errBody utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &errBody)
	assert.Equal(t, "insufficientStock", errBody.Type)

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/orders",
		map[string]interface{}{"products": []map[string]interface{}{{"id": product.ProductID, "quantity": 2}}}, aliceToken)
	testutil.AssertStatus(t, resp, http.StatusCreated)
	var order models.OrderView
	testutil.ParseJSON(t, resp, &order)
	require.Len(t, order.Products, 1)
	assert.Equal(t, "Kettle", order.Products[0].Name)

	path := fmt.Sprintf("/api/orders/%d", order.OrderID)
	testutil.AssertStatus(t, testutil.Request(t, e.app, http.MethodGet, path, nil, aliceToken), http.StatusOK)
	testutil.AssertStatus(t, testutil.Request(t, e.app, http.MethodGet, path, nil, bobToken), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Request(t, e.app, http.MethodGet, path, nil, adminToken), http.StatusOK)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/orders", nil, bobToken)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var orders []models.OrderView
	testutil.ParseJSON(t, resp, &orders)
	assert.Empty(t, orders)

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/orders", map[string]interface{}{"products": []interface{}{}}, aliceToken)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)

	testutil.AssertStatus(t, testutil.Request(t, e.app, http.MethodGet, "/api/orders", nil, ""), http.StatusUnauthorized)
}

func TestEvents(t *testing.T) {
	e := setup(t, false)
	user, userToken := testutil.Account(t, e.st, e.auth, "fan@shopdb.test", models.RoleUser)
	_, expertToken := testutil.Account(t, e.st, e.auth, "expert@shopdb.test", models.RoleExpert)

	body := map[string]string{"name": "Launch", "description": "New line", "date": "2030-01-15"}
	testutil.AssertStatus(t, testutil.Request(t, e.app, http.MethodPost, "/api/events", body, userToken), http.StatusForbidden)

	resp := testutil.Request(t, e.app, http.MethodPost, "/api/events", body, expertToken)
	testutil.AssertStatus(t, resp, http.StatusCreated)
	var event models.Event
	testutil.ParseJSON(t, resp, &event)

	for i := 0; i < 2; i++ {
		resp = testutil.Request(t, e.app, http.MethodPost, "/api/events/join", map[string]interface{}{"eventId": event.EventID}, userToken)
		testutil.AssertStatus(t, resp, http.StatusOK)
	}
	var msg utils.MessageResponseStruct
	testutil.ParseJSON(t, resp, &msg)
	assert.Equal(t, "You have joined the event: Launch", msg.Message)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/events/user", nil, userToken)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var mine []models.Event
	testutil.ParseJSON(t, resp, &mine)
	assert.Len(t, mine, 1)

	path := fmt.Sprintf("/api/events/%d/participants", event.EventID)
	testutil.AssertStatus(t, testutil.Request(t, e.app, http.MethodGet, path, nil, userToken), http.StatusForbidden)
	resp = testutil.Request(t, e.app, http.MethodGet, path, nil, expertToken)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var participants []models.EventParticipant
	testutil.ParseJSON(t, resp, &participants)
	require.Len(t, participants, 2)
	assert.Equal(t, user.UserID, participants[0].UserID)

	path = fmt.Sprintf("/api/events/%d", event.EventID)
	resp = testutil.Request(t, e.app, http.MethodPut, path, map[string]string{"date": "2031-03-04"}, expertToken)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var moved models.Event
	testutil.ParseJSON(t, resp, &moved)
	assert.Equal(t, "Launch", moved.Name)
	assert.Equal(t, "New line", moved.Description)
	assert.Equal(t, "2031-03-04", time.Time(moved.Date).Format("2006-01-02"))

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/events/join", map[string]interface{}{"eventId": 999}, userToken)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Request(t, e.app, http.MethodGet, "/api/events/999/participants", nil, expertToken), http.StatusNotFound)
}

func TestMessagesAndVisits(t *testing.T) {
	e := setup(t, false)
	alice, aliceToken := testutil.Account(t, e.st, e.auth, "alice@shopdb.test", models.RoleUser)
	expert, expertToken := testutil.Account(t, e.st, e.auth, "expert@shopdb.test", models.RoleExpert)

	resp := testutil.Request(t, e.app, http.MethodPost, "/api/messages",
		map[string]interface{}{"recipientId": expert.UserID, "content": "Can we meet?"}, aliceToken)
	testutil.AssertStatus(t, resp, http.StatusCreated)
	var message models.Message
	testutil.ParseJSON(t, resp, &message)
	assert.Equal(t, alice.UserID, message.SenderID)
	assert.False(t, message.Date.IsZero())

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/messages",
		map[string]interface{}{"recipientId": 999, "content": "Hello?"}, aliceToken)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/messages", nil, expertToken)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var inbox []models.Message
	testutil.ParseJSON(t, resp, &inbox)
	assert.Len(t, inbox, 1)

	resp = testutil.Request(t, e.app, http.MethodPost, "/api/visits",
		map[string]interface{}{"expertId": expert.UserID, "date": "2030-02-01T10:00", "note": "Garden"}, aliceToken)
	testutil.AssertStatus(t, resp, http.StatusCreated)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/visits", nil, expertToken)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var visits []models.Visit
	testutil.ParseJSON(t, resp, &visits)
	require.Len(t, visits, 1)
	assert.Equal(t, alice.UserID, visits[0].VisitorID)
}

func TestHealthAndFallback(t *testing.T) {
	e := setup(t, false)

	resp := testutil.Request(t, e.app, http.MethodGet, "/health", nil, "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var health services.HealthCheckResult
	testutil.ParseJSON(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)

	resp = testutil.Request(t, e.app, http.MethodGet, "/api/nothing-here", nil, "")
	testutil.AssertStatus(t, resp, http.StatusNotFound)
}

func TestAPIDocsMatchRoutes(t *testing.T) {
	e := setup(t, false)

	doc, err := swag.ReadDoc()
	require.NoError(t, err)
	var spec struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))
	require.Equal(t, "/api", spec.BasePath)

	documented := map[string]bool{}
	for path, methods := range spec.Paths {
		for method := range methods {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	mounted := map[string]bool{}
	for _, r := range e.app.GetRoutes(true) {
		if r.Method == http.MethodHead || !strings.HasPrefix(r.Path, spec.BasePath+"/") {
			continue
		}
		path := strings.ReplaceAll(strings.TrimPrefix(r.Path, spec.BasePath), ":id", "{id}")
		mounted[r.Method+" "+path] = true
	}

	keys := func(m map[string]bool) []string {
		out := make([]string, 0, len(m))
		for k := range m {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, keys(mounted), keys(documented))
}
