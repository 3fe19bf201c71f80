// data.go
//
// Fixture builders for store and handler tests
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

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
)

// CreateBrand inserts a brand.
func CreateBrand(t testing.TB, st store.Store, name, country string) *models.Brand {
	t.Helper()
	b := &models.Brand{Name: name, Country: country}
	if err := st.Brands().Create(context.Background(), b); err != nil {
		t.Fatalf("Failed to create brand: %v", err)
	}
	return b
}

// CreateCategory inserts a category.
func CreateCategory(t testing.TB, st store.Store, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	if err := st.Categories().Create(context.Background(), c); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return c
}

// CreateProduct inserts a product with its own brand and category.
func CreateProduct(t testing.TB, st store.Store, name string, price float64, quantity int64) *models.Product {
	t.Helper()
	b := CreateBrand(t, st, name+" Brand", "US")
	c := CreateCategory(t, st, name+" Category")
	p := &models.Product{
		BrandID:           b.BrandID,
		CategoryID:        c.CategoryID,
		Name:              name,
		Description:       name + " description",
		Price:             models.NewMoney(price),
		QuantityAvailable: quantity,
	}
	if err := st.Products().Create(context.Background(), p); err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return p
}

// CreateUser inserts a user holding roleName with password "Passw0rd!".
func CreateUser(t testing.TB, st store.Store, email, roleName string) *models.User {
	t.Helper()
	ctx := context.Background()
	role, err := store.FindRole(ctx, st, roleName)
	if err != nil {
		t.Fatalf("Failed to find role %s: %v", roleName, err)
	}
	hash, err := services.HashPassword(Password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	u := &models.User{
		RoleID:       role.RoleID,
		FirstName:    "Test",
		LastName:     roleName,
		Email:        email,
		PhoneNumber:  "555-0100",
		PasswordHash: hash,
	}
	if err := st.Users().Create(ctx, u); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u
}

// CreateEvent inserts an event dated tomorrow.
func CreateEvent(t testing.TB, st store.Store, name string) *models.Event {
	t.Helper()
	e := &models.Event{
		Name:        name,
		Description: name + " description",
		Date:        models.EventDate(time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour)),
	}
	if err := st.Events().Create(context.Background(), e); err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	return e
}
