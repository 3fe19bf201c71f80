package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/middleware"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
)

// RegisterRoutes mounts every resource under api.
func RegisterRoutes(api fiber.Router, st store.Store, auth *services.AuthService) {
	authed := middleware.Auth(auth)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleExpert)
	admin := middleware.RequireRoles(models.RoleAdmin)

	brands := &ResourceHandler[models.Brand, models.BrandPatch]{Repo: st.Brands(), Entity: "brand"}
	api.Get("/brands", brands.List)
	api.Post("/brands", brands.Create)
	api.Get("/brands/:id", brands.Get)
	api.Put("/brands/:id", brands.Update)
	api.Delete("/brands/:id", brands.Delete)

	categories := &ResourceHandler[models.Category, models.CategoryPatch]{Repo: st.Categories(), Entity: "category"}
	api.Get("/categories", categories.List)
	api.Post("/categories", categories.Create)
	api.Get("/categories/:id", categories.Get)
	api.Put("/categories/:id", categories.Update)
	api.Delete("/categories/:id", categories.Delete)

	products := NewProductHandler(st)
	api.Get("/products", products.List)
	api.Post("/products", products.Create)
	api.Get("/products/:id", products.Get)
	api.Put("/products/:id", products.Update)
	api.Delete("/products/:id", products.Delete)

	roles := &ResourceHandler[models.Role, models.RolePatch]{Repo: st.Roles(), Entity: "role"}
	api.Get("/roles", roles.List)
	api.Post("/roles", roles.Create)
	api.Get("/roles/:id", roles.Get)
	api.Put("/roles/:id", roles.Update)
	api.Delete("/roles/:id", roles.Delete)

	users := &UserHandler{Auth: auth}
	api.Post("/users/register", users.Register)
	api.Post("/users/login", users.Login)
	api.Get("/users/current", authed, users.Current)

	accounts := &ResourceHandler[models.User, models.UserPatch]{
		Repo:   st.Users(),
		Entity: "user",
		Check: func(ctx context.Context, patch models.UserPatch) error {
			if patch.RoleID == nil {
				return nil
			}
			return services.CheckRole(ctx, st, patch.RoleID.Int64())
		},
	}
	api.Get("/users", authed, admin, accounts.List)
	api.Get("/users/:id", authed, admin, accounts.Get)
	api.Put("/users/:id", authed, admin, accounts.Update)
	api.Delete("/users/:id", authed, admin, accounts.Delete)

	orders := &OrderHandler{Store: st}
	api.Get("/orders", authed, orders.List)
	api.Post("/orders", authed, orders.Create)
	api.Get("/orders/:id", authed, orders.Get)

	events := NewEventHandler(st)
	api.Get("/events", events.List)
	api.Get("/events/user", authed, events.ListForUser)
	api.Post("/events", authed, staff, events.Create)
	api.Post("/events/join", authed, events.Join)
	api.Get("/events/:id", events.Get)
	api.Put("/events/:id", authed, staff, events.Update)
	api.Delete("/events/:id", authed, staff, events.Delete)
	api.Get("/events/:id/participants", authed, staff, events.Participants)

	messages := &MessageHandler{Store: st}
	api.Get("/messages", authed, messages.List)
	api.Post("/messages", authed, messages.Create)

	visits := &VisitHandler{Store: st}
	api.Get("/visits", authed, visits.List)
	api.Post("/visits", authed, visits.Create)
}
