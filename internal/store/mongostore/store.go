// Package mongostore implements the repositories over MongoDB.
package mongostore

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store is the document storage backend.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	roles      *crud[models.Role]
	users      *userRepo
	brands     *crud[models.Brand]
	categories *crud[models.Category]
	products   *productRepo
	orders     *orderRepo
	events     *eventRepo
	messages   *messageRepo
	visits     *visitRepo
}

var _ store.Store = (*Store)(nil)

// New builds a Store over database dbName. The client must use Registry().
func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client: client,
		db:     db,
		roles: newCrud(db, collRoles, "Role", func(r *models.Role, id int64) { r.RoleID = id }),
		users: &userRepo{
			crud:  newCrud(db, collUsers, "User", func(u *models.User, id int64) { u.UserID = id }),
			roles: db.Collection(collRoles),
		},
		brands:     newCrud(db, collBrands, "Brand", func(b *models.Brand, id int64) { b.BrandID = id }),
		categories: newCrud(db, collCategories, "Category", func(c *models.Category, id int64) { c.CategoryID = id }),
		products: &productRepo{
			crud: newCrud(db, collProducts, "Product", func(p *models.Product, id int64) { p.ProductID = id }),
		},
		orders: &orderRepo{client: client, db: db},
		events: &eventRepo{
			crud:         newCrud(db, collEvents, "Event", func(e *models.Event, id int64) { e.EventID = id }),
			participants: db.Collection(collEventParticipants),
		},
		messages: &messageRepo{
			crud: newCrud(db, collMessages, "Message", func(m *models.Message, id int64) { m.MessageID = id }),
		},
		visits: &visitRepo{
			crud: newCrud(db, collVisits, "Visit", func(v *models.Visit, id int64) { v.VisitID = id }),
		},
	}
}

// Database exposes the handle for schema setup and tests.
func (s *Store) Database() *mongo.Database { return s.db }

func (s *Store) Roles() store.Repository[models.Role]         { return s.roles }
func (s *Store) Users() store.UserRepository                  { return s.users }
func (s *Store) Brands() store.Repository[models.Brand]       { return s.brands }
func (s *Store) Categories() store.Repository[models.Category] { return s.categories }
func (s *Store) Products() store.ProductRepository            { return s.products }
func (s *Store) Orders() store.OrderRepository                { return s.orders }
func (s *Store) Events() store.EventRepository                { return s.events }
func (s *Store) Messages() store.MessageRepository            { return s.messages }
func (s *Store) Visits() store.VisitRepository                { return s.visits }

func (s *Store) Kind() string { return "mongodb" }

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
