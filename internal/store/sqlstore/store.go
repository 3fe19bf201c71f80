// Package sqlstore implements the repositories over a relational database with gorm.
package sqlstore

import (
	"context"
	"fmt"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/store"
	"gorm.io/gorm"
)

// Store is the relational storage backend. The gorm handle owns the pool;
// every repository call checks a connection out and returns it when done.
type Store struct {
	db *gorm.DB

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

// New builds a Store over an open gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		roles:      newCrud[models.Role](db, "Role"),
		users:      &userRepo{crud: newCrud[models.User](db, "User"), db: db},
		brands:     newCrud[models.Brand](db, "Brand"),
		categories: newCrud[models.Category](db, "Category"),
		products:   &productRepo{crud: newCrud[models.Product](db, "Product"), db: db},
		orders:     &orderRepo{db: db},
		events:     &eventRepo{crud: newCrud[models.Event](db, "Event"), db: db},
		messages:   &messageRepo{crud: newCrud[models.Message](db, "Message"), db: db},
		visits:     &visitRepo{crud: newCrud[models.Visit](db, "Visit"), db: db},
	}
}

// DB exposes the gorm handle for migrations and tests.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Roles() store.Repository[models.Role]         { return s.roles }
func (s *Store) Users() store.UserRepository                  { return s.users }
func (s *Store) Brands() store.Repository[models.Brand]       { return s.brands }
func (s *Store) Categories() store.Repository[models.Category] { return s.categories }
func (s *Store) Products() store.ProductRepository            { return s.products }
func (s *Store) Orders() store.OrderRepository                { return s.orders }
func (s *Store) Events() store.EventRepository                { return s.events }
func (s *Store) Messages() store.MessageRepository            { return s.messages }
func (s *Store) Visits() store.VisitRepository                { return s.visits }

// Kind returns the gorm dialector name.
func (s *Store) Kind() string {
	return s.db.Dialector.Name()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
