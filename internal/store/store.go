// Package store defines the repository contracts shared by the relational and
// document storage backends.
package store

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
)

// Repository is the CRUD contract over one entity.
//
// List returns every row, unordered and unpaginated. Get, Update and Delete fail
// with a NotFound error when the identifier does not exist. Create assigns the
// identifier in place. Update merges the patch over the current row and returns
// the merged row; the last writer wins.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, id int64, patch models.Patch[T]) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository adds lookups used by authentication.
type UserRepository interface {
	Repository[models.User]
	// FindByEmail returns the user with the given email or NotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Principal returns the user with the given email joined with its role name.
	Principal(ctx context.Context, email string) (*models.User, string, error)
}

// ProductRepository adds the product/brand/category composite reads.
type ProductRepository interface {
	Repository[models.Product]
	ListDetailed(ctx context.Context) ([]models.ProductView, error)
	GetDetailed(ctx context.Context, id int64) (*models.ProductView, error)
}

// OrderRepository reads orders with their owner and line items and runs the
// order creation workflow.
type OrderRepository interface {
	List(ctx context.Context, scope models.OrderScope) ([]models.OrderView, error)
	Get(ctx context.Context, id int64, scope models.OrderScope) (*models.OrderView, error)
	// Create inserts the header, every line and every stock decrement as one
	// unit. A line exceeding the available quantity fails with
	// InsufficientStock and nothing is written.
	Create(ctx context.Context, userID int64, lines []models.LineItem) (*models.OrderView, error)
}

// EventRepository adds participation.
type EventRepository interface {
	Repository[models.Event]
	// Join records a participation of userID in eventID. Duplicates are allowed.
	Join(ctx context.Context, eventID, userID int64) (*models.Event, *models.EventParticipant, error)
	// ListForUser returns the events userID joined, each once.
	ListForUser(ctx context.Context, userID int64) ([]models.Event, error)
	// Participants returns every participation row of an event.
	Participants(ctx context.Context, eventID int64) ([]models.EventParticipant, error)
}

// MessageRepository adds per-user listing.
type MessageRepository interface {
	Repository[models.Message]
	// ListForUser returns messages sent or received by userID.
	ListForUser(ctx context.Context, userID int64) ([]models.Message, error)
}

// VisitRepository adds per-user listing.
type VisitRepository interface {
	Repository[models.Visit]
	// ListForUser returns visits where userID is the visitor or the expert.
	ListForUser(ctx context.Context, userID int64) ([]models.Visit, error)
}

// Store is a storage backend.
type Store interface {
	Roles() Repository[models.Role]
	Users() UserRepository
	Brands() Repository[models.Brand]
	Categories() Repository[models.Category]
	Products() ProductRepository
	Orders() OrderRepository
	Events() EventRepository
	Messages() MessageRepository
	Visits() VisitRepository

	// Kind names the backend, e.g. "postgres" or "mongodb".
	Kind() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
