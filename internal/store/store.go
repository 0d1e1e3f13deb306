// Package store persists accounts, inventory and feedback in PostgreSQL.
package store

//go:generate mockgen -destination=../mocks/store.go -package=mocks dealership/internal/store AccountStore,InventoryStore,MessageStore

import (
	"context"
	"database/sql"
	"errors"

	"dealership/internal/models"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

var (
	// ErrNotFound means no row matched.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means a unique constraint rejected the write.
	ErrAlreadyExists = errors.New("already exists")
)

// AccountStore persists accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, req models.NewAccountRequest) (*models.Account, error)
	AccountByEmail(ctx context.Context, email string) (*models.Account, error)
	AccountByID(ctx context.Context, id int64) (*models.Account, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Account, error)
}

// InventoryStore persists classifications and vehicles.
type InventoryStore interface {
	ListClassifications(ctx context.Context) ([]models.Classification, error)
	AddClassification(ctx context.Context, name string) (*models.Classification, error)
	VehiclesByClassification(ctx context.Context, classificationID int64) ([]models.Vehicle, error)
	VehicleByID(ctx context.Context, id int64) (*models.Vehicle, error)
	AddVehicle(ctx context.Context, v models.Vehicle) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, v models.Vehicle) (*models.Vehicle, error)
}

// MessageStore persists client feedback.
type MessageStore interface {
	InsertMessage(ctx context.Context, accountID int64, text string) (*models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
}

// Postgres implements every store over one connection pool.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

var (
	_ AccountStore   = (*Postgres)(nil)
	_ InventoryStore = (*Postgres)(nil)
	_ MessageStore   = (*Postgres)(nil)
)

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgerrcode.UniqueViolation {
		return ErrAlreadyExists
	}

	return err
}
