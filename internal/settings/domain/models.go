package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/booksync/internal/quickbooks"
	"gorm.io/gorm"
)

// ConnectionSettings is the singleton row holding the QuickBooks connection
// state. Client credentials come from configuration, not storage; only the
// material obtained during the OAuth exchange is persisted.
type ConnectionSettings struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	RealmID      string    `json:"realm_id"`
	CompanyName  string    `json:"company_name"`
	Environment  string    `json:"environment"`
	ConnectedAt  time.Time `json:"connected_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// SingletonID keys the one settings row.
const SingletonID int64 = 1

var (
	// ErrNotConnected is wrapped with the name of the missing field.
	ErrNotConnected = errors.New("quickbooks not connected")
)

type Repository interface {
	Get(ctx context.Context, db *gorm.DB) (*ConnectionSettings, error)
	Save(ctx context.Context, db *gorm.DB, settings *ConnectionSettings) error
}

type Service interface {
	Get(ctx context.Context) (ConnectionSettings, error)
	Save(ctx context.Context, settings ConnectionSettings) error
	// Credentials resolves the persisted tokens into per-call auth material,
	// or fails naming the missing field.
	Credentials(ctx context.Context) (quickbooks.Credentials, error)
}
