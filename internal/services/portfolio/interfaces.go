package portfolio

import (
	"context"
	"io"
	"time"

	"cardfolio/internal/models"
	"cardfolio/internal/repositories"
	"cardfolio/internal/services/catalog"

	"github.com/shopspring/decimal"
)

// Service defines the card portfolio operations
type Service interface {
	// Read paths
	Snapshot(ctx context.Context) (*repositories.RecordSet, error)
	List(ctx context.Context, opts ListOptions) (*repositories.RecordSet, error)
	Get(ctx context.Context, id string) (*models.CreditCard, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Reminders(ctx context.Context) ([]models.CreditCard, error)
	Catalog(ctx context.Context) ([]catalog.Entry, error)

	// Card lifecycle
	Add(ctx context.Context, input models.CardInput) (*models.CreditCard, error)
	Edit(ctx context.Context, id string, input models.CardInput) (*models.CreditCard, error)
	Cancel(ctx context.Context, id string) (*models.CreditCard, error)
	Reactivate(ctx context.Context, id string) (*models.CreditCard, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, orders map[string]int) error

	// Fees and bonuses
	RecordFeeAction(ctx context.Context, id string, action models.FeeAction) (*models.CreditCard, error)
	UpdateSpend(ctx context.Context, id string, total decimal.Decimal) (*models.CreditCard, error)
	AddSpend(ctx context.Context, id string, delta decimal.Decimal) (*models.CreditCard, error)

	// Tags
	ListTags(ctx context.Context) ([]string, error)
	CreateTags(ctx context.Context, tags []string) ([]string, error)
	DeleteTags(ctx context.Context, tags []string) ([]string, error)

	// Export
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context, w io.Writer) error
}

// MetricsCollector receives one call per completed operation.
type MetricsCollector interface {
	RecordOperationDuration(op string, d time.Duration)
	RecordOperationResult(op string, result string)
}
