package ports

import (
	"context"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

// SalesRepository defines persistence for sales records.
type SalesRepository interface {
	Create(ctx context.Context, sr *domain.SalesRecord) error
	// FindByIDForEmployee scopes the lookup to the owning employee so one
	// employee can never touch another's record.
	FindByIDForEmployee(ctx context.Context, id, employeeID string) (*domain.SalesRecord, error)
	// UpdateDetails overwrites only customer name, product name and notes.
	// Quantity, unit price, sale date and the computed total stay immutable.
	UpdateDetails(ctx context.Context, sr *domain.SalesRecord) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.SalesRecord, error)
}
