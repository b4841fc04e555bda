package ports

import (
	"context"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

// EmployeeRepository defines persistence for employee profiles, keyed by the
// owning user id.
type EmployeeRepository interface {
	// Create inserts the profile. A second insert for the same user id fails
	// with domain.ErrProfileExists (primary key on the user id).
	Create(ctx context.Context, e *domain.Employee) error
	FindByUserID(ctx context.Context, userID string) (*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	// DecrementEntitlement atomically subtracts days from the employee's
	// remaining entitlement.
	DecrementEntitlement(ctx context.Context, userID string, days int) error
	ListByManager(ctx context.Context, managerID string) ([]*domain.Employee, error)
	// ListWithEntitlement returns every employee whose entitlement is above zero.
	ListWithEntitlement(ctx context.Context) ([]*domain.Employee, error)
}

// ManagerRepository defines persistence for manager profiles, keyed by the
// owning user id.
type ManagerRepository interface {
	Create(ctx context.Context, m *domain.Manager) error
	FindByUserID(ctx context.Context, userID string) (*domain.Manager, error)
	Update(ctx context.Context, m *domain.Manager) error
	ListInactive(ctx context.Context) ([]*domain.Manager, error)
	// Activate flips is_active for the given user id only when the profile is
	// currently inactive. Absent or already-active profiles fail with
	// domain.ErrManagerNotFound, which makes racing promotions single-winner.
	Activate(ctx context.Context, userID string) error
}
