package ports

import (
	"context"
	"time"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

// LeaveRepository defines persistence for leave applications.
type LeaveRepository interface {
	Create(ctx context.Context, la *domain.LeaveApplication) error
	FindByID(ctx context.Context, id string) (*domain.LeaveApplication, error)
	// Approve transitions the application to approved only while it is still
	// pending, recording the approver and timestamp. A concurrent approval
	// loses with domain.ErrLeaveApplicationNotFound.
	Approve(ctx context.Context, id, approverID string, at time.Time) (*domain.LeaveApplication, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveApplication, error)
	ListApprovedByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveApplication, error)
}
