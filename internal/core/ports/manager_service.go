package ports

import (
	"context"
)

// CreateManagerProfileInput provisions a manager profile for an existing user.
// New managers start inactive.
type CreateManagerProfileInput struct {
	Department     string
	OfficeLocation string
}

// UpdateManagerProfileInput is a partial update: empty fields are left
// unchanged. First and last name rename the owning user record.
type UpdateManagerProfileInput struct {
	FirstName      string
	LastName       string
	Department     string
	OfficeLocation string
}

// SubordinateView is a direct report summary with its leave applications.
type SubordinateView struct {
	FullName          string
	Email             string
	LeaveApplications []LeaveApplicationView
}

// ManagerProfile is the full manager view.
type ManagerProfile struct {
	FirstName      string
	LastName       string
	Email          string
	Department     string
	OfficeLocation string
	IsActive       bool
	Subordinates   []SubordinateView
	Notifications  []NotificationView
}

// TeamSaleView is a sales record projection annotated with the subordinate
// who owns it.
type TeamSaleView struct {
	SaleView
	EmployeeName string
}

// ManagerService covers the manager profile, leave approvals, the promotion
// workflow and team sales rollups.
type ManagerService interface {
	CreateProfile(ctx context.Context, userID string, in CreateManagerProfileInput) error
	GetProfile(ctx context.Context, userID string) (*ManagerProfile, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateManagerProfileInput) error
	ApproveLeave(ctx context.Context, userID, applicationID string) error
	// ListUnpromoted returns every inactive manager profile. An inactive
	// caller receives an empty list, not an error.
	ListUnpromoted(ctx context.Context, userID string) ([]ManagerProfile, error)
	// Promote activates the inactive manager with the given email. The caller
	// holds a manager session at the transport boundary; its own activation
	// state is not checked here.
	Promote(ctx context.Context, email string) error
	GetSubordinateProfile(ctx context.Context, userID, subordinateEmail string) (*EmployeeProfile, error)
	ListTeamSales(ctx context.Context, userID string) ([]TeamSaleView, error)
}
