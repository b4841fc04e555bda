package ports

import (
	"context"
	"time"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

// CreateEmployeeProfileInput provisions an employee profile for an existing user.
type CreateEmployeeProfileInput struct {
	Position     string
	JobTitle     string
	DateHired    time.Time
	ManagerEmail string
}

// UpdateEmployeeProfileInput is a partial update: empty fields are left
// unchanged. First and last name rename the owning user record.
type UpdateEmployeeProfileInput struct {
	FirstName string
	LastName  string
	Position  string
	JobTitle  string
}

// ApplyLeaveInput carries a leave request. Dates are date-only, both inclusive.
type ApplyLeaveInput struct {
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// RecordSaleInput carries a new sales record.
type RecordSaleInput struct {
	CustomerName string
	ProductName  string
	Quantity     int
	UnitPrice    domain.Money
	SaleDate     time.Time
	Notes        string
}

// UpdateSaleInput is a partial update limited to the three mutable fields.
type UpdateSaleInput struct {
	SalesRecordID string
	CustomerName  string
	ProductName   string
	Notes         string
}

// LeaveApplicationView is the projection of a leave application used in
// profile reads.
type LeaveApplicationView struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Status    string
}

// NotificationView is the lightweight notification projection embedded in
// profile reads and pushed over the real-time channel.
type NotificationView struct {
	Message string `json:"message"`
	IsRead  bool   `json:"isRead"`
}

// EmployeeProfile is the full employee view.
type EmployeeProfile struct {
	FullName          string
	Email             string
	Position          string
	JobTitle          string
	DateHired         time.Time
	ManagerName       string
	ManagerEmail      string
	TotalLeaveDays    int
	LeaveDaysTaken    int
	LeaveApplications []LeaveApplicationView
	Notifications     []NotificationView
}

// SaleView is a single sales record projection.
type SaleView struct {
	ID           string
	CustomerName string
	ProductName  string
	Quantity     int
	UnitPrice    domain.Money
	TotalAmount  domain.Money
	SaleDate     time.Time
	Notes        string
}

// EmployeeService covers profile provisioning, the leave submission side of
// the workflow, and the sales ledger.
type EmployeeService interface {
	CreateProfile(ctx context.Context, userID string, in CreateEmployeeProfileInput) error
	GetProfile(ctx context.Context, userID string) (*EmployeeProfile, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateEmployeeProfileInput) error
	ApplyForLeave(ctx context.Context, userID string, in ApplyLeaveInput) error
	RecordSale(ctx context.Context, userID string, in RecordSaleInput) error
	UpdateSale(ctx context.Context, userID string, in UpdateSaleInput) error
	ListSales(ctx context.Context, userID string) ([]SaleView, error)
}
