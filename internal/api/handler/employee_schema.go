package handler

import (
	"time"

	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// --- Request / Response types ---

type createEmployeeProfileRequest struct {
	Position     string `json:"position"      validate:"required"`
	JobTitle     string `json:"job_title"     validate:"required"`
	DateHired    string `json:"date_hired"    validate:"required,datetime=2006-01-02"`
	ManagerEmail string `json:"manager_email" validate:"required,email"`
}

type updateEmployeeProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Position  string `json:"position,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`
}

type applyLeaveRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"     validate:"required"`
}

type recordSaleRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	ProductName  string `json:"product_name"  validate:"required"`
	Quantity     int    `json:"quantity"      validate:"required,gt=0"`
	UnitPrice    string `json:"unit_price"    validate:"required"`
	SaleDate     string `json:"sale_date"     validate:"required,datetime=2006-01-02"`
	Notes        string `json:"notes,omitempty"`
}

type updateSaleRequest struct {
	CustomerName string `json:"customer_name,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Response-only types owned by the transport layer, intentionally separate
// from ports/domain types so the JSON contract is not coupled to internal
// service changes.

type leaveApplicationResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

type employeeProfileResponse struct {
	FullName          string                     `json:"full_name"`
	Email             string                     `json:"email"`
	Position          string                     `json:"position"`
	JobTitle          string                     `json:"job_title"`
	DateHired         string                     `json:"date_hired"`
	ManagerName       string                     `json:"manager_name"`
	ManagerEmail      string                     `json:"manager_email"`
	TotalLeaveDays    int                        `json:"total_leave_days_entitled"`
	LeaveDaysTaken    int                        `json:"leave_days_taken"`
	LeaveApplications []leaveApplicationResponse `json:"leave_applications"`
	Notifications     []ports.NotificationView   `json:"notifications"`
}

type saleResponse struct {
	ID           string       `json:"id"`
	CustomerName string       `json:"customer_name"`
	ProductName  string       `json:"product_name"`
	Quantity     int          `json:"quantity"`
	UnitPrice    domain.Money `json:"unit_price"`
	TotalAmount  domain.Money `json:"total_amount"`
	SaleDate     string       `json:"sale_date"`
	Notes        string       `json:"notes,omitempty"`
}

type listSalesResponse struct {
	Data []saleResponse `json:"data"`
}

const dateLayout = "2006-01-02"

// parseDate is only called after validate:"datetime=2006-01-02" passed.
func parseDate(s string) time.Time {
	t, _ := time.ParseInLocation(dateLayout, s, time.UTC)
	return t
}

func toLeaveResponses(in []ports.LeaveApplicationView) []leaveApplicationResponse {
	out := make([]leaveApplicationResponse, 0, len(in))
	for _, la := range in {
		out = append(out, leaveApplicationResponse{
			ID:        la.ID,
			StartDate: la.StartDate.Format(dateLayout),
			EndDate:   la.EndDate.Format(dateLayout),
			Reason:    la.Reason,
			Status:    la.Status,
		})
	}
	return out
}

func toEmployeeProfileResponse(p *ports.EmployeeProfile) employeeProfileResponse {
	return employeeProfileResponse{
		FullName:          p.FullName,
		Email:             p.Email,
		Position:          p.Position,
		JobTitle:          p.JobTitle,
		DateHired:         p.DateHired.Format(dateLayout),
		ManagerName:       p.ManagerName,
		ManagerEmail:      p.ManagerEmail,
		TotalLeaveDays:    p.TotalLeaveDays,
		LeaveDaysTaken:    p.LeaveDaysTaken,
		LeaveApplications: toLeaveResponses(p.LeaveApplications),
		Notifications:     p.Notifications,
	}
}

func toSaleResponse(s ports.SaleView) saleResponse {
	return saleResponse{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		ProductName:  s.ProductName,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		TotalAmount:  s.TotalAmount,
		SaleDate:     s.SaleDate.Format(dateLayout),
		Notes:        s.Notes,
	}
}
