package handler

import (
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// --- Request / Response types ---

type createManagerProfileRequest struct {
	Department     string `json:"department"       validate:"required"`
	OfficeLocation string `json:"office_location,omitempty"`
}

type updateManagerProfileRequest struct {
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Department     string `json:"department,omitempty"`
	OfficeLocation string `json:"office_location,omitempty"`
}

type approveLeaveRequest struct {
	ApplicationID string `json:"application_id" validate:"required"`
}

type promoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type subordinateResponse struct {
	FullName          string                     `json:"full_name"`
	Email             string                     `json:"email"`
	LeaveApplications []leaveApplicationResponse `json:"leave_applications"`
}

type managerProfileResponse struct {
	FirstName      string                   `json:"first_name"`
	LastName       string                   `json:"last_name"`
	Email          string                   `json:"email"`
	Department     string                   `json:"department"`
	OfficeLocation string                   `json:"office_location,omitempty"`
	IsActive       bool                     `json:"is_active"`
	Subordinates   []subordinateResponse    `json:"subordinates"`
	Notifications  []ports.NotificationView `json:"notifications"`
}

type teamSaleResponse struct {
	saleResponse
	EmployeeName string `json:"employee_name"`
}

type listTeamSalesResponse struct {
	Data []teamSaleResponse `json:"data"`
}

type listUnpromotedResponse struct {
	Data []managerProfileResponse `json:"data"`
}

func toManagerProfileResponse(p ports.ManagerProfile) managerProfileResponse {
	subs := make([]subordinateResponse, 0, len(p.Subordinates))
	for _, s := range p.Subordinates {
		subs = append(subs, subordinateResponse{
			FullName:          s.FullName,
			Email:             s.Email,
			LeaveApplications: toLeaveResponses(s.LeaveApplications),
		})
	}
	return managerProfileResponse{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Department:     p.Department,
		OfficeLocation: p.OfficeLocation,
		IsActive:       p.IsActive,
		Subordinates:   subs,
		Notifications:  p.Notifications,
	}
}
