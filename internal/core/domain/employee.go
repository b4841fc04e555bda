package domain

import (
	"errors"
	"time"
)

// DefaultLeaveEntitlement is granted to every newly provisioned employee.
const DefaultLeaveEntitlement = 20

var ErrManagerNotFound = errors.New("manager not found")
var ErrProfileExists = errors.New("profile already exists")
var ErrNoManagerAssigned = errors.New("employee has no manager assigned")

// Employee is keyed by the owning user's id; there is no separate identity.
type Employee struct {
	UserID    string    `json:"user_id"`
	Position  string    `json:"position"`
	JobTitle  string    `json:"job_title"`
	DateHired time.Time `json:"date_hired"`
	// ManagerID references the manager's user id. Empty means unassigned.
	ManagerID              string `json:"manager_id,omitempty"`
	TotalLeaveDaysEntitled int    `json:"total_leave_days_entitled"`
	LeaveDaysTaken         int    `json:"leave_days_taken"`
}

// Manager is keyed by the owning user's id. A freshly created manager starts
// inactive and stays invisible to promotion listings until another active
// manager promotes it.
type Manager struct {
	UserID         string `json:"user_id"`
	Department     string `json:"department"`
	OfficeLocation string `json:"office_location,omitempty"`
	IsActive       bool   `json:"is_active"`
}
