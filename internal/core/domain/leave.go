package domain

import (
	"errors"
	"time"
)

// LeaveStatus represents the lifecycle state of a leave application.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// validLeaveTransitions defines the allowed state machine transitions.
// Rejected and Cancelled are modeled terminal states; no exposed operation
// currently triggers either of them.
var validLeaveTransitions = map[LeaveStatus][]LeaveStatus{
	LeavePending: {LeaveApproved, LeaveRejected, LeaveCancelled},
}

var ErrLeaveApplicationNotFound = errors.New("leave application not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	for _, allowed := range validLeaveTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LeaveApplication is a single request for time off. Start and end dates carry
// date-only semantics and the range is inclusive on both ends.
type LeaveApplication struct {
	ID          string      `json:"id"`
	EmployeeID  string      `json:"employee_id"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Reason      string      `json:"reason"`
	Status      LeaveStatus `json:"status"`
	ApproverID  string      `json:"approver_id,omitempty"`
	SubmittedAt time.Time   `json:"submitted_at"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty"`
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ExpandLeaveDays returns every calendar day in [start, end], both inclusive.
// An inverted range yields nil.
func ExpandLeaveDays(start, end time.Time) []time.Time {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
