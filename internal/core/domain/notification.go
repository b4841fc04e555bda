package domain

import "time"

// NotificationType tags what workflow event produced a notification.
type NotificationType string

const (
	NotifyLeaveApproved     NotificationType = "LeaveApproved"
	NotifyLeaveRejected     NotificationType = "LeaveRejected"
	NotifyLeaveSubmitted    NotificationType = "LeaveApplicationSubmitted"
	NotifyLeaveApproaching  NotificationType = "LeaveApproaching"
	NotifyAccountActivated  NotificationType = "AccountActivated"
	NotifyNewSalesRecord    NotificationType = "NewSalesRecord"
	NotifyPerformanceReview NotificationType = "PerformanceReviewDue"
	NotifyReportReady       NotificationType = "ReportReady"
	NotifyAnnouncement      NotificationType = "GeneralAnnouncement"
)

// Notification is the durable record of a workflow event addressed to a user.
// The real-time push is best effort; this row is the source of truth.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
	// Optional link to the entity the notification is about.
	RelatedEntityID   string `json:"related_entity_id,omitempty"`
	RelatedEntityType string `json:"related_entity_type,omitempty"`
}
