package domain

import (
	"time"
)

const (
	TicketTypeBug         = "bug"
	TicketTypeFeature     = "feature"
	TicketTypeImprovement = "improvement"

	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

type FeedbackTicket struct {
	ID            int64      `json:"id,string" form:"id"`
	Type          string     `gorm:"index" json:"type" form:"type"`
	Priority      string     `json:"priority" form:"priority"`
	Status        string     `gorm:"index" json:"status" form:"status"`
	Title         string     `json:"title" form:"title"`
	Description   string     `json:"description" form:"description"`
	ScreenshotURL string     `json:"screenshot_url" form:"screenshot_url"`
	AdminNotes    string     `json:"admin_notes" form:"admin_notes"`
	ReportedBy    string     `json:"reported_by" form:"reported_by"`
	ResolvedAt    *time.Time `json:"resolved_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (FeedbackTicket) TableName() string {
	return "feedback_tickets"
}

// IsTerminalStatus reports whether status ends a ticket's lifecycle.
func IsTerminalStatus(status string) bool {
	return status == TicketStatusResolved || status == TicketStatusClosed
}

// SetStatus applies a status transition. ResolvedAt is stamped when the
// ticket first reaches a terminal status and is never cleared by reopening.
func (t *FeedbackTicket) SetStatus(status string, now time.Time) {
	if IsTerminalStatus(status) && t.ResolvedAt == nil {
		t.ResolvedAt = &now
	}
	t.Status = status
}
