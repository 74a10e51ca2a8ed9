package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketStatus represents where a ticket is in its lifecycle.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is a support request. ReporterID is fixed at creation.
type Ticket struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Status      TicketStatus   `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	Priority    TicketPriority `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	CategoryID  *uuid.UUID     `json:"categoryId" gorm:"type:char(36);index"`
	ReporterID  uuid.UUID      `json:"reporterId" gorm:"type:char(36);not null;index"`
	AssigneeID  *uuid.UUID     `json:"assigneeId" gorm:"type:char(36);index"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// Relations
	Category *Category       `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Reporter *User           `json:"-" gorm:"foreignKey:ReporterID"`
	Assignee *User           `json:"-" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
	Timeline []TimelineEvent `json:"-" gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ReportedBy reports whether the user is the ticket's reporter.
func (t *Ticket) ReportedBy(userID uuid.UUID) bool {
	return t.ReporterID == userID
}

// TicketSummary is one row of the ticket list, joined with its category
// and reporter at read time.
type TicketSummary struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Status        TicketStatus   `json:"status"`
	Priority      TicketPriority `json:"priority"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	CategoryID    *uuid.UUID     `json:"categoryId"`
	CategoryName  *string        `json:"categoryName"`
	CategoryColor *string        `json:"categoryColor"`
	ReporterID    uuid.UUID      `json:"reporterId"`
	ReporterName  *string        `json:"reporterName"`
	ReporterEmail *string        `json:"reporterEmail"`
	AssigneeID    *uuid.UUID     `json:"assigneeId"`
}

// TicketDetail is a single ticket with its category and people resolved.
type TicketDetail struct {
	Ticket
	CategoryName  *string  `json:"categoryName"`
	CategoryColor *string  `json:"categoryColor"`
	Reporter      *UserRef `json:"reporter"`
	Assignee      *UserRef `json:"assignee"`
}

// NewTicketDetail builds the detail view from a ticket whose relations
// have been preloaded.
func NewTicketDetail(t *Ticket) *TicketDetail {
	d := &TicketDetail{
		Ticket:   *t,
		Reporter: t.Reporter.Ref(),
		Assignee: t.Assignee.Ref(),
	}
	if t.Category != nil {
		d.CategoryName = &t.Category.Name
		d.CategoryColor = &t.Category.Color
	}
	return d
}

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}
