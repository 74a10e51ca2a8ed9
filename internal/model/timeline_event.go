package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimelineEventType identifies what a timeline entry records.
type TimelineEventType string

const (
	EventCreated        TimelineEventType = "created"
	EventStatusChange   TimelineEventType = "status_change"
	EventPriorityChange TimelineEventType = "priority_change"
	EventAssigneeChange TimelineEventType = "assignee_change"
	EventCategoryChange TimelineEventType = "category_change"
	EventCommented      TimelineEventType = "commented"
)

// TimelineEvent is an immutable audit record of a ticket's creation or of
// one field change. Rows are deleted with their ticket.
type TimelineEvent struct {
	ID        uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	TicketID  uuid.UUID         `json:"ticketId" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID         `json:"userId" gorm:"type:char(36);not null;index"`
	Type      TimelineEventType `json:"type" gorm:"type:varchar(32);not null"`
	OldValue  *string           `json:"oldValue" gorm:"type:text"`
	NewValue  *string           `json:"newValue" gorm:"type:text"`
	CreatedAt time.Time         `json:"createdAt" gorm:"index"`
	// Seq orders events written in the same batch.
	Seq       int               `json:"-" gorm:"not null;default:0"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName keeps the table name used by existing deployments.
func (TimelineEvent) TableName() string {
	return "ticket_timeline"
}

// BeforeCreate sets UUID before creating the record.
func (e *TimelineEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TimelineEntry is a timeline event joined with the acting user's name.
type TimelineEntry struct {
	ID        uuid.UUID         `json:"id"`
	Type      TimelineEventType `json:"type"`
	OldValue  *string           `json:"oldValue"`
	NewValue  *string           `json:"newValue"`
	CreatedAt time.Time         `json:"createdAt"`
	UserID    uuid.UUID         `json:"userId"`
	UserName  *string           `json:"userName"`
}
