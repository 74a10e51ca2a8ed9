package service

import (
	"time"

	"github.com/google/uuid"

	"ticketdesk/internal/model"
)

// watchedField maps a ticket field to the timeline event recorded when it
// changes. Values are rendered as strings; nil means the field is unset.
type watchedField struct {
	name     string
	event    model.TimelineEventType
	supplied func(u AdminUpdate) bool
	get      func(t *model.Ticket) *string
	set      func(t *model.Ticket, u AdminUpdate)
}

// watchedFields is evaluated in order, so simultaneous events come out as
// status, priority, assignee, category.
var watchedFields = []watchedField{
	{
		name:     "status",
		event:    model.EventStatusChange,
		supplied: func(u AdminUpdate) bool { return u.Status != nil },
		get:      func(t *model.Ticket) *string { return strPtr(string(t.Status)) },
		set:      func(t *model.Ticket, u AdminUpdate) { t.Status = *u.Status },
	},
	{
		name:     "priority",
		event:    model.EventPriorityChange,
		supplied: func(u AdminUpdate) bool { return u.Priority != nil },
		get:      func(t *model.Ticket) *string { return strPtr(string(t.Priority)) },
		set:      func(t *model.Ticket, u AdminUpdate) { t.Priority = *u.Priority },
	},
	{
		name:     "assigneeId",
		event:    model.EventAssigneeChange,
		supplied: func(u AdminUpdate) bool { return u.AssigneeID.Set },
		get:      func(t *model.Ticket) *string { return idString(t.AssigneeID) },
		set:      func(t *model.Ticket, u AdminUpdate) { t.AssigneeID = copyID(u.AssigneeID.Value) },
	},
	{
		name:     "categoryId",
		event:    model.EventCategoryChange,
		supplied: func(u AdminUpdate) bool { return u.CategoryID.Set },
		get:      func(t *model.Ticket) *string { return idString(t.CategoryID) },
		set:      func(t *model.Ticket, u AdminUpdate) { t.CategoryID = copyID(u.CategoryID.Value) },
	},
}

type fieldChange struct {
	field watchedField
	old   *string
	new   *string
}

func (c fieldChange) changed() bool {
	return !equalStr(c.old, c.new)
}

// deriveTimeline turns supplied field changes into timeline events. A
// field supplied with its current value produces nothing.
func deriveTimeline(ticketID, actorID uuid.UUID, changes []fieldChange, at time.Time) []model.TimelineEvent {
	var events []model.TimelineEvent
	for _, c := range changes {
		if !c.changed() {
			continue
		}
		events = append(events, model.TimelineEvent{
			ID:        uuid.New(),
			TicketID:  ticketID,
			UserID:    actorID,
			Type:      c.field.event,
			OldValue:  c.old,
			NewValue:  c.new,
			CreatedAt: at,
			Seq:       len(events),
		})
	}
	return events
}

func createdEvent(ticketID, actorID uuid.UUID, at time.Time) model.TimelineEvent {
	return model.TimelineEvent{
		ID:        uuid.New(),
		TicketID:  ticketID,
		UserID:    actorID,
		Type:      model.EventCreated,
		CreatedAt: at,
	}
}

func strPtr(s string) *string { return &s }

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	return strPtr(id.String())
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func equalStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
