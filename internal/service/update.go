package service

import "ticketdesk/internal/model"

// TicketUpdate is a partial ticket mutation. The concrete type fixes which
// fields the caller may touch; only ReporterUpdate and AdminUpdate exist.
type TicketUpdate interface {
	apply(t *model.Ticket) []fieldChange
	requiresAdmin() bool
}

// ReporterUpdate is what a non-admin reporter may change.
type ReporterUpdate struct {
	Title       *string
	Description *string
}

// AdminUpdate may change every mutable ticket field. CategoryID and
// AssigneeID distinguish absent from explicit null.
type AdminUpdate struct {
	Title       *string
	Description *string
	Status      *model.TicketStatus
	Priority    *model.TicketPriority
	CategoryID  model.OptionalID
	AssigneeID  model.OptionalID
}

func (u ReporterUpdate) requiresAdmin() bool { return false }

func (u AdminUpdate) requiresAdmin() bool { return true }

func (u ReporterUpdate) apply(t *model.Ticket) []fieldChange {
	applyText(t, u.Title, u.Description)
	return nil
}

// apply writes the supplied fields and returns the watched ones that were
// supplied, with their values before and after.
func (u AdminUpdate) apply(t *model.Ticket) []fieldChange {
	applyText(t, u.Title, u.Description)

	var supplied []fieldChange
	for _, w := range watchedFields {
		if !w.supplied(u) {
			continue
		}
		before := w.get(t)
		w.set(t, u)
		supplied = append(supplied, fieldChange{field: w, old: before, new: w.get(t)})
	}
	return supplied
}

func applyText(t *model.Ticket, title, description *string) {
	if title != nil {
		t.Title = *title
	}
	if description != nil {
		t.Description = *description
	}
}
