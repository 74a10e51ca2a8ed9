package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/metrics"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
)

// CreateTicketInput holds the client-supplied fields of a new ticket.
type CreateTicketInput struct {
	Title       string
	Description string
	Priority    *model.TicketPriority
	CategoryID  *uuid.UUID
}

// TicketService implements the ticket lifecycle.
type TicketService interface {
	List(ctx context.Context, actor *model.User) ([]model.TicketSummary, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.TicketDetail, error)
	Create(ctx context.Context, actor *model.User, in CreateTicketInput) (*model.Ticket, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, upd TicketUpdate) (*model.Ticket, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Ticket, error)
	Timeline(ctx context.Context, actor *model.User, id uuid.UUID) ([]model.TimelineEntry, error)
}

type ticketService struct {
	repo    repository.TicketRepository
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewTicketService creates a new ticket service. rec may be nil.
func NewTicketService(repo repository.TicketRepository, rec *metrics.Recorder) TicketService {
	return &ticketService{
		repo:    repo,
		metrics: rec,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// List returns every ticket for admins and the actor's own tickets otherwise.
func (s *ticketService) List(ctx context.Context, actor *model.User) ([]model.TicketSummary, error) {
	var reporter *uuid.UUID
	if !actor.IsAdmin() {
		reporter = &actor.ID
	}
	tickets, err := s.repo.ListSummaries(ctx, reporter)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// Get returns a ticket with reporter and assignee resolved.
func (s *ticketService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.TicketDetail, error) {
	ticket, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, notFound(err, "find ticket")
	}
	if !canAccess(actor, ticket) {
		return nil, apperrors.ErrForbidden
	}
	return model.NewTicketDetail(ticket), nil
}

// Create opens a ticket reported by the actor and records its created event
// in the same transaction.
func (s *ticketService) Create(ctx context.Context, actor *model.User, in CreateTicketInput) (*model.Ticket, error) {
	now := s.now()
	ticket := &model.Ticket{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Status:      model.TicketStatusOpen,
		Priority:    model.TicketPriorityMedium,
		CategoryID:  copyID(in.CategoryID),
		ReporterID:  actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Priority != nil {
		ticket.Priority = *in.Priority
	}

	events := []model.TimelineEvent{createdEvent(ticket.ID, actor.ID, now)}
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TicketRepository) error {
		if ticket.CategoryID != nil {
			if err := requireExists(ctx, repo.CategoryExists, *ticket.CategoryID, apperrors.ErrCategoryNotFound); err != nil {
				return err
			}
		}
		if err := repo.Create(ctx, ticket); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		if err := repo.AppendEvents(ctx, events); err != nil {
			return fmt.Errorf("record created event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.TicketCreated()
	s.metrics.TimelineEvents(events)
	return ticket, nil
}

// Update applies upd to the ticket under a row lock and records one
// timeline event per watched field whose value changed.
func (s *ticketService) Update(ctx context.Context, actor *model.User, id uuid.UUID, upd TicketUpdate) (*model.Ticket, error) {
	if upd == nil {
		return nil, apperrors.Validation("Validation failed")
	}
	if upd.requiresAdmin() && !actor.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}

	var (
		ticket *model.Ticket
		events []model.TimelineEvent
	)
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.TicketRepository) error {
		current, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, "find ticket")
		}
		if !canAccess(actor, current) {
			return apperrors.ErrForbidden
		}
		if admin, ok := upd.(AdminUpdate); ok {
			if err := checkReferences(ctx, repo, admin); err != nil {
				return err
			}
		}

		now := s.now()
		changes := upd.apply(current)
		current.UpdatedAt = now
		events = deriveTimeline(current.ID, actor.ID, changes, now)

		if err := repo.Update(ctx, current); err != nil {
			return fmt.Errorf("update ticket: %w", err)
		}
		if err := repo.AppendEvents(ctx, events); err != nil {
			return fmt.Errorf("record timeline: %w", err)
		}
		ticket = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.TimelineEvents(events)
	return ticket, nil
}

// Delete removes a ticket and its timeline. Admin only.
func (s *ticketService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Ticket, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}
	ticket, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err, "delete ticket")
	}
	s.metrics.TicketDeleted()
	return ticket, nil
}

// Timeline lists a ticket's events newest first. A ticket that does not
// exist has an empty timeline.
func (s *ticketService) Timeline(ctx context.Context, actor *model.User, id uuid.UUID) ([]model.TimelineEntry, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return []model.TimelineEntry{}, nil
	case err != nil:
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if !canAccess(actor, ticket) {
		return nil, apperrors.ErrForbidden
	}

	entries, err := s.repo.ListTimeline(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	return entries, nil
}

func canAccess(actor *model.User, t *model.Ticket) bool {
	return actor.IsAdmin() || (actor != nil && t.ReportedBy(actor.ID))
}

func checkReferences(ctx context.Context, repo repository.TicketRepository, u AdminUpdate) error {
	if u.CategoryID.Value != nil {
		if err := requireExists(ctx, repo.CategoryExists, *u.CategoryID.Value, apperrors.ErrCategoryNotFound); err != nil {
			return err
		}
	}
	if u.AssigneeID.Value != nil {
		if err := requireExists(ctx, repo.UserExists, *u.AssigneeID.Value, apperrors.ErrAssigneeNotFound); err != nil {
			return err
		}
	}
	return nil
}

func requireExists(ctx context.Context, exists func(context.Context, uuid.UUID) (bool, error), id uuid.UUID, missing error) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check reference: %w", err)
	}
	if !ok {
		return missing
	}
	return nil
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTicketNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
