package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ticketdesk/internal/model"
)

// TicketRepository defines ticket and timeline persistence operations.
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	Update(ctx context.Context, ticket *model.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	ListSummaries(ctx context.Context, reporterID *uuid.UUID) ([]model.TicketSummary, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	// Timeline methods
	AppendEvents(ctx context.Context, events []model.TimelineEvent) error
	ListTimeline(ctx context.Context, ticketID uuid.UUID) ([]model.TimelineEntry, error)
	// Reference checks
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TicketRepository) error) error
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// Create inserts a ticket without touching its relations.
func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error
}

// Update writes every column of the ticket without touching its relations.
func (r *ticketRepository) Update(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ticket).Error
}

// FindByID finds a ticket by ID.
func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindByIDForUpdate finds a ticket by ID with a row-level lock held until
// the surrounding transaction ends.
func (r *ticketRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindDetail finds a ticket with its category, reporter and assignee loaded.
func (r *ticketRepository) FindDetail(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Reporter").
		Preload("Assignee").
		Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListSummaries lists tickets newest first, joined with category and
// reporter. A non-nil reporterID restricts the list to that reporter.
func (r *ticketRepository) ListSummaries(ctx context.Context, reporterID *uuid.UUID) ([]model.TicketSummary, error) {
	q := r.db.WithContext(ctx).Table("tickets AS t").
		Select(`t.id, t.title, t.description, t.status, t.priority, t.created_at, t.updated_at,
			t.category_id, c.name AS category_name, c.color AS category_color,
			t.reporter_id, u.name AS reporter_name, u.email AS reporter_email,
			t.assignee_id`).
		Joins("LEFT JOIN categories c ON c.id = t.category_id").
		Joins("LEFT JOIN users u ON u.id = t.reporter_id").
		Order("t.created_at DESC")
	if reporterID != nil {
		q = q.Where("t.reporter_id = ?", *reporterID)
	}

	summaries := make([]model.TicketSummary, 0)
	if err := q.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete removes a ticket together with its timeline and returns the
// removed ticket.
func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var deleted model.Ticket
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&deleted).Error; err != nil {
			return err
		}
		// timeline rows never outlive their ticket
		if err := tx.Where("ticket_id = ?", id).Delete(&model.TimelineEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&deleted).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// CategoryExists reports whether a category with the id exists.
func (r *ticketRepository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// UserExists reports whether a user with the id exists.
func (r *ticketRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// WithTransaction executes a function within a database transaction.
func (r *ticketRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TicketRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &ticketRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
