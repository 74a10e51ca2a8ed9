package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"ticketdesk/internal/model"
)

// AppendEvents inserts timeline events in a single statement.
func (r *ticketRepository) AppendEvents(ctx context.Context, events []model.TimelineEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&events).Error
}

// ListTimeline returns a ticket's events newest first with the actor's name.
// Events sharing a timestamp keep the order they were derived in.
func (r *ticketRepository) ListTimeline(ctx context.Context, ticketID uuid.UUID) ([]model.TimelineEntry, error) {
	entries := make([]model.TimelineEntry, 0)
	err := r.db.WithContext(ctx).Table("ticket_timeline AS e").
		Select("e.id, e.type, e.old_value, e.new_value, e.created_at, e.user_id, u.name AS user_name").
		Joins("LEFT JOIN users u ON u.id = e.user_id").
		Where("e.ticket_id = ?", ticketID).
		Order("e.created_at DESC, e.seq ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
