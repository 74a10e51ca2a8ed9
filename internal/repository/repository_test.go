package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ticketdesk/internal/db"
	"ticketdesk/internal/model"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// newTestDB returns a migrated in-memory database. A single connection
// keeps every query on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func seedUser(t *testing.T, gormDB *gorm.DB, name, email string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, PasswordHash: "hash", Role: role}
	require.NoError(t, NewUserRepository(gormDB).Create(context.Background(), user))
	return user
}

func seedCategory(t *testing.T, gormDB *gorm.DB, name, color string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Color: color}
	require.NoError(t, NewCategoryRepository(gormDB).Create(context.Background(), category))
	return category
}

func seedTicket(t *testing.T, repo TicketRepository, title string, reporter *model.User, category *model.Category, at time.Time) *model.Ticket {
	t.Helper()
	ticket := &model.Ticket{
		Title:       title,
		Description: title + " details",
		Status:      model.TicketStatusOpen,
		Priority:    model.TicketPriorityMedium,
		ReporterID:  reporter.ID,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	if category != nil {
		ticket.CategoryID = &category.ID
	}
	require.NoError(t, repo.Create(context.Background(), ticket))
	return ticket
}

func event(ticket *model.Ticket, actor *model.User, typ model.TimelineEventType, at time.Time, seq int) model.TimelineEvent {
	return model.TimelineEvent{
		ID:        uuid.New(),
		TicketID:  ticket.ID,
		UserID:    actor.ID,
		Type:      typ,
		CreatedAt: at,
		Seq:       seq,
	}
}
