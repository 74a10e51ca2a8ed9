package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ticketdesk/internal/model"
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Open returns a connected GORM DB instance for the given driver.
// Driver errors such as unique-key violations are translated into gorm's
// portable errors (gorm.ErrDuplicatedKey, gorm.ErrForeignKeyViolated).
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}

// tables lists models in dependency order.
func tables() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Ticket{},
		&model.TimelineEvent{},
	}
}

// Migrate creates or updates the schema, including the foreign keys that
// null a ticket's category and cascade a ticket's timeline on delete.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(tables()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table owned by the service.
func Reset(db *gorm.DB) error {
	all := tables()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
