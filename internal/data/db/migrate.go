package db

import (
	"gorm.io/gorm"

	types "github.com/hritamkar/library-management/internal/domain"
)

// AutoMigrateAll creates or updates the lending schema. Foreign keys are
// intentionally not generated by GORM; referential checks live in the service
// layer so the same schema works on sqlite under test.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Book{},
		&types.Member{},
		&types.Loan{},
		&types.LoanEvent{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}
