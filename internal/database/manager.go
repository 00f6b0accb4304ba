package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/kdudkov/goclaim/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	m := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return m
}

// AddDefaults seeds the one-time bootstrap records: a default admin account
// when no admin exists and an example claim when the store is empty.
func (mm *DatabaseManager) AddDefaults() {
	if mm.AdminQuery().Count() == 0 {
		a := model.DefaultAdmin()

		if err := mm.Create(a); err != nil {
			mm.logger.Error("error creating default admin", slog.Any("error", err))
		} else {
			mm.logger.Info("default admin created", slog.String("username", a.Username))
		}
	}

	if mm.ClaimQuery().Count() == 0 {
		if err := mm.Create(model.DefaultClaim()); err != nil {
			mm.logger.Error("error creating default claim", slog.Any("error", err))
		} else {
			mm.logger.Info("default claim created")
		}
	}
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) ClaimQuery() *ClaimQuery {
	return NewClaimQuery(mm.db)
}

func (mm *DatabaseManager) SubmissionQuery() *SubmissionQuery {
	return NewSubmissionQuery(mm.db)
}

func (mm *DatabaseManager) AdminQuery() *AdminQuery {
	return NewAdminQuery(mm.db)
}

func (mm *DatabaseManager) InviteQuery() *InviteQuery {
	return NewInviteQuery(mm.db)
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	if err := mm.db.AutoMigrate(
		&model.Claim{},
		&model.Submission{},
		&model.Admin{},
		&model.Invite{},
	); err != nil {
		return err
	}

	return nil
}
