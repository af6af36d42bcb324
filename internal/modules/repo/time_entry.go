package repo

import (
	"time"

	"github.com/timeasy-io/timeasy/internal/modules/model"
	"gorm.io/gorm"
)

type TimeEntryRepo = Store[model.TimeEntry, *model.TimeEntry]

func NewTimeEntryRepo(db *gorm.DB, lockTimeout time.Duration) TimeEntryRepo {
	return NewGormStore[model.TimeEntry, *model.TimeEntry](db, lockTimeout)
}
