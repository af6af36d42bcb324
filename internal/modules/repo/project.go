package repo

import (
	"time"

	"github.com/timeasy-io/timeasy/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectRepo = Store[model.Project, *model.Project]

func NewProjectRepo(db *gorm.DB, lockTimeout time.Duration) ProjectRepo {
	return NewGormStore[model.Project, *model.Project](db, lockTimeout)
}
