package model

import (
	"time"

	"github.com/google/uuid"
)

const KindTimeEntry = "time_entry"

type TimeEntry struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Description string     `gorm:"type:text;not null" json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`

	// ProjectID references a project. The entry owner does not have to own the project.
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`

	Lifecycle
}

func (TimeEntry) TableName() string { return "time_entries" }

func (e *TimeEntry) Key() uuid.UUID      { return e.ID }
func (e *TimeEntry) SetKey(id uuid.UUID) { e.ID = id }
func (e *TimeEntry) Kind() string        { return KindTimeEntry }

func (e *TimeEntry) ProjectRef() *uuid.UUID { return e.ProjectID }

func (e *TimeEntry) Clone() *TimeEntry {
	c := *e
	c.StartTime = clonePtr(e.StartTime)
	c.EndTime = clonePtr(e.EndTime)
	c.ProjectID = clonePtr(e.ProjectID)
	return &c
}

func clonePtr[V any](v *V) *V {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
