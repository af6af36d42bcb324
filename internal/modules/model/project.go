package model

import (
	"github.com/google/uuid"
)

const KindProject = "project"

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`

	Lifecycle
}

func (Project) TableName() string { return "projects" }

func (p *Project) Key() uuid.UUID      { return p.ID }
func (p *Project) SetKey(id uuid.UUID) { p.ID = id }
func (p *Project) Kind() string        { return KindProject }

func (p *Project) Clone() *Project {
	c := *p
	return &c
}
