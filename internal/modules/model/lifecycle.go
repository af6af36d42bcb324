package model

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle holds the bookkeeping columns shared by every tenant-owned record.
// Timestamps are written by the lifecycle service, never by gorm.
type Lifecycle struct {
	OwnerUserID string    `gorm:"type:varchar(255);not null;index" json:"owner_user_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false;not null;index" json:"updated_at"`
	Deleted     bool      `gorm:"not null;index" json:"deleted"`
}

func (l *Lifecycle) State() *Lifecycle { return l }

// Record is the constraint the generic store and lifecycle service work with.
// T is the struct type, the constraint is satisfied by *T.
type Record[T any] interface {
	*T
	Key() uuid.UUID
	SetKey(id uuid.UUID)
	// Clone returns a copy that shares no memory with the receiver.
	Clone() *T
	State() *Lifecycle
	Kind() string
}

// Identity is the already verified caller.
type Identity struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}
