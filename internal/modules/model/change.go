package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ChangeEvent is published after a lifecycle mutation has been committed.
type ChangeEvent struct {
	Kind        string    `json:"kind"`
	Op          string    `json:"op"`
	ID          uuid.UUID `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Deleted     bool      `json:"deleted"`
	UpdatedAt   time.Time `json:"updated_at"`
}
