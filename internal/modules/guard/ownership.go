package guard

import "github.com/timeasy-io/timeasy/internal/modules/model"

type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Owned is anything carrying lifecycle columns.
type Owned interface {
	State() *model.Lifecycle
}

// Authorize allows administrators and the owner of r.
//
// Callers answering a single-resource read, update or delete must report a
// Denied outcome as not found so that existence is not revealed to non-owners.
func Authorize(r Owned, who model.Identity) Decision {
	if who.IsAdmin {
		return Allowed
	}
	if who.UserID != "" && r.State().OwnerUserID == who.UserID {
		return Allowed
	}
	return Denied
}
