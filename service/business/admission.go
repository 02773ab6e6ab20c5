package business

import (
	"github.com/openrelay/service-filerelay/service/types"
)

// Admission decides whether an actor may perform admin-only actions.
// The set is fixed at startup; there is no runtime mutation path.
type Admission struct {
	admins map[types.UserID]struct{}
}

func NewAdmission(adminIDs []int64) *Admission {
	admins := make(map[types.UserID]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[types.UserID(id)] = struct{}{}
	}
	return &Admission{admins: admins}
}

func (a *Admission) IsAdmin(id types.UserID) bool {
	_, ok := a.admins[id]
	return ok
}
