package domain

import "fmt"

// SystemActor is recorded for actions the process performs on its own.
const SystemActor = "system"

// Actor is the authenticated identity passed explicitly into every
// mutating call and into the audit log.
type Actor struct {
	UserID   uint
	Username string
	Role     Role
}

// Require fails with ErrAuthorization unless the actor holds role.
// Admin satisfies every role; the zero Actor satisfies none.
func (a Actor) Require(role Role) error {
	if a.Username == "" || !a.Role.Valid() {
		return fmt.Errorf("%w: no authenticated user", ErrAuthorization)
	}
	if a.Role == RoleAdmin || a.Role == role {
		return nil
	}
	return fmt.Errorf("%w: %s role required", ErrAuthorization, role)
}
