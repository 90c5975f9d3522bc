/*
access.go - Role-based visibility and capability checks

PURPOSE:
  The single place permission decisions are made. The store read path,
  the delete operation, and the supervisor-only surfaces all route through
  these functions instead of comparing role strings inline.

RULES:
  Visibility: supervisors see every record; agents see records they wrote
  (matched by agent name) or records from their region.

  Deletion: a record may be deleted by its owner (creator) or a supervisor.

  Everything else that is supervisor-only (user management, statistics,
  export) checks RequireSupervisor.
*/
package booking

// CanView reports whether the user may see the record. A nil user sees
// nothing.
func CanView(u *User, r *Report) bool {
	if u == nil {
		return false
	}
	if u.IsSupervisor() {
		return true
	}
	return r.AgentName == u.Name || r.Region == u.Region
}

// CanDelete reports whether the user may delete the record: record owner or
// supervisor.
func CanDelete(u *User, r *Report) bool {
	if u == nil {
		return false
	}
	return u.IsSupervisor() || r.UserID == u.ID
}

// VisibleTo filters records down to what the user may see, preserving order.
func VisibleTo(u *User, reports []Report) []Report {
	if u == nil {
		return []Report{}
	}
	if u.IsSupervisor() {
		return reports
	}
	visible := make([]Report, 0, len(reports))
	for _, r := range reports {
		if CanView(u, &r) {
			visible = append(visible, r)
		}
	}
	return visible
}

// RequireSupervisor returns a PermissionError unless the user holds the
// supervisor role.
func RequireSupervisor(u *User, action string) error {
	if u == nil {
		return ErrNotAuthenticated
	}
	if !u.IsSupervisor() {
		return &PermissionError{UserID: u.ID, Action: action}
	}
	return nil
}
