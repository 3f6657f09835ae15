// Package policy centralizes the capability checks of the inventory.
//
// One Policy value is computed per request from the session claims and the
// public-access setting, and every operation consults it instead of
// re-deriving permissions inline.
package policy

import "github.com/vtcwoerden/materiaal-api/internal/domain/entity"

// Session is the authenticated state of one request. The zero value is an
// anonymous visitor.
type Session struct {
	UserID   string
	Role     string
	LoggedIn bool
}

// Policy exposes the capability predicates for one request.
type Policy struct {
	session      Session
	publicAccess bool
}

// New computes the policy for a session. publicAccess mirrors the
// public_access setting: when false, anonymous visitors cannot browse.
func New(session Session, publicAccess bool) Policy {
	return Policy{session: session, publicAccess: publicAccess}
}

// CanView reports whether the inventory may be browsed.
func (p Policy) CanView() bool {
	return p.publicAccess || p.session.LoggedIn
}

// CanManage reports whether items may be created, edited or deleted.
func (p Policy) CanManage() bool {
	return p.session.LoggedIn &&
		(p.session.Role == entity.RoleAdmin || p.session.Role == entity.RoleManager)
}

// CanExport reports whether CSV/sheet exports may be produced. Export rides on
// the manage capability.
func (p Policy) CanExport() bool {
	return p.CanManage()
}

// CanAdminister reports whether migration, sweep and settings are allowed.
func (p Policy) CanAdminister() bool {
	return p.session.LoggedIn && p.session.Role == entity.RoleAdmin
}
