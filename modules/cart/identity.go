package cart

// Identity is who the current request acts for. UserID is empty for guests.
type Identity struct {
	SessionID string
	UserID    string
}

// Authenticated reports whether a user is signed in.
func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// Scope partitions persisted rows between owners. Exactly one field is set:
// UserID for signed users, SessionID for guests.
type Scope struct {
	SessionID string
	UserID    string
}

// ScopeOf resolves the record scope of an identity.
func ScopeOf(id Identity) Scope {
	if id.Authenticated() {
		return Scope{UserID: id.UserID}
	}
	return Scope{SessionID: id.SessionID}
}

// Empty reports a scope that matches no owner.
func (s Scope) Empty() bool {
	return s.SessionID == "" && s.UserID == ""
}

func (s Scope) String() string {
	if s.UserID != "" {
		return "user:" + s.UserID
	}
	return "session:" + s.SessionID
}
