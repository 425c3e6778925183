package models

// Session is an academic session (e.g. "2025-26"). Exactly one session is
// current at any time.
type Session struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
}

// CurrentSession returns the session flagged current, or nil.
func CurrentSession(sessions []Session) *Session {
	for i := range sessions {
		if sessions[i].IsCurrent {
			return &sessions[i]
		}
	}
	return nil
}
