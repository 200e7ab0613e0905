package domain

// View is the active screen selector while logged in. The chat view is
// additionally parameterized by an active match ID.
type View string

const (
	ViewDiscover View = "discover"
	ViewMatches  View = "matches"
	ViewChat     View = "chat"
	ViewProfile  View = "profile"
	ViewAdmin    View = "admin"
)

// ValidView reports whether v names a known view.
func ValidView(v View) bool {
	switch v {
	case ViewDiscover, ViewMatches, ViewChat, ViewProfile, ViewAdmin:
		return true
	default:
		return false
	}
}
