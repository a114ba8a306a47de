package models

// Group represents a circle of people who share costs. Trips (and through
// them, expenses and settlements) belong to exactly one group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g. "Flatmates", "Ski 2026").
	Name string

	// MemberIDs is the list of user IDs in this group.
	MemberIDs []string

	// CreatedBy is the user ID that created the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Trip is a scope under a group that expenses and settlements attach to.
// Balances are computed per trip, or across all trips of a group.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// GroupID is the group this trip belongs to.
	GroupID string

	// Name is the display name of the trip (e.g. "Lisbon weekend").
	Name string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}
