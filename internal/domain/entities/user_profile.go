package entities

// Personality is a named reply style. The listing endpoint only carries the
// style text; the full description lives behind its own endpoint.
type Personality struct {
	Personality string `json:"personality"`
}

// UserProfile is the backend's view of an account: display name plus the
// user's named personalities. Cached in the session and refreshed after
// personality CRUD.
type UserProfile struct {
	Name          string                 `json:"name"`
	Personalities map[string]Personality `json:"personalities"`
}

// PersonalityNames returns the personality keys for display lists.
func (p UserProfile) PersonalityNames() []string {
	names := make([]string, 0, len(p.Personalities))
	for name := range p.Personalities {
		names = append(names, name)
	}
	return names
}
