package usecase

import "mediavault/internal/domain/model"

// AdminRoster holds the ids of moderator principals per provider
// namespace.
type AdminRoster map[string]map[uint64]struct{}

// NewAdminRoster builds a roster from the config representation.
func NewAdminRoster(admins map[string][]uint64) AdminRoster {
	roster := make(AdminRoster, len(admins))
	for provider, ids := range admins {
		set := make(map[uint64]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		roster[provider] = set
	}

	return roster
}

// IsAdmin reports whether p moderates this deployment.
func (r AdminRoster) IsAdmin(p model.Principal) bool {
	ids, ok := r[p.Provider]
	if !ok {
		return false
	}
	_, ok = ids[p.ID]

	return ok
}
