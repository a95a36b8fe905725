package cache

import "context"

// Entity identifies one cached admin list surface. Mutations invalidate
// by entity so every view that displays the affected rows is refetched.
type Entity string

const (
	EntityEvents        Entity = "events"
	EntityVenues        Entity = "venues"
	EntityBookings      Entity = "bookings"
	EntityProfiles      Entity = "profiles"
	EntityFeeds         Entity = "feeds"
	EntityCategories    Entity = "categories"
	EntityPlans         Entity = "plans"
	EntitySubscriptions Entity = "subscriptions"
	EntityConcierge     Entity = "concierge"
	EntityLoyalty       Entity = "loyalty"
	EntityPodcasts      Entity = "podcasts"
	EntityDashboard     Entity = "dashboard"
)

// dependentKeys maps each entity to every list-cache key that displays
// rows of that entity. The dashboard aggregates most entities, so most
// mutations also stale it.
var dependentKeys = map[Entity][]string{
	EntityEvents:        {"admin:events", "admin:dashboard"},
	EntityVenues:        {"admin:venues", "admin:events", "admin:dashboard"},
	EntityBookings:      {"admin:bookings", "admin:dashboard"},
	EntityProfiles:      {"admin:profiles", "admin:dashboard"},
	EntityFeeds:         {"admin:feeds"},
	EntityCategories:    {"admin:categories", "admin:venues", "admin:events"},
	EntityPlans:         {"admin:plans", "admin:subscriptions"},
	EntitySubscriptions: {"admin:subscriptions", "admin:dashboard"},
	EntityConcierge:     {"admin:concierge", "admin:dashboard"},
	EntityLoyalty:       {"admin:points", "admin:tiers"},
	EntityPodcasts:      {"admin:podcasts"},
	EntityDashboard:     {"admin:dashboard"},
}

// Keys returns the cache keys staled by a mutation of entity.
func Keys(entity Entity) []string {
	return dependentKeys[entity]
}

// Invalidator marks cached list views stale after a successful mutation.
type Invalidator interface {
	Invalidate(ctx context.Context, entity Entity) error
}

// Noop satisfies Invalidator for tests and redis-less deployments.
type Noop struct{}

func (Noop) Invalidate(context.Context, Entity) error { return nil }
