package cache

import "testing"

func TestKeys(t *testing.T) {
	t.Parallel()

	t.Run("every entity has at least one dependent key", func(t *testing.T) {
		entities := []Entity{
			EntityEvents, EntityVenues, EntityBookings, EntityProfiles,
			EntityFeeds, EntityCategories, EntityPlans, EntitySubscriptions,
			EntityConcierge, EntityLoyalty, EntityPodcasts, EntityDashboard,
		}
		for _, e := range entities {
			if len(Keys(e)) == 0 {
				t.Fatalf("entity %q has no dependent keys", e)
			}
		}
	})

	t.Run("venue mutations stale the event list too", func(t *testing.T) {
		keys := Keys(EntityVenues)
		var hasEvents bool
		for _, k := range keys {
			if k == "admin:events" {
				hasEvents = true
			}
		}
		if !hasEvents {
			t.Fatalf("expected venue mutation to stale admin:events, got %v", keys)
		}
	})

	t.Run("unknown entity yields nothing", func(t *testing.T) {
		if got := Keys(Entity("bogus")); got != nil {
			t.Fatalf("expected nil for unknown entity, got %v", got)
		}
	})
}
