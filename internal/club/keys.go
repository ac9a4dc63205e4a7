package club

// Snapshot / dedup keys for cached resources
const (
	// KeyMyTeams is the cache key for the current user's teams
	KeyMyTeams = "teams:mine"

	// KeyTournaments is the cache key for the tournament listing
	KeyTournaments = "tournaments"

	// KeyGrounds is the cache key for the grounds listing
	KeyGrounds = "grounds"

	// KeyGuestHighlights is the cache key for the pre-login aggregate
	KeyGuestHighlights = "guest:highlights"

	// PrefixFixtures is the prefix for per-tournament fixture caches (fixtures:{id})
	PrefixFixtures = "fixtures:"

	// PrefixStandings is the prefix for per-tournament standings caches (standings:{id})
	PrefixStandings = "standings:"

	// PrefixAnalytics is the prefix for per-team analytics caches (analytics:{teamID})
	PrefixAnalytics = "analytics:"
)
